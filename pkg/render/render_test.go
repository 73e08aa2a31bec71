package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/lgeparse/pkg/league"
	"github.com/ssargent/lgeparse/pkg/source"
)

func sampleStore() *league.Store {
	s := league.NewStore()
	s.SetLeague(league.League{Name: "NFLPI95", Trophy: "Super Bowl", NumSeasons: 1, Inception: 1995})
	s.AddConference(league.Conference{Name: "American", ID: 0})
	s.AddDivision(league.Division{Name: "Eastern", ID: 3})
	s.AddTeam(league.Team{ID: 0, Name: "Buffalo", Mascot: "Team", Abbreviation: "TM", Stadium: "Stadium", Coach: "Coach"})
	s.Seal()
	return s
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: "text", want: FormatText},
		{in: " txt ", want: FormatText},
		{in: "yaml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleStore()))

	want := `{
  "league": {
    "name": "NFLPI95",
    "trophy": "Super Bowl",
    "numSeasons": 1,
    "inception": 1995
  },
  "conferences": [
    {
      "name": "American",
      "id": 0
    }
  ],
  "divisions": [
    {
      "name": "Eastern",
      "id": 3
    }
  ],
  "teams": [
    {
      "name": "Buffalo",
      "mascot": "Team",
      "abbreviation": "TM",
      "stadium": "Stadium",
      "coach": "Coach",
      "record": {
        "wins": 0,
        "losses": 0,
        "ties": 0
      }
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestJSON_EmptyStore(t *testing.T) {
	s := league.NewStore()
	s.SetLeague(league.DefaultLeague())

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, s))
	assert.Contains(t, buf.String(), `"conferences": []`)
	assert.Contains(t, buf.String(), `"divisions": []`)
	assert.Contains(t, buf.String(), `"teams": []`)
}

func TestJSON_EscapesNames(t *testing.T) {
	s := league.NewStore()
	s.SetLeague(league.League{Name: `A "quoted" name`, Trophy: "T"})

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, s))
	assert.Contains(t, buf.String(), `"name": "A \"quoted\" name"`)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleStore()))

	want := "===============================================\n" +
		"Football Pro '98 League File Parser\n" +
		"===============================================\n\n" +
		"LEAGUE: NFLPI95\n" +
		"Trophy: Super Bowl\n" +
		"Seasons: 1\n" +
		"Inception: 1995\n\n" +
		"CONFERENCES:\n" +
		"  1. American (ID: 0)\n\n" +
		"DIVISIONS:\n" +
		"  1. Eastern (ID: 3)\n\n" +
		"TEAMS:\n" +
		"  1. Buffalo Team (TM)\n" +
		"      Stadium: Stadium, Coach: Coach\n" +
		"      Record: 0-0-0\n"
	assert.Equal(t, want, buf.String())
}

func TestText_OmitsEmptySections(t *testing.T) {
	s := league.NewStore()
	s.SetLeague(league.DefaultLeague())

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "LEAGUE: Unknown League\n")
	assert.Contains(t, out, "Trophy: Championship\n")
	assert.NotContains(t, out, "CONFERENCES:")
	assert.NotContains(t, out, "DIVISIONS:")
	assert.NotContains(t, out, "TEAMS:")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestText_ReportsWriteErrors(t *testing.T) {
	err := Text(failingWriter{}, sampleStore())
	assert.EqualError(t, err, "disk full")
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sampleStore(), Format("xml")))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteFile(path, sampleStore(), FormatText))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LEAGUE: NFLPI95")
}

func TestWriteFile_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.json")
	err := WriteFile(path, sampleStore(), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrIO))
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "text/plain; charset=utf-8", FormatText.ContentType())
}
