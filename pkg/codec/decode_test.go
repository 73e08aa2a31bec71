package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ssargent/lgeparse/pkg/league"
)

// blockOf concatenates parts into a single payload
func blockOf(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func zeros(n int) []byte {
	return make([]byte, n)
}

func TestDecodeLeague(t *testing.T) {
	testCases := []struct {
		name   string
		data   []byte
		off    int
		want   league.League
		anchor LeagueAnchors
	}{
		{
			name:   "name anchor after zero padding",
			data:   blockOf([]byte("L03:"), zeros(20), []byte("AB"), []byte("rest")),
			want:   league.League{Name: "ABrest", Trophy: "Championship", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: 24, Trophy: -1},
		},
		{
			name:   "name and trophy",
			data:   blockOf([]byte("L03:"), zeros(20), []byte("NFLPI95\x00"), zeros(10), []byte("Super Bowl\x00"), zeros(40)),
			want:   league.League{Name: "NFLPI95", Trophy: "Super Bowl", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: 24, Trophy: 42},
		},
		{
			name:   "trophy back-scan stops at a control byte",
			data:   blockOf([]byte("L03:"), []byte{0x01}, []byte("xx Bowl"), zeros(4)),
			want:   league.League{Name: "Unknown League", Trophy: "xx Bowl", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: -1, Trophy: 5},
		},
		{
			name:   "trophy back-scan never enters the tag",
			data:   blockOf([]byte("L03:"), []byte("my Bowl")),
			want:   league.League{Name: "Unknown League", Trophy: "my Bowl", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: -1, Trophy: 4},
		},
		{
			name:   "tag letters are not a name",
			data:   blockOf([]byte("L03:"), []byte("a"), zeros(10)),
			want:   league.DefaultLeague(),
			anchor: LeagueAnchors{Name: -1, Trophy: -1},
		},
		{
			name:   "name beyond window",
			data:   blockOf([]byte("L03:"), zeros(LeagueWindow), []byte("NFL")),
			want:   league.DefaultLeague(),
			anchor: LeagueAnchors{Name: -1, Trophy: -1},
		},
		{
			name:   "name on last window byte",
			data:   blockOf([]byte("L03:"), zeros(LeagueWindow-1), []byte("NF")),
			want:   league.League{Name: "NF", Trophy: "Championship", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: 4 + LeagueWindow - 1, Trophy: -1},
		},
		{
			name:   "block at later offset",
			data:   blockOf([]byte("junkjunk"), []byte("L02:"), zeros(3), []byte("USFL\x00")),
			off:    8,
			want:   league.League{Name: "USFL", Trophy: "Championship", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: 15, Trophy: -1},
		},
		{
			name:   "name is cut to field width",
			data:   blockOf([]byte("L03:"), []byte(strings.Repeat("X", 40))),
			want:   league.League{Name: strings.Repeat("X", league.NameWidth), Trophy: "Championship", NumSeasons: 1, Inception: 1995},
			anchor: LeagueAnchors{Name: 4, Trophy: -1},
		},
		{
			name:   "offset out of range",
			data:   []byte("L03:"),
			off:    10,
			want:   league.DefaultLeague(),
			anchor: LeagueAnchors{Name: -1, Trophy: -1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			anchors := FindLeagueAnchors(tc.data, tc.off)
			if anchors != tc.anchor {
				t.Errorf("anchors: got %+v, want %+v", anchors, tc.anchor)
			}

			got := DecodeLeague(tc.data, tc.off)
			if got != tc.want {
				t.Errorf("league: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecodeLeague_NoBowlMeansDefaultTrophy(t *testing.T) {
	data := blockOf([]byte("L03:"), []byte("NFL Cup Final"), zeros(300))
	got := DecodeLeague(data, 0)
	if got.Trophy != league.DefaultTrophy {
		t.Errorf("trophy: got %q, want %q", got.Trophy, league.DefaultTrophy)
	}
	if got.NumSeasons != 1 || got.Inception != 1995 {
		t.Errorf("fixed fields: got %d/%d", got.NumSeasons, got.Inception)
	}
}

func TestDecodeConference(t *testing.T) {
	testCases := []struct {
		name  string
		data  []byte
		index int
		want  league.Conference
	}{
		{
			name:  "name and id",
			data:  blockOf([]byte("C03:"), []byte{0, 0, 0, 0, 5}, zeros(3), []byte("American\x00"), zeros(20)),
			index: 0,
			want:  league.Conference{Name: "American", ID: 5},
		},
		{
			name:  "uppercase run is skipped until mixed case",
			data:  blockOf([]byte("C03:"), []byte{1, 2, 3, 4, 9}, []byte("NFC National\x00")),
			index: 1,
			want:  league.Conference{Name: "National", ID: 9},
		},
		{
			name:  "no name uses discovery index",
			data:  blockOf([]byte("C03:"), []byte{0, 0, 0, 0, 2}, zeros(60)),
			index: 2,
			want:  league.Conference{Name: "Conference 3", ID: 2},
		},
		{
			name:  "name outside window",
			data:  blockOf([]byte("C03:"), []byte{0, 0, 0, 0, 1}, zeros(GroupWindow), []byte("Late")),
			index: 0,
			want:  league.Conference{Name: "Conference 1", ID: 1},
		},
		{
			name:  "truncated block",
			data:  []byte("C03:"),
			index: 4,
			want:  league.Conference{Name: "Conference 5", ID: 0},
		},
		{
			name:  "id byte is raw even when it looks like text",
			data:  blockOf([]byte("C03:"), []byte("abcdAfc\x00")),
			index: 0,
			want:  league.Conference{Name: "Afc", ID: 'A'},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeConference(tc.data, 0, tc.index)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecodeDivision(t *testing.T) {
	data := blockOf([]byte("D03:"), []byte{0, 0, 0, 0, 12}, []byte("Central\x00"))
	got := DecodeDivision(data, 0, 0)
	want := league.Division{Name: "Central", ID: 12}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	got = DecodeDivision([]byte("D03:"), 0, 15)
	if got.Name != "Division 16" {
		t.Errorf("fallback name: got %q", got.Name)
	}
}

func teamBlock(name []byte) []byte {
	return blockOf([]byte("T03:"), zeros(TeamHeaderSize), zeros(TeamNameOffset), name, zeros(200))
}

func TestDecodeTeam(t *testing.T) {
	placeholders := func(id int, name string) league.Team {
		return league.Team{
			ID:           id,
			Name:         name,
			Mascot:       "Team",
			Abbreviation: "TM",
			Stadium:      "Stadium",
			Coach:        "Coach",
		}
	}

	testCases := []struct {
		name string
		data []byte
		id   int
		want league.Team
	}{
		{
			name: "short name",
			data: teamBlock([]byte("Buffalo")),
			id:   0,
			want: placeholders(0, "Buffalo"),
		},
		{
			name: "name of 29 bytes is cut to field width",
			data: teamBlock([]byte(strings.Repeat("b", 29))),
			id:   3,
			want: placeholders(3, strings.Repeat("b", league.TeamNameWidth)),
		},
		{
			name: "name of 30 bytes is rejected",
			data: teamBlock([]byte(strings.Repeat("c", 30))),
			id:   1,
			want: placeholders(1, ""),
		},
		{
			name: "name of 40 bytes is rejected",
			data: teamBlock([]byte(strings.Repeat("d", 40))),
			id:   7,
			want: placeholders(7, ""),
		},
		{
			name: "empty name",
			data: teamBlock(nil),
			id:   2,
			want: placeholders(2, ""),
		},
		{
			name: "truncated block",
			data: []byte("T03:xxxx"),
			id:   31,
			want: placeholders(31, ""),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeTeam(tc.data, 0, tc.id)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecodeTeam_StatsAreNeverRead(t *testing.T) {
	data := teamBlock([]byte("Miami\x00"))
	for i := 40; i < len(data); i++ {
		data[i] = 0xFF
	}
	got := DecodeTeam(data, 0, 0)
	if got.Record != (league.Record{}) {
		t.Errorf("record: got %+v, want zero", got.Record)
	}
}

func TestReadString(t *testing.T) {
	testCases := []struct {
		name  string
		data  []byte
		off   int
		width int
		want  string
	}{
		{name: "nul terminated", data: []byte("abc\x00def"), width: 10, want: "abc"},
		{name: "width bounded", data: []byte("abcdef"), width: 4, want: "abcd"},
		{name: "buffer bounded", data: []byte("abc"), width: 10, want: "abc"},
		{name: "offset", data: []byte("xxabc"), off: 2, width: 10, want: "abc"},
		{name: "offset past end", data: []byte("abc"), off: 3, width: 10, want: ""},
		{name: "negative offset", data: []byte("abc"), off: -1, width: 10, want: ""},
		{name: "code page 437", data: []byte{'S', 0x82, 'n', 'o', 'r'}, width: 10, want: "Sénor"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReadString(tc.data, tc.off, tc.width); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReadString_ReturnsFreshValues(t *testing.T) {
	data := []byte("first\x00second\x00")
	a := ReadString(data, 0, 10)
	b := ReadString(data, 6, 10)
	data[0] = 'X'

	if a != "first" || b != "second" {
		t.Errorf("got %q and %q", a, b)
	}
}
