//go:build fuzz
// +build fuzz

package codec

import (
	"testing"
	"unicode/utf8"

	"github.com/ssargent/lgeparse/pkg/league"
)

// FuzzDecoders_NeverPanic feeds arbitrary payloads and offsets to every decoder
func FuzzDecoders_NeverPanic(f *testing.F) {
	// Add seed corpus
	f.Add([]byte{}, 0)
	f.Add([]byte("L03:"), 0)
	f.Add([]byte("L03:\x00\x00NFLPI95\x00Super Bowl\x00"), 0)
	f.Add([]byte("C03:\x00\x00\x00\x00\x05American\x00"), 0)
	f.Add([]byte("T03:"), 2)
	f.Add(make([]byte, 300), 299)

	f.Fuzz(func(t *testing.T, data []byte, off int) {
		// Skip extremely large inputs to avoid timeout
		if len(data) > 100000 {
			t.Skip("Input too large for fuzz test")
		}

		l := DecodeLeague(data, off)
		c := DecodeConference(data, off, 0)
		d := DecodeDivision(data, off, 0)
		tm := DecodeTeam(data, off, 0)

		for _, s := range []string{l.Name, l.Trophy, c.Name, d.Name, tm.Name} {
			if !utf8.ValidString(s) {
				t.Errorf("invalid UTF-8 in decoded string %q", s)
			}
		}

		if l.NumSeasons != league.DefaultSeasons || l.Inception != league.DefaultInception {
			t.Errorf("fixed league fields changed: %+v", l)
		}
		if utf8.RuneCountInString(tm.Name) > league.TeamNameWidth {
			t.Errorf("team name longer than field width: %q", tm.Name)
		}
	})
}
