// Package render writes a league store as JSON or plain text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ssargent/lgeparse/pkg/league"
	"github.com/ssargent/lgeparse/pkg/source"
)

// Format selects the output representation
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

const banner = "===============================================\n" +
	"Football Pro '98 League File Parser\n" +
	"===============================================\n\n"

// ParseFormat converts a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "txt", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or text)", s)
	}
}

// ContentType returns the media type of f
func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Write renders store to w in format f
func Write(w io.Writer, store *league.Store, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, store)
	case FormatText:
		return Text(w, store)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WriteFile renders store into the file at path, replacing its contents
func WriteFile(path string, store *league.Store, f Format) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return &source.Error{Op: "create", Path: path, Kind: source.ErrIO, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &source.Error{Op: "close", Path: path, Kind: source.ErrIO, Err: cerr}
		}
	}()

	if err := Write(out, store, f); err != nil {
		return &source.Error{Op: "write", Path: path, Kind: source.ErrIO, Err: err}
	}
	return nil
}

// JSON writes the store as an indented JSON document
func JSON(w io.Writer, store *league.Store) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(store)
}

// Text writes the store in the fixed plain-text layout
func Text(w io.Writer, store *league.Store) error {
	tw := &textWriter{w: w}

	l := store.League()
	tw.printf("%s", banner)
	tw.printf("LEAGUE: %s\n", l.Name)
	tw.printf("Trophy: %s\n", l.Trophy)
	tw.printf("Seasons: %d\n", l.NumSeasons)
	tw.printf("Inception: %d\n\n", l.Inception)

	if confs := store.Conferences(); len(confs) > 0 {
		tw.printf("CONFERENCES:\n")
		for i, c := range confs {
			tw.printf("  %d. %s (ID: %d)\n", i+1, c.Name, c.ID)
		}
		tw.printf("\n")
	}

	if divs := store.Divisions(); len(divs) > 0 {
		tw.printf("DIVISIONS:\n")
		for i, d := range divs {
			tw.printf("  %d. %s (ID: %d)\n", i+1, d.Name, d.ID)
		}
		tw.printf("\n")
	}

	if teams := store.Teams(); len(teams) > 0 {
		tw.printf("TEAMS:\n")
		for i, t := range teams {
			tw.printf("  %d. %s %s (%s)\n", i+1, t.Name, t.Mascot, t.Abbreviation)
			tw.printf("      Stadium: %s, Coach: %s\n", t.Stadium, t.Coach)
			tw.printf("      Record: %d-%d-%d\n", t.Record.Wins, t.Record.Losses, t.Record.Ties)
		}
	}

	return tw.err
}

// textWriter keeps the first write error so callers check once
type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...interface{}) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}
