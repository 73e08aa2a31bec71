// Package block locates tagged blocks inside a league payload.
//
// Every record in a league file is introduced by a four byte ASCII tag such
// as "T03:". The letter names the record kind and the digits its format
// version. Tags are matched byte for byte; there is no length prefix or
// index, so the only way to find a block is a linear scan.
//
// A Locator keeps one cursor per tag. Next returns the occurrence after the
// cursor and moves it forward, so repeated calls walk every block of a kind
// exactly once without touching the payload bytes.
package block

import (
	"bytes"
	"fmt"
	"sort"
)

// TagSize is the width of every block tag
const TagSize = 4

// Tag is a four byte block identifier
type Tag [TagSize]byte

// Known tags
var (
	TagLeague     = MustParseTag("L03:")
	TagLeagueAlt  = MustParseTag("L02:")
	TagConference = MustParseTag("C03:")
	TagDivision   = MustParseTag("D03:")
	TagTeam       = MustParseTag("T03:")
	TagRoster     = MustParseTag("R01:")
)

// KnownTags lists the tags reported by Inventory, in scan order
var KnownTags = []Tag{TagLeague, TagLeagueAlt, TagConference, TagDivision, TagTeam, TagRoster}

// ParseTag converts s into a Tag. s must be exactly four bytes.
func ParseTag(s string) (Tag, error) {
	var t Tag
	if len(s) != TagSize {
		return t, fmt.Errorf("block tag %q must be %d bytes, got %d", s, TagSize, len(s))
	}
	copy(t[:], s)
	return t, nil
}

// MustParseTag is ParseTag for constants
func MustParseTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) String() string {
	return string(t[:])
}

// MarshalText renders the tag as its four characters
func (t Tag) MarshalText() ([]byte, error) {
	return t[:], nil
}

// Locator scans a payload for tags. The payload is never modified. A
// Locator is not safe for concurrent use; create one per scan.
type Locator struct {
	data    []byte
	cursors map[Tag]int
}

// NewLocator creates a locator over data. data must not change while the
// locator is in use.
func NewLocator(data []byte) *Locator {
	return &Locator{
		data:    data,
		cursors: make(map[Tag]int),
	}
}

// Find returns the offset of the first occurrence of tag
func (l *Locator) Find(tag Tag) (int, bool) {
	return l.search(tag, 0)
}

// Next returns the offset of the first occurrence of tag after the previous
// one returned for the same tag. Once every occurrence has been returned it
// keeps reporting not found.
func (l *Locator) Next(tag Tag) (int, bool) {
	from := l.cursors[tag]
	off, ok := l.search(tag, from)
	if !ok {
		l.cursors[tag] = len(l.data)
		return -1, false
	}
	l.cursors[tag] = off + TagSize
	return off, true
}

// Reset rewinds every cursor to the start of the payload
func (l *Locator) Reset() {
	l.cursors = make(map[Tag]int)
}

// All returns every offset of tag without moving its cursor
func (l *Locator) All(tag Tag) []int {
	var offsets []int
	for from := 0; ; {
		off, ok := l.search(tag, from)
		if !ok {
			return offsets
		}
		offsets = append(offsets, off)
		from = off + TagSize
	}
}

// search scans forward from offset from. A tag that would extend past the
// end of the payload is not found.
func (l *Locator) search(tag Tag, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(l.data)-TagSize {
		return -1, false
	}
	i := bytes.Index(l.data[from:], tag[:])
	if i < 0 {
		return -1, false
	}
	return from + i, true
}

// Occurrence is one tag with every offset it was found at
type Occurrence struct {
	Tag     Tag   `json:"tag"`
	Count   int   `json:"count"`
	Offsets []int `json:"offsets"`
}

// Inventory reports the offsets of every known tag, in KnownTags order
func (l *Locator) Inventory() []Occurrence {
	out := make([]Occurrence, 0, len(KnownTags))
	for _, tag := range KnownTags {
		offsets := l.All(tag)
		if offsets == nil {
			offsets = []int{}
		}
		out = append(out, Occurrence{Tag: tag, Count: len(offsets), Offsets: offsets})
	}
	return out
}

// Sorted returns every located block of the known tags ordered by offset
func Sorted(inv []Occurrence) []Position {
	var out []Position
	for _, occ := range inv {
		for _, off := range occ.Offsets {
			out = append(out, Position{Tag: occ.Tag, Offset: off})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// Position is a single located block
type Position struct {
	Tag    Tag `json:"tag"`
	Offset int `json:"offset"`
}
