package codec

import (
	"bytes"
	"fmt"

	"github.com/ssargent/lgeparse/pkg/block"
	"github.com/ssargent/lgeparse/pkg/league"
)

// Heuristic parameters. These are part of the format contract.
const (
	// LeagueWindow is the number of bytes after the league tag searched for
	// the name and trophy anchors
	LeagueWindow = 200
	// GroupWindow is the number of bytes after a conference or division tag
	// searched for the name anchor
	GroupWindow = 50
	// GroupIDOffset is the distance from the end of the tag to the id byte
	GroupIDOffset = 4

	// TeamHeaderSize is skipped after the team tag
	TeamHeaderSize = 8
	// TeamNameOffset is the distance from the end of the header to the name
	TeamNameOffset = 20
	// TeamNameScan bounds the candidate name read, including the terminator
	TeamNameScan = 50
	// TeamNameLimit rejects candidate names of this length or longer
	TeamNameLimit = 30
)

// Team placeholders. These fields are not decoded.
const (
	PlaceholderMascot       = "Team"
	PlaceholderAbbreviation = "TM"
	PlaceholderStadium      = "Stadium"
	PlaceholderCoach        = "Coach"
)

var trophyAnchor = []byte("Bowl")

// LeagueAnchors are the positions the league heuristics matched, or -1
type LeagueAnchors struct {
	Name   int
	Trophy int
}

// FindLeagueAnchors applies the league name and trophy rules to the block
// whose tag starts at off
func FindLeagueAnchors(data []byte, off int) LeagueAnchors {
	anchors := LeagueAnchors{Name: -1, Trophy: -1}
	if off < 0 || off >= len(data) {
		return anchors
	}

	start := off + block.TagSize
	end := start + LeagueWindow
	if end > len(data) {
		end = len(data)
	}

	for i := start; i < end; i++ {
		if anchors.Name < 0 && i+1 < len(data) && isUpper(data[i]) && isUpper(data[i+1]) {
			anchors.Name = i
		}
		if anchors.Trophy < 0 && bytes.HasPrefix(data[i:], trophyAnchor) {
			s := i
			for s > start && data[s-1] >= ' ' {
				s--
			}
			anchors.Trophy = s
		}
		if anchors.Name >= 0 && anchors.Trophy >= 0 {
			break
		}
	}
	return anchors
}

// DecodeLeague decodes the league block whose tag starts at off
func DecodeLeague(data []byte, off int) league.League {
	rec := league.DefaultLeague()

	anchors := FindLeagueAnchors(data, off)
	if anchors.Name >= 0 {
		rec.Name = ReadString(data, anchors.Name, league.NameWidth)
	}
	if anchors.Trophy >= 0 {
		rec.Trophy = ReadString(data, anchors.Trophy, league.TrophyWidth)
	}
	return rec
}

// FindGroupName returns the position of the first mixed-case name in the
// conference or division block at off, or -1
func FindGroupName(data []byte, off int) int {
	if off < 0 || off >= len(data) {
		return -1
	}

	start := off + block.TagSize
	end := start + GroupWindow
	if end > len(data) {
		end = len(data)
	}

	for i := start; i < end && i+1 < len(data); i++ {
		if isUpper(data[i]) && isLower(data[i+1]) {
			return i
		}
	}
	return -1
}

// groupID reads the id byte of the block at off, or 0 when it is out of range
func groupID(data []byte, off int) uint8 {
	at := off + block.TagSize + GroupIDOffset
	if off < 0 || at >= len(data) {
		return 0
	}
	return data[at]
}

func decodeGroup(data []byte, off int, fallback string) (string, uint8) {
	name := fallback
	if at := FindGroupName(data, off); at >= 0 {
		name = ReadString(data, at, league.NameWidth)
	}
	return name, groupID(data, off)
}

// DecodeConference decodes the conference block at off. index is the
// zero-based discovery index, used for the fallback name.
func DecodeConference(data []byte, off, index int) league.Conference {
	name, id := decodeGroup(data, off, fmt.Sprintf("Conference %d", index+1))
	return league.Conference{Name: name, ID: id}
}

// DecodeDivision decodes the division block at off. index is the zero-based
// discovery index, used for the fallback name.
func DecodeDivision(data []byte, off, index int) league.Division {
	name, id := decodeGroup(data, off, fmt.Sprintf("Division %d", index+1))
	return league.Division{Name: name, ID: id}
}

// DecodeTeam decodes the team block at off. id is the zero-based discovery
// index. Only the name is read from the block.
func DecodeTeam(data []byte, off, id int) league.Team {
	t := league.Team{
		ID:           id,
		Mascot:       PlaceholderMascot,
		Abbreviation: PlaceholderAbbreviation,
		Stadium:      PlaceholderStadium,
		Coach:        PlaceholderCoach,
	}
	if off < 0 {
		return t
	}

	raw := readBytes(data, off+block.TagSize+TeamHeaderSize+TeamNameOffset, TeamNameScan-1)
	if n := len(raw); n > 0 && n < TeamNameLimit {
		if n > league.TeamNameWidth {
			raw = raw[:league.TeamNameWidth]
		}
		t.Name = decodeText(raw)
	}
	return t
}
