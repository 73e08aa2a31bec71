// Package league holds the records recovered from a league file and the
// capacity-bounded store they are collected into.
package league

// Field widths in bytes, as laid out in the league file
const (
	NameWidth         = 24
	TrophyWidth       = 24
	TeamNameWidth     = 16
	MascotWidth       = 16
	AbbreviationWidth = 4
	StadiumWidth      = 24
	CoachWidth        = 24
)

// Capacities per record kind
const (
	MaxConferences = 8
	MaxDivisions   = 16
	MaxTeams       = 32
)

// Defaults used when a value cannot be recovered
const (
	DefaultLeagueName = "Unknown League"
	DefaultTrophy     = "Championship"
	DefaultSeasons    = 1
	DefaultInception  = 1995
)

// Kind identifies a record type
type Kind string

const (
	KindLeague     Kind = "league"
	KindConference Kind = "conference"
	KindDivision   Kind = "division"
	KindTeam       Kind = "team"
)

// League is the single league header record
type League struct {
	Name       string `json:"name"`
	Trophy     string `json:"trophy"`
	NumSeasons int    `json:"numSeasons"`
	Inception  int    `json:"inception"`
}

// DefaultLeague returns the league reported when no league block is found
func DefaultLeague() League {
	return League{
		Name:       DefaultLeagueName,
		Trophy:     DefaultTrophy,
		NumSeasons: DefaultSeasons,
		Inception:  DefaultInception,
	}
}

// Conference is a named conference. ID is the raw byte stored in the block.
type Conference struct {
	Name string `json:"name"`
	ID   uint8  `json:"id"`
}

// Division has the same shape as Conference. The file does not link
// divisions to conferences.
type Division struct {
	Name string `json:"name"`
	ID   uint8  `json:"id"`
}

// Record is a win/loss/tie line
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Team is a team block. ID is the discovery index, not a value from the file.
type Team struct {
	ID           int    `json:"-"`
	Name         string `json:"name"`
	Mascot       string `json:"mascot"`
	Abbreviation string `json:"abbreviation"`
	Stadium      string `json:"stadium"`
	Coach        string `json:"coach"`
	Record       Record `json:"record"`
}

// Counts summarises how many records of each kind a store holds
type Counts struct {
	Conferences  int `json:"conferences"`
	Divisions    int `json:"divisions"`
	Teams        int `json:"teams"`
	RosterBlocks int `json:"rosterBlocks"`
}
