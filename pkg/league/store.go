package league

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Errors
var (
	ErrCapacity = errors.New("record capacity exceeded")
	ErrSealed   = errors.New("store is sealed")
)

// Store collects the records of one parse session in discovery order.
// Each kind is bounded by its capacity; records offered beyond it are
// dropped. After Seal the store is read-only. Accessors return copies.
type Store struct {
	league       League
	hasLeague    bool
	conferences  []Conference
	divisions    []Division
	teams        []Team
	rosterBlocks int
	sealed       bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		conferences: make([]Conference, 0, MaxConferences),
		divisions:   make([]Division, 0, MaxDivisions),
		teams:       make([]Team, 0, MaxTeams),
	}
}

// SetLeague records the league header. Only the first call takes effect.
func (s *Store) SetLeague(l League) bool {
	if s.sealed || s.hasLeague {
		return false
	}
	s.league = l
	s.hasLeague = true
	return true
}

// AddConference appends c, reporting false when the store is full
func (s *Store) AddConference(c Conference) bool {
	if s.sealed || len(s.conferences) >= MaxConferences {
		return false
	}
	s.conferences = append(s.conferences, c)
	return true
}

// AddDivision appends d, reporting false when the store is full
func (s *Store) AddDivision(d Division) bool {
	if s.sealed || len(s.divisions) >= MaxDivisions {
		return false
	}
	s.divisions = append(s.divisions, d)
	return true
}

// AddTeam appends t, reporting false when the store is full
func (s *Store) AddTeam(t Team) bool {
	if s.sealed || len(s.teams) >= MaxTeams {
		return false
	}
	s.teams = append(s.teams, t)
	return true
}

// SetRosterBlocks records how many roster blocks were located
func (s *Store) SetRosterBlocks(n int) bool {
	if s.sealed {
		return false
	}
	s.rosterBlocks = n
	return true
}

// Seal makes the store read-only
func (s *Store) Seal() {
	s.sealed = true
}

// Sealed reports whether Seal has been called
func (s *Store) Sealed() bool {
	return s.sealed
}

// Full reports whether kind has reached its capacity
func (s *Store) Full(kind Kind) bool {
	switch kind {
	case KindLeague:
		return s.hasLeague
	case KindConference:
		return len(s.conferences) >= MaxConferences
	case KindDivision:
		return len(s.divisions) >= MaxDivisions
	case KindTeam:
		return len(s.teams) >= MaxTeams
	default:
		return true
	}
}

// League returns the league header, or the defaults when none was set
func (s *Store) League() League {
	if !s.hasLeague {
		return DefaultLeague()
	}
	return s.league
}

// HasLeague reports whether a league header was recorded
func (s *Store) HasLeague() bool {
	return s.hasLeague
}

// Conferences returns the conferences in discovery order
func (s *Store) Conferences() []Conference {
	out := make([]Conference, len(s.conferences))
	copy(out, s.conferences)
	return out
}

// Divisions returns the divisions in discovery order
func (s *Store) Divisions() []Division {
	out := make([]Division, len(s.divisions))
	copy(out, s.divisions)
	return out
}

// Teams returns the teams in discovery order
func (s *Store) Teams() []Team {
	out := make([]Team, len(s.teams))
	copy(out, s.teams)
	return out
}

// Counts returns the number of records of each kind
func (s *Store) Counts() Counts {
	return Counts{
		Conferences:  len(s.conferences),
		Divisions:    len(s.divisions),
		Teams:        len(s.teams),
		RosterBlocks: s.rosterBlocks,
	}
}

// document is the serialized form. Field order is the output order.
type document struct {
	League      League       `json:"league"`
	Conferences []Conference `json:"conferences"`
	Divisions   []Division   `json:"divisions"`
	Teams       []Team       `json:"teams"`
}

// MarshalJSON renders the store as
// {league, conferences, divisions, teams}. Empty kinds render as [].
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		League:      s.League(),
		Conferences: s.Conferences(),
		Divisions:   s.Divisions(),
		Teams:       s.Teams(),
	})
}

// UnmarshalJSON restores a store written by MarshalJSON. Team ids are
// reassigned by position and the result is sealed.
func (s *Store) UnmarshalJSON(data []byte) error {
	if s.sealed {
		return ErrSealed
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode league document: %w", err)
	}

	switch {
	case len(doc.Conferences) > MaxConferences:
		return fmt.Errorf("%w: %d conferences", ErrCapacity, len(doc.Conferences))
	case len(doc.Divisions) > MaxDivisions:
		return fmt.Errorf("%w: %d divisions", ErrCapacity, len(doc.Divisions))
	case len(doc.Teams) > MaxTeams:
		return fmt.Errorf("%w: %d teams", ErrCapacity, len(doc.Teams))
	}

	*s = *NewStore()
	s.SetLeague(doc.League)
	for _, c := range doc.Conferences {
		s.AddConference(c)
	}
	for _, d := range doc.Divisions {
		s.AddDivision(d)
	}
	for i, t := range doc.Teams {
		t.ID = i
		s.AddTeam(t)
	}
	s.Seal()
	return nil
}
