package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultHomeName is used in titles when the home team has no name
	DefaultHomeName = "Home"
	// DefaultAwayName is used in titles when the away team has no name
	DefaultAwayName = "Away"
)

// Team is one side of a fixture. Score is nil until the match has started.
type Team struct {
	Name  string `json:"name"`
	Score *int   `json:"score,omitempty"`
}

// Fixture represents a single scheduled (or not yet scheduled) match
type Fixture struct {
	ID          string
	Home        Team
	Away        Team
	Kickoff     Kickoff
	Started     bool
	Finished    bool
	Cancelled   bool
	Competition string
	Round       string
}

// HomeName returns the home team name or DefaultHomeName
func (f Fixture) HomeName() string {
	if name := strings.TrimSpace(f.Home.Name); name != "" {
		return name
	}
	return DefaultHomeName
}

// AwayName returns the away team name or DefaultAwayName
func (f Fixture) AwayName() string {
	if name := strings.TrimSpace(f.Away.Name); name != "" {
		return name
	}
	return DefaultAwayName
}

// Matchup returns "<home> vs <away>"
func (f Fixture) Matchup() string {
	return fmt.Sprintf("%s vs %s", f.HomeName(), f.AwayName())
}

// HasScore reports whether both scores are known
func (f Fixture) HasScore() bool {
	return f.Home.Score != nil && f.Away.Score != nil
}

// Score returns the score as "h - a", or "" when the match has no score yet
func (f Fixture) Score() string {
	if !f.HasScore() {
		return ""
	}
	return fmt.Sprintf("%d - %d", *f.Home.Score, *f.Away.Score)
}

// scalar decodes a JSON string or number into its textual form
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = scalar(num.String())
	return nil
}

type wireStatus struct {
	UTCTime   string `json:"utcTime,omitempty"`
	Started   bool   `json:"started"`
	Finished  bool   `json:"finished"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

type wireTournament struct {
	Name string `json:"name,omitempty"`
}

// wireFixture is the JSON shape served by the fixtures endpoint
type wireFixture struct {
	ID         scalar          `json:"id"`
	Home       *Team           `json:"home,omitempty"`
	Away       *Team           `json:"away,omitempty"`
	Status     *wireStatus     `json:"status,omitempty"`
	Tournament *wireTournament `json:"tournament,omitempty"`
	LeagueName string          `json:"leagueName,omitempty"`
	Round      scalar          `json:"round,omitempty"`
	TimeTS     *float64        `json:"timeTS,omitempty"`
}

// UnmarshalJSON decodes the wire shape. A missing or malformed kickoff makes the
// fixture Unscheduled rather than failing.
func (f *Fixture) UnmarshalJSON(data []byte) error {
	var w wireFixture
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Fixture{
		ID:          string(w.ID),
		Competition: strings.TrimSpace(w.LeagueName),
		Round:       string(w.Round),
		Kickoff:     w.kickoff(),
	}
	if w.Home != nil {
		out.Home = *w.Home
	}
	if w.Away != nil {
		out.Away = *w.Away
	}
	if w.Status != nil {
		out.Started = w.Status.Started
		out.Finished = w.Status.Finished
		out.Cancelled = w.Status.Cancelled
	}
	if w.Tournament != nil && strings.TrimSpace(w.Tournament.Name) != "" {
		out.Competition = strings.TrimSpace(w.Tournament.Name)
	}

	*f = out
	return nil
}

// MarshalJSON encodes the fixture in the same shape it is decoded from
func (f Fixture) MarshalJSON() ([]byte, error) {
	home, away := f.Home, f.Away
	w := wireFixture{
		ID:    scalar(f.ID),
		Home:  &home,
		Away:  &away,
		Round: scalar(f.Round),
		Status: &wireStatus{
			Started:   f.Started,
			Finished:  f.Finished,
			Cancelled: f.Cancelled,
		},
	}
	if t, ok := f.Kickoff.Time(); ok {
		w.Status.UTCTime = t.UTC().Format(time.RFC3339)
	}
	if f.Competition != "" {
		w.Tournament = &wireTournament{Name: f.Competition}
	}
	return json.Marshal(w)
}

func (s scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// kickoff resolves status.utcTime, falling back to the timeTS epoch value
func (w wireFixture) kickoff() Kickoff {
	if w.Status != nil && w.Status.UTCTime != "" {
		if t, err := ParseKickoff(w.Status.UTCTime); err == nil {
			return Scheduled(t)
		}
	}
	if w.TimeTS != nil && *w.TimeTS > 0 {
		return Scheduled(fromEpoch(*w.TimeTS))
	}
	return Unscheduled()
}

// fromEpoch accepts both seconds and milliseconds since the epoch
func fromEpoch(ts float64) time.Time {
	if ts > 1e11 {
		return time.UnixMilli(int64(ts)).UTC()
	}
	return time.Unix(int64(ts), 0).UTC()
}
