package fixture

import (
	"fmt"
	"strings"
	"time"
)

// Kickoff is the scheduled start of a fixture: either Scheduled at an instant or
// Unscheduled. The zero value is Unscheduled.
type Kickoff struct {
	at        time.Time
	scheduled bool
}

// Scheduled returns a kickoff at t
func Scheduled(t time.Time) Kickoff {
	return Kickoff{at: t, scheduled: true}
}

// Unscheduled returns a kickoff with no start instant
func Unscheduled() Kickoff {
	return Kickoff{}
}

// Time returns the kickoff instant and whether the fixture is scheduled
func (k Kickoff) Time() (time.Time, bool) {
	return k.at, k.scheduled
}

// IsScheduled reports whether the kickoff carries a start instant
func (k Kickoff) IsScheduled() bool {
	return k.scheduled
}

// After reports whether the kickoff is scheduled strictly later than t
func (k Kickoff) After(t time.Time) bool {
	return k.scheduled && k.at.After(t)
}

func (k Kickoff) String() string {
	if !k.scheduled {
		return "unscheduled"
	}
	return k.at.UTC().Format(time.RFC3339)
}

// kickoffLayouts are tried in order by ParseKickoff
var kickoffLayouts = []string{
	time.RFC3339Nano,         // "2025-03-01T18:00:00Z", "2025-03-01T18:00:00.000Z"
	"2006-01-02T15:04:05",    // no zone, treated as UTC
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseKickoff parses a status.utcTime value.
// Values without a zone are interpreted as UTC.
func ParseKickoff(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty kickoff time")
	}

	for _, layout := range kickoffLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised kickoff time: %q", s)
}
