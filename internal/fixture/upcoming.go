package fixture

import (
	"sort"
	"strings"
	"time"
)

// IsUpcoming reports whether the fixture kicks off strictly after now.
// Unscheduled fixtures are never upcoming.
func (f Fixture) IsUpcoming(now time.Time) bool {
	return f.Kickoff.After(now)
}

// Upcoming returns the fixtures that kick off strictly after now, preserving input order.
// Unscheduled fixtures are dropped silently.
func Upcoming(fixtures []Fixture, now time.Time) []Fixture {
	out := make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.IsUpcoming(now) {
			out = append(out, f)
		}
	}
	return out
}

// HomeTeamIn keeps fixtures whose home team name contains one of names
// (case-insensitive). An empty names list keeps every fixture.
func HomeTeamIn(fixtures []Fixture, names []string) []Fixture {
	wanted := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			wanted = append(wanted, n)
		}
	}
	if len(wanted) == 0 {
		return fixtures
	}

	out := make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		home := strings.ToLower(f.Home.Name)
		for _, n := range wanted {
			if strings.Contains(home, n) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// SortByKickoff sorts fixtures by kickoff, soonest first. Unscheduled fixtures go last
// and keep their relative order.
func SortByKickoff(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		ti, okI := fixtures[i].Kickoff.Time()
		tj, okJ := fixtures[j].Kickoff.Time()

		if okI && okJ {
			return ti.Before(tj)
		}
		// Scheduled before unscheduled
		return okI && !okJ
	})
}
