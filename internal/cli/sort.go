package cli

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	// SortNone keeps the order the backend returned
	SortNone    SortOrder = "none"
	SortKickoff SortOrder = "kickoff"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortNone, SortKickoff:
		return order, nil
	case "":
		return SortNone, nil
	default:
		return "", fmt.Errorf("invalid sort: %s (must be 'none' or 'kickoff')", s)
	}
}

// sortFixtures returns fixtures in the requested order without touching the input
func sortFixtures(fixtures []fixture.Fixture, order SortOrder) []fixture.Fixture {
	out := append([]fixture.Fixture(nil), fixtures...)
	if order == SortKickoff {
		fixture.SortByKickoff(out)
	}
	return out
}
