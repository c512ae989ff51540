package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/stadium-fixtures/internal/backend"
	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func parseFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
	}
}

// MatchCard is one upcoming match as the CLI prints it
type MatchCard struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Kickoff     time.Time `json:"kickoff" yaml:"kickoff"`
	Competition string    `json:"competition,omitempty" yaml:"competition,omitempty"`
	Round       string    `json:"round,omitempty" yaml:"round,omitempty"`
	Score       string    `json:"score,omitempty" yaml:"score,omitempty"`
	CalendarURL string    `json:"calendar_url,omitempty" yaml:"calendar_url,omitempty"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time        `json:"checked_at" yaml:"checked_at"`
	Stadium    *backend.Stadium `json:"stadium,omitempty" yaml:"stadium,omitempty"`
	Matches    []MatchCard      `json:"matches" yaml:"matches"`
	MatchCount int              `json:"match_count" yaml:"match_count"`
	Total      int              `json:"total" yaml:"total"`
}

// newCard builds the printed card for a scheduled fixture, in loc
func newCard(f fixture.Fixture, loc *time.Location) MatchCard {
	card := MatchCard{
		ID:          f.ID,
		Title:       f.Matchup(),
		Competition: f.Competition,
		Round:       f.Round,
	}
	if t, ok := f.Kickoff.Time(); ok {
		card.Kickoff = t.In(loc)
	}
	if f.HasScore() {
		card.Score = f.Score()
	}
	if evt := calendar.BuildEvent(f); evt != nil {
		card.CalendarURL = evt.GoogleCalendarURL()
	}
	return card
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeYAML(w io.Writer, result *OutputResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return encoder.Close()
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if s := result.Stadium; s != nil && s.Name != "" {
		if loc := s.Location(); loc != "" {
			fmt.Fprintf(w, "%s (%s)\n\n", s.Name, loc)
		} else {
			fmt.Fprintf(w, "%s\n\n", s.Name)
		}
	}

	if result.MatchCount == 0 {
		fmt.Fprintln(w, "No upcoming matches found.")
		return nil
	}

	for _, m := range result.Matches {
		fmt.Fprintf(w, "%s  %s\n", m.Kickoff.Format("Mon 2 Jan 2006, 15:04"), m.Title)
		if m.Competition != "" {
			line := "    " + m.Competition
			if m.Round != "" {
				line += ", " + m.Round
			}
			fmt.Fprintln(w, line)
		}
		if m.Score != "" {
			fmt.Fprintf(w, "    Score: %s\n", m.Score)
		}
		if verbose {
			fmt.Fprintf(w, "    ID: %s\n", m.ID)
			if m.CalendarURL != "" {
				fmt.Fprintf(w, "    Add to calendar: %s\n", m.CalendarURL)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d upcoming %s\n", result.MatchCount, pluralize(result.MatchCount, "match", "matches"))
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
