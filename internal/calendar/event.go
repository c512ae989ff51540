package calendar

import (
	"crypto/sha1"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
)

const (
	// EventDuration is the fixed length of every calendar entry. It is a policy
	// value, not the real match length.
	EventDuration = 2 * time.Hour

	// Venue is the location written into every event
	Venue = "Sammy Ofer Stadium, Haifa"

	// DefaultCompetition is used when a fixture carries no competition name
	DefaultCompetition = "Israeli Premier League"

	// GoogleCalendarBaseURL is the hosted calendar "add event" endpoint
	GoogleCalendarBaseURL = "https://calendar.google.com/calendar/render"

	uidDomain = "stadium-fixtures"
)

// Event is a calendar entry derived from a scheduled fixture
type Event struct {
	FixtureID   string
	UID         string
	Start       time.Time
	End         time.Time
	Title       string
	Description string
	Location    string
}

// BuildEvent derives a calendar event from a fixture.
// Returns nil when the fixture has no kickoff, which means it cannot be scheduled.
func BuildEvent(f fixture.Fixture) *Event {
	start, ok := f.Kickoff.Time()
	if !ok {
		return nil
	}
	start = start.UTC()

	competition := strings.TrimSpace(f.Competition)
	if competition == "" {
		competition = DefaultCompetition
	}

	evt := &Event{
		FixtureID:   f.ID,
		Start:       start,
		End:         start.Add(EventDuration),
		Title:       f.Matchup(),
		Description: fmt.Sprintf("%s match at %s", competition, Venue),
		Location:    Venue,
	}
	evt.UID = eventUID(evt)

	return evt
}

// eventUID derives the VEVENT UID from the fixture ID. Fixtures without an ID get a
// deterministic hash of title and start so repeated exports still deduplicate.
func eventUID(evt *Event) string {
	if evt.FixtureID != "" {
		return fmt.Sprintf("match-%s@%s", evt.FixtureID, uidDomain)
	}
	h := sha1.New()
	h.Write([]byte(evt.Title + "|" + FormatTimestamp(evt.Start)))
	return fmt.Sprintf("match-%x@%s", h.Sum(nil), uidDomain)
}

// Filename returns the suggested download name for the single-event document.
// Characters other than letters, digits, '.', '-' and '_' in the ID become '-', so
// the name never holds a path separator.
func (e *Event) Filename() string {
	id := e.FixtureID
	if id == "" {
		id = FormatTimestamp(e.Start)
	}
	return fmt.Sprintf("match-%s.ics", strings.Map(filenameRune, id))
}

func filenameRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
		return r
	default:
		return '-'
	}
}

// Document wraps the event in a complete single-event calendar document
func (e *Event) Document() *Document {
	return &Document{Events: []*Event{e}}
}

// GoogleCalendarURL returns a link that opens the event in Google Calendar's
// "add event" form.
func (e *Event) GoogleCalendarURL() string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("dates", FormatTimestamp(e.Start)+"/"+FormatTimestamp(e.End))
	q.Set("details", e.Description)
	q.Set("location", e.Location)

	return GoogleCalendarBaseURL + "?" + q.Encode()
}

// FormatTimestamp formats t in the compact UTC form YYYYMMDDTHHMMSSZ
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a YYYYMMDDTHHMMSSZ value produced by FormatTimestamp
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing calendar timestamp %q: %w", s, err)
	}
	return t, nil
}

const timestampLayout = "20060102T150405Z"
