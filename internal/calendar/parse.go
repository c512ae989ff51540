package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ParsedEvent is a VEVENT read back from a calendar document
type ParsedEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Parse reads a calendar document and returns its events in document order.
// Text values come back unescaped.
func Parse(r io.Reader) ([]ParsedEvent, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := make([]ParsedEvent, 0)
	for _, ve := range cal.Events() {
		evt, err := parseVEvent(ve)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (ParsedEvent, error) {
	var out ParsedEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("parsing calendar: event without UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("parsing calendar: event %s: %w", out.UID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, fmt.Errorf("parsing calendar: event %s: %w", out.UID, err)
	}
	out.Start = start.UTC()
	out.End = end.UTC()

	return out, nil
}
