package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
)

const (
	// ProdID identifies the producer of the generated documents
	ProdID = "-//Stadium Fixtures//stadium-fixtures//EN"

	// ContentType is the MIME type of a calendar document
	ContentType = "text/calendar; charset=utf-8"

	// CombinedFilename is the download name of the all-matches document
	CombinedFilename = "sammy-ofer-matches.ics"

	// CombinedName is the X-WR-CALNAME of the all-matches document
	CombinedName = "Sammy Ofer Stadium Matches"

	// RFC 5545 §3.1: lines SHOULD NOT be longer than 75 octets
	maxLineOctets = 75
)

// now stamps DTSTAMP; tests replace it
var now = time.Now

// Document is a VCALENDAR holding zero or more events
type Document struct {
	// Name becomes X-WR-CALNAME when set
	Name   string
	Events []*Event
}

// BuildCombined builds one document holding an event for every scheduled fixture.
// Returns nil for an empty list. Unscheduled fixtures are skipped individually, so a
// list where every fixture is unscheduled still yields a document with no events.
// Fixtures repeating an already seen ID are skipped to keep UIDs unique.
func BuildCombined(fixtures []fixture.Fixture) *Document {
	if len(fixtures) == 0 {
		return nil
	}

	doc := &Document{
		Name:   CombinedName,
		Events: make([]*Event, 0, len(fixtures)),
	}

	seen := make(map[string]bool)
	for _, f := range fixtures {
		evt := BuildEvent(f)
		if evt == nil {
			continue
		}
		if seen[evt.UID] {
			continue
		}
		seen[evt.UID] = true
		doc.Events = append(doc.Events, evt)
	}

	return doc
}

// Len returns the number of event blocks in the document
func (d *Document) Len() int {
	return len(d.Events)
}

// String renders the document as iCalendar text with CRLF line endings
func (d *Document) String() string {
	var ics strings.Builder

	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:"+ProdID)
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	if d.Name != "" {
		writeLine(&ics, "X-WR-CALNAME:"+escapeICS(d.Name))
	}

	stamp := FormatTimestamp(now())
	for _, evt := range d.Events {
		writeEvent(&ics, evt, stamp)
	}

	writeLine(&ics, "END:VCALENDAR")

	return ics.String()
}

// Bytes returns the rendered document
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

// DataURL returns the document as a percent-encoded data: link
func (d *Document) DataURL() string {
	encoded := strings.ReplaceAll(url.QueryEscape(d.String()), "+", "%20")
	return "data:" + ContentType + "," + encoded
}

// writeEvent writes one VEVENT block
func writeEvent(ics *strings.Builder, evt *Event, stamp string) {
	writeLine(ics, "BEGIN:VEVENT")
	writeLine(ics, "UID:"+evt.UID)
	writeLine(ics, "DTSTAMP:"+stamp)
	writeLine(ics, "DTSTART:"+FormatTimestamp(evt.Start))
	writeLine(ics, "DTEND:"+FormatTimestamp(evt.End))
	writeLine(ics, "SUMMARY:"+escapeICS(evt.Title))
	writeLine(ics, "DESCRIPTION:"+escapeICS(evt.Description))
	writeLine(ics, "LOCATION:"+escapeICS(evt.Location))
	writeLine(ics, "STATUS:CONFIRMED")
	writeLine(ics, "TRANSP:OPAQUE")
	writeLine(ics, "END:VEVENT")
}

// writeLine writes a content line, folding it at 75 octets without splitting a
// UTF-8 sequence. Continuation lines start with a single space.
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

// escapeICS escapes special characters for iCalendar text values
func escapeICS(s string) string {
	// Backslash first so the escapes below are not doubled
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func (e *Event) String() string {
	return fmt.Sprintf("<%s %s/%s>", e.Title, FormatTimestamp(e.Start), FormatTimestamp(e.End))
}
