package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
)

func fixedClock(t *testing.T) {
	t.Helper()
	original := now
	now = func() time.Time { return time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = original })
}

func scheduled(id, home, away string, kickoff time.Time) fixture.Fixture {
	return fixture.Fixture{
		ID:      id,
		Home:    fixture.Team{Name: home},
		Away:    fixture.Team{Name: away},
		Kickoff: fixture.Scheduled(kickoff),
	}
}

func TestBuildEvent_Scenario(t *testing.T) {
	f := scheduled("42", "Maccabi", "Hapoel", time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC))

	evt := BuildEvent(f)
	if evt == nil {
		t.Fatal("BuildEvent() returned nil for a scheduled fixture")
	}

	if evt.Title != "Maccabi vs Hapoel" {
		t.Errorf("Title = %q, want %q", evt.Title, "Maccabi vs Hapoel")
	}
	if got := FormatTimestamp(evt.Start); got != "20250301T180000Z" {
		t.Errorf("Start = %q, want %q", got, "20250301T180000Z")
	}
	if got := FormatTimestamp(evt.End); got != "20250301T200000Z" {
		t.Errorf("End = %q, want %q", got, "20250301T200000Z")
	}
	if evt.Description != "Israeli Premier League match at Sammy Ofer Stadium, Haifa" {
		t.Errorf("Description = %q", evt.Description)
	}
	if evt.Location != Venue {
		t.Errorf("Location = %q, want %q", evt.Location, Venue)
	}
	if evt.UID != "match-42@stadium-fixtures" {
		t.Errorf("UID = %q, want %q", evt.UID, "match-42@stadium-fixtures")
	}
	if evt.Filename() != "match-42.ics" {
		t.Errorf("Filename() = %q, want %q", evt.Filename(), "match-42.ics")
	}
}

func TestBuildEvent_Unscheduled(t *testing.T) {
	if evt := BuildEvent(fixture.Fixture{ID: "1", Home: fixture.Team{Name: "Maccabi"}}); evt != nil {
		t.Errorf("BuildEvent() = %v, want nil for unscheduled fixture", evt)
	}
}

func TestBuildEvent_Fallbacks(t *testing.T) {
	f := fixture.Fixture{
		ID:          "7",
		Kickoff:     fixture.Scheduled(time.Date(2025, 5, 10, 17, 0, 0, 0, time.UTC)),
		Competition: "State Cup",
	}

	evt := BuildEvent(f)
	if evt.Title != "Home vs Away" {
		t.Errorf("Title = %q, want %q", evt.Title, "Home vs Away")
	}
	if evt.Description != "State Cup match at Sammy Ofer Stadium, Haifa" {
		t.Errorf("Description = %q", evt.Description)
	}
}

func TestBuildEvent_EndIsStartPlusTwoHours(t *testing.T) {
	jerusalem := time.FixedZone("IST", 2*60*60)
	kickoffs := []time.Time{
		time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC), // crosses the year
		time.Date(2025, 3, 28, 1, 15, 0, 0, jerusalem),
		time.Date(2024, 2, 29, 22, 45, 15, 0, time.UTC), // leap day
	}

	for _, k := range kickoffs {
		evt := BuildEvent(scheduled("1", "A", "B", k))
		if !evt.End.Equal(k.Add(2 * time.Hour)) {
			t.Errorf("End = %v, want %v", evt.End, k.Add(2*time.Hour))
		}
		if !evt.Start.Equal(k) {
			t.Errorf("Start = %v, want %v", evt.Start, k)
		}
	}
}

func TestBuildEvent_UIDWithoutID(t *testing.T) {
	k := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	a := BuildEvent(scheduled("", "Maccabi", "Hapoel", k))
	b := BuildEvent(scheduled("", "Maccabi", "Hapoel", k))
	c := BuildEvent(scheduled("", "Maccabi", "Beitar", k))

	if a.UID != b.UID {
		t.Errorf("UID should be deterministic: %q vs %q", a.UID, b.UID)
	}
	if a.UID == c.UID {
		t.Error("different fixtures should get different UIDs")
	}
	if a.Filename() != "match-20250301T180000Z.ics" {
		t.Errorf("Filename() = %q", a.Filename())
	}
}

func TestEvent_Filename(t *testing.T) {
	k := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		id   string
		want string
	}{
		{id: "42", want: "match-42.ics"},
		{id: "../../etc/cron.d/x", want: "match-..-..-etc-cron.d-x.ics"},
		{id: `..\windows`, want: "match-..-windows.ics"},
		{id: "a b:c", want: "match-a-b-c.ics"},
		{id: "משחק_7", want: "match-משחק_7.ics"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := BuildEvent(scheduled(tt.id, "Maccabi", "Hapoel", k)).Filename()
			if got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
			if strings.ContainsAny(got, `/\`) {
				t.Errorf("Filename() = %q holds a path separator", got)
			}
		})
	}
}

func TestDocument_SingleEvent(t *testing.T) {
	fixedClock(t)
	evt := BuildEvent(scheduled("42", "Maccabi", "Hapoel", time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)))

	ics := evt.Document().String()

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Stadium Fixtures//stadium-fixtures//EN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:match-42@stadium-fixtures",
		"DTSTAMP:20250201T090000Z",
		"DTSTART:20250301T180000Z",
		"DTEND:20250301T200000Z",
		"SUMMARY:Maccabi vs Hapoel",
		"DESCRIPTION:Israeli Premier League match at Sammy Ofer Stadium\\, Haifa",
		"LOCATION:Sammy Ofer Stadium\\, Haifa", // Comma is escaped
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field+"\r\n") {
			t.Errorf("ICS missing required line: %s", field)
		}
	}

	if strings.Contains(ics, "X-WR-CALNAME") {
		t.Error("single-event document should not carry a calendar name")
	}
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("document should be wrapped in VCALENDAR with CRLF endings")
	}
}

func TestBuildCombined(t *testing.T) {
	fixedClock(t)
	base := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		scheduled("1", "Maccabi Haifa", "Hapoel Tel Aviv", base),
		{ID: "2", Home: fixture.Team{Name: "Hapoel Haifa"}}, // unscheduled
		scheduled("3", "Hapoel Haifa", "Beitar Jerusalem", base.Add(7*24*time.Hour)),
		scheduled("4", "Maccabi Haifa", "Bnei Sakhnin", base.Add(14*24*time.Hour)),
	}

	doc := BuildCombined(fixtures)
	if doc == nil {
		t.Fatal("BuildCombined() returned nil")
	}
	if doc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", doc.Len())
	}

	ics := doc.String()

	if n := strings.Count(ics, "BEGIN:VCALENDAR"); n != 1 {
		t.Errorf("expected 1 BEGIN:VCALENDAR, got %d", n)
	}
	if n := strings.Count(ics, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("expected 3 BEGIN:VEVENT, got %d", n)
	}
	if n := strings.Count(ics, "END:VEVENT"); n != 3 {
		t.Errorf("expected 3 END:VEVENT, got %d", n)
	}
	if !strings.Contains(ics, "X-WR-CALNAME:Sammy Ofer Stadium Matches\r\n") {
		t.Error("combined document should carry a calendar name")
	}

	for _, id := range []string{"1", "3", "4"} {
		uid := "UID:match-" + id + "@stadium-fixtures"
		if !strings.Contains(ics, uid) {
			t.Errorf("missing UID for fixture %s", id)
		}
	}
	if strings.Contains(ics, "UID:match-2@") {
		t.Error("unscheduled fixture should be skipped")
	}
}

func TestBuildCombined_Empty(t *testing.T) {
	if doc := BuildCombined(nil); doc != nil {
		t.Error("BuildCombined(nil) should return nil")
	}
	if doc := BuildCombined([]fixture.Fixture{}); doc != nil {
		t.Error("BuildCombined([]) should return nil")
	}
}

func TestBuildCombined_AllUnscheduled(t *testing.T) {
	doc := BuildCombined([]fixture.Fixture{{ID: "1"}})
	if doc == nil {
		t.Fatal("BuildCombined() should return a header-only document, got nil")
	}
	if doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}

	ics := doc.String()
	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "END:VCALENDAR") {
		t.Error("header/footer missing")
	}
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("document should contain no events")
	}
}

func TestBuildCombined_DuplicateIDs(t *testing.T) {
	base := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	doc := BuildCombined([]fixture.Fixture{
		scheduled("1", "A", "B", base),
		scheduled("1", "A", "B", base),
		scheduled("2", "C", "D", base),
	})

	if doc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", doc.Len())
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 19, 7, 5, 9, 123456789, time.UTC),
		time.Date(2025, 8, 15, 21, 45, 30, 0, time.FixedZone("IDT", 3*60*60)),
	}

	for _, in := range instants {
		got, err := ParseTimestamp(FormatTimestamp(in))
		if err != nil {
			t.Fatalf("ParseTimestamp() error = %v", err)
		}
		if !got.Equal(in.Truncate(time.Second)) {
			t.Errorf("round trip of %v = %v", in, got)
		}
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025-03-01T18:00:00Z", "20250301T1800Z"} {
		if _, err := ParseTimestamp(s); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", s)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	testTime := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	if got := FormatTimestamp(testTime); got != "20260315T143000Z" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "20260315T143000Z")
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with, comma", "Text with\\, comma"},
		{"Text with; semicolon", "Text with\\; semicolon"},
		{"Text with\\backslash", "Text with\\\\backslash"},
		{"Text with\nnewline", "Text with\\nnewline"},
		{"All, special; chars\\\n", "All\\, special\\; chars\\\\\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeICS(tt.input)
			if got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if back := ical.FromText(got); back != tt.input {
				t.Errorf("FromText(%q) = %q, want %q", got, back, tt.input)
			}
		})
	}
}

func TestWriteLine_Folding(t *testing.T) {
	long := "SUMMARY:" + strings.Repeat("מכבי חיפה נגד הפועל ", 8)

	var b strings.Builder
	writeLine(&b, long)
	out := b.String()

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	if len(lines) < 2 {
		t.Fatalf("expected the line to be folded, got %d line(s)", len(lines))
	}
	for i, line := range lines {
		if len(line) > maxLineOctets {
			t.Errorf("line %d is %d octets, want <= %d", i, len(line), maxLineOctets)
		}
		if i > 0 && !strings.HasPrefix(line, " ") {
			t.Errorf("continuation line %d should start with a space", i)
		}
	}

	// Unfolding restores the original text
	unfolded := strings.ReplaceAll(strings.TrimSuffix(out, "\r\n"), "\r\n ", "")
	if unfolded != long {
		t.Error("unfolded line does not match the original")
	}
}

func TestGoogleCalendarURL(t *testing.T) {
	evt := BuildEvent(scheduled("42", "Maccabi", "Hapoel", time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)))

	link := evt.GoogleCalendarURL()
	if !strings.HasPrefix(link, GoogleCalendarBaseURL+"?") {
		t.Fatalf("link %q should start with %q", link, GoogleCalendarBaseURL)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	q := u.Query()

	want := map[string]string{
		"action":   "TEMPLATE",
		"text":     "Maccabi vs Hapoel",
		"dates":    "20250301T180000Z/20250301T200000Z",
		"details":  "Israeli Premier League match at Sammy Ofer Stadium, Haifa",
		"location": "Sammy Ofer Stadium, Haifa",
	}
	for key, value := range want {
		if got := q.Get(key); got != value {
			t.Errorf("query %s = %q, want %q", key, got, value)
		}
	}
}

func TestDataURL(t *testing.T) {
	evt := BuildEvent(scheduled("42", "Maccabi", "Hapoel", time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)))
	doc := evt.Document()

	link := doc.DataURL()
	prefix := "data:text/calendar; charset=utf-8,"
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("DataURL() should start with %q", prefix)
	}

	body := strings.TrimPrefix(link, prefix)
	if strings.ContainsAny(body, " \r\n+") {
		t.Error("DataURL() body should be fully percent-encoded")
	}

	decoded, err := url.PathUnescape(body)
	if err != nil {
		t.Fatalf("PathUnescape() error = %v", err)
	}
	if !strings.Contains(decoded, "SUMMARY:Maccabi vs Hapoel") {
		t.Error("decoded data URL should contain the event")
	}
}
