package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func jerusalem(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	return loc
}

func TestParseFixtures(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/stadium_schedule.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	loc := jerusalem(t)
	s := New("https://test.example.com", WithLocation(loc))
	fixtures, err := s.parseFixtures(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parseFixtures failed: %v", err)
	}

	// The TBD row and the two-column banner are skipped
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}

	first := fixtures[0]
	if first.Competition != "ליגת על" {
		t.Errorf("Competition = %q, want %q", first.Competition, "ליגת על")
	}
	if first.HomeName() != "מכבי חיפה" {
		t.Errorf("Home = %q, want %q", first.HomeName(), "מכבי חיפה")
	}
	if first.AwayName() != "הפועל תל אביב" {
		t.Errorf("Away = %q, want %q", first.AwayName(), "הפועל תל אביב")
	}
	kickoff, ok := first.Kickoff.Time()
	if !ok {
		t.Fatal("first fixture should be scheduled")
	}
	want := time.Date(2025, 3, 1, 20, 0, 0, 0, loc)
	if !kickoff.Equal(want) {
		t.Errorf("Kickoff = %v, want %v", kickoff, want)
	}
	// 20:00 in Haifa is 18:00 UTC before the DST switch
	if got := kickoff.UTC().Hour(); got != 18 {
		t.Errorf("Kickoff UTC hour = %d, want 18", got)
	}

	second := fixtures[1]
	if second.AwayName() != "בני 2 סחנין" {
		t.Errorf("Away = %q, want digit-only word untouched, got %q", "בני 2 סחנין", second.AwayName())
	}
	kickoff, _ = second.Kickoff.Time()
	if want := time.Date(2025, 3, 10, 19, 30, 0, 0, loc); !kickoff.Equal(want) {
		t.Errorf("two-digit year Kickoff = %v, want %v", kickoff, want)
	}

	for _, f := range fixtures {
		if len(f.ID) != 40 {
			t.Errorf("ID %q should be a SHA-1 hex digest", f.ID)
		}
	}
	if fixtures[0].ID == fixtures[1].ID {
		t.Error("different rows should get different IDs")
	}
}

func TestParseFixtures_Empty(t *testing.T) {
	s := New("https://test.example.com")
	fixtures, err := s.parseFixtures(strings.NewReader("<html><body><p>No matches</p></body></html>"))
	if err != nil {
		t.Fatalf("parseFixtures failed: %v", err)
	}
	if fixtures == nil || len(fixtures) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", fixtures)
	}
}

func TestParseDate(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"four digit year", "01/03/2025 20:00", time.Date(2025, 3, 1, 20, 0, 0, 0, loc), false},
		{"two digit year", "15/08/25 21:15", time.Date(2025, 8, 15, 21, 15, 0, 0, loc), false},
		{"weekday prefix", "יום שבת 01/03/2025 20:00", time.Date(2025, 3, 1, 20, 0, 0, 0, loc), false},
		{"nbsp", "שבת\u00a001/03/2025 20:00", time.Date(2025, 3, 1, 20, 0, 0, 0, loc), false},
		{"surrounding space", "  01/03/2025 20:00 \n", time.Date(2025, 3, 1, 20, 0, 0, 0, loc), false},
		{"month first", "03/31/2025 20:00", time.Time{}, true},
		{"no time", "01/03/2025", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"יבכמ הפיח", "מכבי חיפה"},
		{"  לעופה הפיח ", "הפועל חיפה"},
		{"ינב 2 ןינחס", "בני 2 סחנין"},
		{"Maccabi Haifa", "Maccabi Haifa"},
		{"2025", "2025"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := cleanText(tt.input); got != tt.want {
				t.Errorf("cleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	// e + combining acute composes to a single rune under NFC
	if got := normalize("e\u0301"); got != "\u00e9" {
		t.Errorf("normalize() = %q, want %q", got, "\u00e9")
	}
}

func TestFetchFixtures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		status    int
		wantError bool
		wantCount int
	}{
		{
			name: "successful fetch",
			body: `<section class="elementor-inner-section">
				<p>League</p><p>Home FC</p><p>01/03/2025 20:00</p><p>Away FC</p>
			</section>`,
			status:    http.StatusOK,
			wantCount: 1,
		},
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			wantError: true,
		},
		{
			name:      "not found",
			status:    http.StatusNotFound,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUA string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUA = r.Header.Get("User-Agent")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s := New(server.URL, WithHTTPClient(server.Client()), WithLocation(time.UTC))
			fixtures, err := s.FetchFixtures(context.Background())

			if (err != nil) != tt.wantError {
				t.Fatalf("FetchFixtures() error = %v, wantError %v", err, tt.wantError)
			}
			if len(fixtures) != tt.wantCount {
				t.Errorf("FetchFixtures() returned %d fixtures, want %d", len(fixtures), tt.wantCount)
			}
			if gotUA != UserAgent {
				t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
			}
		})
	}
}

func TestFetchFixtures_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(server.URL).FetchFixtures(ctx); err == nil {
		t.Error("FetchFixtures() should fail with a canceled context")
	}
}
