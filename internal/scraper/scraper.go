package scraper

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

const (
	UserAgent = "stadium-fixtures/1.0 (github.com/pfrederiksen/stadium-fixtures)"

	// DefaultTimezone is the zone the schedule page writes dates in
	DefaultTimezone = "Asia/Jerusalem"
)

// dateLayouts are tried in order
var dateLayouts = []string{"02/01/2006 15:04", "02/01/06 15:04"}

var leadingHebrew = regexp.MustCompile(`^[\p{Hebrew}\s]+`)

// Scraper fetches and parses the stadium schedule page
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	location  *time.Location
}

// Option configures a Scraper
type Option func(*Scraper)

// WithHTTPClient sets the client used for requests
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLocation sets the zone page dates are interpreted in
func WithLocation(loc *time.Location) Option {
	return func(s *Scraper) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// New creates a Scraper for the schedule page at url.
// Dates are read in Asia/Jerusalem unless WithLocation says otherwise.
func New(url string, opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{},
		url:       url,
		userAgent: UserAgent,
		location:  time.UTC,
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		s.location = loc
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchFixtures fetches the schedule page and returns its fixtures in page order
func (s *Scraper) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching schedule page: unexpected status code: %d", resp.StatusCode)
	}

	return s.parseFixtures(resp.Body)
}

// parseFixtures extracts fixtures from the schedule page HTML.
// Rows with fewer than four columns or an unreadable date are skipped.
func (s *Scraper) parseFixtures(r io.Reader) ([]fixture.Fixture, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	fixtures := make([]fixture.Fixture, 0)
	seen := make(map[string]bool)

	doc.Find("section.elementor-inner-section").Each(func(i int, section *goquery.Selection) {
		columns := section.Find("p")
		if columns.Length() < 4 {
			return
		}

		competition := cleanText(columns.Eq(0).Text())
		home := cleanText(columns.Eq(1).Text())
		dateText := columns.Eq(2).Text()
		away := cleanText(columns.Eq(3).Text())

		kickoff, err := parseDate(dateText, s.location)
		if err != nil {
			logger.Warn("Skipping schedule row", logger.Fields{
				"row":  i,
				"date": strings.TrimSpace(dateText),
			})
			return
		}

		raw := strings.Join(strings.Fields(section.Text()), " ")
		id := generateID(raw)
		if seen[id] {
			return
		}
		seen[id] = true

		fixtures = append(fixtures, fixture.Fixture{
			ID:          id,
			Home:        fixture.Team{Name: home},
			Away:        fixture.Team{Name: away},
			Kickoff:     fixture.Scheduled(kickoff),
			Competition: competition,
		})
	})

	return fixtures, nil
}

// parseDate strips the weekday name and non-breaking spaces and parses the
// remaining "dd/mm/yyyy hh:mm" in loc
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = leadingHebrew.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.Join(strings.Fields(s), " ")

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parsing date %q: %w", s, lastErr)
}

// cleanText turns a visual-order cell into logical-order, NFC-normalised text
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return normalize(reverseHebrewWords(strings.TrimSpace(s)))
}

// reverseHebrewWords reverses the letters of each word that contains Hebrew,
// leaving word order, digits and Latin words alone
func reverseHebrewWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if !hasHebrew(word) {
			continue
		}
		runes := []rune(word)
		for j, k := 0, len(runes)-1; j < k; j, k = j+1, k-1 {
			runes[j], runes[k] = runes[k], runes[j]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func hasHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	out, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return out
}

// generateID creates a stable ID from the row's text
func generateID(raw string) string {
	h := sha1.New()
	h.Write([]byte(raw))
	return fmt.Sprintf("%x", h.Sum(nil))
}
