package server

import (
	"embed"
	"html/template"
	"net/url"
	"time"

	"github.com/pfrederiksen/stadium-fixtures/internal/backend"
	"github.com/pfrederiksen/stadium-fixtures/internal/board"
	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const kickoffLayout = "Mon 2 Jan 2006, 15:04"

// page is the data behind the cards page
type page struct {
	Ready     bool
	Err       string
	Stadium   *backend.Stadium
	Cards     []card
	UpdatedAt string

	// CalendarDataURL holds every upcoming match as one calendar document
	CalendarDataURL template.URL
}

type card struct {
	Title       string
	Kickoff     string
	Competition string
	Round       string
	Score       string
	ExportURL   string
}

func newPage(state *board.State, loc *time.Location) page {
	if state == nil {
		return page{}
	}
	if !state.OK() {
		return page{Err: state.Err}
	}

	b := state.Board
	p := page{
		Ready:     true,
		Stadium:   b.Stadium,
		Cards:     make([]card, 0, len(b.Upcoming)),
		UpdatedAt: state.UpdatedAt.In(loc).Format(kickoffLayout),
	}
	for _, f := range b.Upcoming {
		c := card{
			Title:       f.Matchup(),
			Competition: f.Competition,
			Round:       f.Round,
			ExportURL:   "/api/matches/" + url.PathEscape(f.ID) + "/export",
		}
		if t, ok := f.Kickoff.Time(); ok {
			c.Kickoff = t.In(loc).Format(kickoffLayout)
		}
		if f.Started {
			c.Score = f.Score()
		}
		p.Cards = append(p.Cards, c)
	}
	if doc := calendar.BuildCombined(b.Upcoming); doc != nil && doc.Len() > 0 {
		p.CalendarDataURL = template.URL(doc.DataURL())
	}
	return p
}
