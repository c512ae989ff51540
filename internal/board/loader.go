package board

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/stadium-fixtures/internal/backend"
	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
	"github.com/pfrederiksen/stadium-fixtures/internal/metrics"
)

// StadiumSource provides stadium information
type StadiumSource interface {
	FetchStadium(ctx context.Context) (*backend.Stadium, error)
}

// FixtureSource provides the full fixture list
type FixtureSource interface {
	FetchFixtures(ctx context.Context) ([]fixture.Fixture, error)
}

// Board is the outcome of one successful cycle. It is never modified after Load
// returns it.
type Board struct {
	Stadium   *backend.Stadium  `json:"stadium"`
	Upcoming  []fixture.Fixture `json:"upcoming"`
	Total     int               `json:"total"`
	FetchedAt time.Time         `json:"fetchedAt"`
}

// Find returns the upcoming fixture with the given ID
func (b *Board) Find(id string) (fixture.Fixture, bool) {
	for _, f := range b.Upcoming {
		if f.ID == id {
			return f, true
		}
	}
	return fixture.Fixture{}, false
}

// Loader runs fetch cycles
type Loader struct {
	Stadium  StadiumSource
	Fixtures FixtureSource

	// HomeTeams keeps only fixtures hosted by one of these teams. Empty keeps all.
	HomeTeams []string

	// Now returns the reference instant. Defaults to time.Now.
	Now func() time.Time

	Metrics *metrics.Manager
}

// Load runs one cycle. Both fetches are issued together and must both succeed;
// the first failure aborts the cycle.
func (l *Loader) Load(ctx context.Context) (*Board, error) {
	var (
		stadium  *backend.Stadium
		fixtures []fixture.Fixture
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		s, err := l.Stadium.FetchStadium(gctx)
		l.Metrics.ObserveFetch("stadium", time.Since(start))
		if err != nil {
			return err
		}
		stadium = s
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		f, err := l.Fixtures.FetchFixtures(gctx)
		l.Metrics.ObserveFetch("fixtures", time.Since(start))
		if err != nil {
			return err
		}
		fixtures = f
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading board: %w", err)
	}

	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}

	home := fixture.HomeTeamIn(fixtures, l.HomeTeams)
	return &Board{
		Stadium:   stadium,
		Upcoming:  fixture.Upcoming(home, now),
		Total:     len(fixtures),
		FetchedAt: now,
	}, nil
}
