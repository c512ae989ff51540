package board

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

// State is what the holder currently shows. Exactly one of Board and Err is set.
type State struct {
	Board     *Board    `json:"board,omitempty"`
	Err       string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OK reports whether the state holds a board
func (s *State) OK() bool {
	return s != nil && s.Board != nil
}

// Holder keeps the latest State. Readers never block writers.
// When cycles overlap, the one started last wins regardless of finishing order.
type Holder struct {
	current atomic.Pointer[State]

	started atomic.Uint64

	mu     sync.Mutex
	stored uint64
}

// Current returns the latest state, or nil before the first cycle
func (h *Holder) Current() *State {
	return h.current.Load()
}

// Refresh runs a full cycle and replaces the current state with its outcome.
// A cycle overtaken by a later one is discarded and the later state returned.
func (h *Holder) Refresh(ctx context.Context, loader *Loader) *State {
	cycle := h.started.Add(1)
	b, err := loader.Load(ctx)
	loader.Metrics.RecordRefresh(err)

	var state *State
	if err != nil {
		logger.Error("Refresh failed", nil, err)
		state = &State{Err: err.Error(), UpdatedAt: time.Now()}
	} else {
		logger.Info("Refresh finished", logger.Fields{
			"total":    b.Total,
			"upcoming": len(b.Upcoming),
		})
		state = &State{Board: b, UpdatedAt: b.FetchedAt}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if cycle < h.stored {
		logger.Debug("Discarding superseded refresh", logger.Fields{"cycle": cycle, "current": h.stored})
		return h.current.Load()
	}
	h.stored = cycle
	if state.OK() {
		loader.Metrics.SetUpcoming(len(state.Board.Upcoming))
	}
	h.current.Store(state)
	return state
}
