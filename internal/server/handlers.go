package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pfrederiksen/stadium-fixtures/internal/board"
	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
	"github.com/pfrederiksen/stadium-fixtures/internal/export"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := s.holder.Current()

	status := http.StatusOK
	if !state.OK() {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, newPage(state, s.location)); err != nil {
		s.log.Error("Rendering cards page", logger.Fields{"request_id": RequestID(r.Context())}, err)
	}
}

// handleRefreshPage is the cards page retry button. Both refresh routes run the
// cycle detached from the request context.
func (s *Server) handleRefreshPage(w http.ResponseWriter, r *http.Request) {
	s.holder.Refresh(context.WithoutCancel(r.Context()), s.loader)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleStadium(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.Stadium)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b.Upcoming)
}

func (s *Server) handleMatchCalendar(w http.ResponseWriter, r *http.Request) {
	evt, ok := s.event(w, r)
	if !ok {
		return
	}
	s.apply(w, r, export.ForEvent(evt, false))
}

func (s *Server) handleMatchExport(w http.ResponseWriter, r *http.Request) {
	evt, ok := s.event(w, r)
	if !ok {
		return
	}
	s.apply(w, r, s.dispatcher.Event(evt, r.UserAgent()))
}

func (s *Server) handleCombinedCalendar(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w)
	if !ok {
		return
	}

	doc := calendar.BuildCombined(b.Upcoming)
	if doc == nil {
		writeError(w, http.StatusNotFound, "no upcoming matches")
		return
	}
	s.apply(w, r, export.ForDocument(doc))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	state := s.holder.Refresh(context.WithoutCancel(r.Context()), s.loader)

	status := http.StatusOK
	if !state.OK() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, state)
}

// board writes a 503 and returns false when there is no board to serve
func (s *Server) board(w http.ResponseWriter) (*board.Board, bool) {
	state := s.holder.Current()
	switch {
	case state == nil:
		writeError(w, http.StatusServiceUnavailable, "matches have not been loaded yet")
		return nil, false
	case !state.OK():
		writeError(w, http.StatusServiceUnavailable, state.Err)
		return nil, false
	}
	return state.Board, true
}

// event resolves the {id} route parameter to a calendar event
func (s *Server) event(w http.ResponseWriter, r *http.Request) (*calendar.Event, bool) {
	b, ok := s.board(w)
	if !ok {
		return nil, false
	}

	id := chi.URLParam(r, "id")
	f, found := b.Find(id)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("match %q not found", id))
		return nil, false
	}

	evt := calendar.BuildEvent(f)
	if evt == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("match %q has no kickoff time", id))
		return nil, false
	}
	return evt, true
}

// apply carries out an export action
func (s *Server) apply(w http.ResponseWriter, r *http.Request, action export.Action) {
	s.metrics.RecordExport(action.Kind.String())

	switch action.Kind {
	case export.OpenLink:
		http.Redirect(w, r, action.URL, http.StatusFound)
	default:
		w.Header().Set("Content-Type", action.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", action.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(action.Body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
