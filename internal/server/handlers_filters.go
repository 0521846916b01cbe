package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/hirehub/internal/store"
	"github.com/jonathan/hirehub/internal/types"
)

// handleGetState returns the shared listing state
func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleUpdateFilters merges a partial filter update into the shared state
func (s *Server) handleUpdateFilters(w http.ResponseWriter, r *http.Request) {
	var u types.FilterUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if u.Category != nil && strings.TrimSpace(string(*u.Category)) != "" {
		c, err := parseCategory(string(*u.Category))
		if err != nil {
			s.handleError(w, err)
			return
		}
		u.Category = &c
	}
	if u.Experience != nil && strings.TrimSpace(string(*u.Experience)) != "" {
		e, err := parseExperience(string(*u.Experience))
		if err != nil {
			s.handleError(w, err)
			return
		}
		u.Experience = &e
	}

	s.store.UpdateFilters(u)
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleResetFilters restores the default filters
func (s *Server) handleResetFilters(w http.ResponseWriter, _ *http.Request) {
	s.store.ResetFilters()
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleEvents streams every published store snapshot as a "state" event. The
// current snapshot is sent first. A slow client skips intermediate snapshots
// but always receives the latest one.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates := make(chan store.State, 1)
	unsubscribe := s.store.Subscribe(func(st store.State) {
		// Publications are serialized, so this listener is the only sender.
		select {
		case <-updates:
		default:
		}
		updates <- st
	})
	defer unsubscribe()

	last := s.store.Snapshot()
	if err := sse.WriteState(last); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case st := <-updates:
			if st.Version <= last.Version {
				continue
			}
			if err := sse.WriteState(st); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
			last = st
		}
	}
}
