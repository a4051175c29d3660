package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openclaw/aiqr/notify"
	"github.com/openclaw/aiqr/store"
)

// record stores e in the history and forwards it to the webhook. Failures
// are logged and never affect the response.
func (s *Server) record(e *store.Entry) {
	e.ID = uuid.NewString()
	e.Timestamp = time.Now().Unix()

	if s.History != nil {
		if err := s.History.Save(e); err != nil {
			s.Log.Error("failed to save history entry", "error", err, "id", e.ID)
		}
	}

	if s.Webhook.Enabled() {
		ev := &notify.Event{
			ID:        e.ID,
			Mode:      string(e.Mode),
			Text:      e.Text,
			Prompt:    e.Prompt,
			Style:     e.Style,
			Provider:  e.Provider,
			Message:   e.Message,
			HasImage:  e.HasImage,
			Timestamp: e.Timestamp,
		}
		s.deliveries.Add(1)
		go func() {
			defer s.deliveries.Done()
			if err := s.Webhook.Send(context.Background(), ev); err != nil {
				s.Log.Error("failed to send webhook", "error", err, "id", ev.ID)
			}
		}()
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	entries, err := s.History.Recent(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistorySearch(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}
	if strings.ContainsRune(q, 0) {
		writeError(w, http.StatusBadRequest, "q must not contain NUL bytes")
		return
	}

	limit := queryInt(r, "limit", 20)

	entries, err := s.History.Search(q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}

	stats, err := s.History.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stats == nil {
		stats = []store.StyleCount{}
	}

	writeJSON(w, http.StatusOK, stats)
}
