package api

import (
	"net/http"
	"time"
)

type statusResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	History bool   `json:"history"`
	Webhook bool   `json:"webhook"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Uptime:  time.Since(s.Started).Truncate(time.Second).String(),
		Version: s.Version,
		History: s.History != nil,
		Webhook: s.Webhook.Enabled(),
	})
}
