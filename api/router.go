package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openclaw/aiqr/background"
	"github.com/openclaw/aiqr/notify"
	"github.com/openclaw/aiqr/store"
)

const maxRequestBody = 1 << 20 // 1MB

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Composer *background.Composer
	History  *store.HistoryStore   // nil disables history
	Webhook  *notify.WebhookSender // nil or URL-less disables the webhook
	Limiter  *RateLimiter          // nil disables rate limiting
	Log      *slog.Logger
	Version  string
	Started  time.Time

	deliveries sync.WaitGroup
}

// Wait blocks until all in-flight webhook deliveries have finished.
func (s *Server) Wait() {
	s.deliveries.Wait()
}

// NewRouter returns a fully configured chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	if s.Composer == nil {
		s.Composer = background.NewComposer(background.Settings{})
	}
	if s.Log == nil {
		s.Log = slog.Default()
	}
	if s.Started.IsZero() {
		s.Started = time.Now()
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(requestLogger(s.Log))

	// Web UI & status
	r.Get("/", s.handleIndex)
	r.Get("/status", s.handleStatus)

	r.Route("/api", func(r chi.Router) {
		if s.Limiter != nil {
			r.Use(s.Limiter.Middleware)
		}

		// Generation
		r.Post("/qr", s.handleQR)
		r.Post("/qr/ai", s.handleQRAI)
		r.Get("/qr.png", s.handleQRPNG)
		r.Get("/styles", s.handleStyles)

		// History
		r.Get("/history", s.handleHistory)
		r.Get("/history/search", s.handleHistorySearch)
		r.Get("/history/stats", s.handleHistoryStats)
	})

	return r
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

// --- middleware --------------------------------------------------------------

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
			next.ServeHTTP(w, r)
		})
	}
}
