// Package httpapi exposes the public REST surface of the booking service:
// the assistant chat endpoints, the catalog, appointment creation, and the
// operational endpoints.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shearbook/shearbook/internal/apperrors"
	"github.com/shearbook/shearbook/internal/assistant"
	"github.com/shearbook/shearbook/internal/booking"
	"github.com/shearbook/shearbook/internal/health"
	"github.com/shearbook/shearbook/internal/middleware"
	"github.com/shearbook/shearbook/internal/ratelimit"
	"github.com/shearbook/shearbook/internal/repository"
	"github.com/shearbook/shearbook/pkg/logger"
)

// Options carries the collaborators for NewServer.
type Options struct {
	Assistant    *assistant.Assistant
	Booking      *booking.Service
	Locations    repository.LocationRepository
	Barbers      repository.BarberRepository
	Services     repository.ServiceRepository
	Appointments repository.AppointmentRepository
	Checker      *health.Checker
	Errors       *apperrors.Handler
	Log          *slog.Logger

	// ChatLimiter throttles the assistant endpoints per client. Nil disables
	// limiting.
	ChatLimiter    ratelimit.Limiter
	ChatRateLimit  int
	ChatRateWindow time.Duration
}

// Server bundles the handlers behind the HTTP routes.
type Server struct {
	opts Options
	log  *slog.Logger
}

// NewServer constructs the API server.
func NewServer(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	return &Server{opts: opts, log: log}
}

// Router builds the route table with the middleware chain applied.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	chatLimit := middleware.RateLimit(s.opts.ChatLimiter, s.opts.ChatRateLimit, s.opts.ChatRateWindow, s.log)

	mux.Handle("POST /api/assistant/start", chatLimit(http.HandlerFunc(s.handleAssistantStart)))
	mux.Handle("POST /api/assistant/message", chatLimit(http.HandlerFunc(s.handleAssistantMessage)))
	mux.HandleFunc("GET /api/assistant/history", s.handleAssistantHistory)

	mux.HandleFunc("GET /api/locations", s.handleListLocations)
	mux.HandleFunc("GET /api/barbers", s.handleListBarbers)
	mux.HandleFunc("GET /api/services", s.handleListServices)

	mux.HandleFunc("POST /api/appointments", s.handleCreateAppointment)
	mux.HandleFunc("GET /api/admin/appointments", s.handleListAppointments)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.Logging(s.log)(handler)
	handler = logger.Middleware(handler)

	return handler
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.opts.Checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	results := s.opts.Checker.Check(r.Context())

	status := http.StatusOK
	overall := "ok"
	for _, result := range results {
		if result != "ok" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
			break
		}
	}

	writeJSON(w, status, map[string]any{
		"status": overall,
		"checks": results,
	})
}
