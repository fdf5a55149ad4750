package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/UnknownOlympus/pinpoint/internal/notify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// View is the map lifecycle the server feeds postal codes into.
type View interface {
	SetPostalCode(postalCode string)
	Lookup(ctx context.Context, postalCode string) models.Outcome
}

// Notifications is the user-facing side of the notification sink.
type Notifications interface {
	State() notify.State
	Dismiss(ctx context.Context)
}

// Pinger reports backend health. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server exposes the map component over HTTP.
type Server struct {
	log     *slog.Logger
	view    View
	surface mapsurface.Map
	notes   Notifications
	gather  prometheus.Gatherer
	pinger  Pinger
}

// New creates a server. pinger may be nil when no database backs the surface.
func New(
	log *slog.Logger,
	view View,
	surface mapsurface.Map,
	notes Notifications,
	gather prometheus.Gatherer,
	pinger Pinger,
) *Server {
	return &Server{
		log:     log,
		view:    view,
		surface: surface,
		notes:   notes,
		gather:  gather,
		pinger:  pinger,
	}
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/postal-code", s.handleSetPostalCode)
	mux.HandleFunc("POST /api/v1/lookup", s.handleLookup)
	mux.HandleFunc("GET /api/v1/map", s.handleMap)
	mux.HandleFunc("GET /api/v1/notification", s.handleNotification)
	mux.HandleFunc("POST /api/v1/notification/dismiss", s.handleDismiss)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))

	return mux
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Starting HTTP server", "port", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	s.log.InfoContext(ctx, "HTTP server stopped")

	return nil
}

func (s *Server) handleSetPostalCode(w http.ResponseWriter, r *http.Request) {
	postalCode, ok := postalCodeParam(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "missing cep query parameter")
		return
	}

	s.view.SetPostalCode(postalCode)
	s.log.DebugContext(r.Context(), "Postal code change accepted", "postal_code", postalCode)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	postalCode, ok := postalCodeParam(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "missing cep query parameter")
		return
	}

	outcome := s.view.Lookup(r.Context(), postalCode)
	s.writeJSON(w, r, outcomeStatus(outcome.Kind), newOutcomeResponse(outcome))
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	state, err := s.surface.Snapshot(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to read map state", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "failed to read map state")
		return
	}

	s.writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleNotification(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.notes.State())
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.notes.Dismiss(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.log.DebugContext(r.Context(), "Performing health checks...")
	status, body := http.StatusOK, "OK"
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
	}
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}

	s.log.DebugContext(r.Context(), "Health checks completed", "status", status)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, errorResponse{Error: message})
}

// postalCodeParam returns the cep query value. An empty value is legal and skips the lookup.
func postalCodeParam(r *http.Request) (string, bool) {
	query := r.URL.Query()
	if !query.Has("cep") {
		return "", false
	}

	return query.Get("cep"), true
}

type errorResponse struct {
	Error string `json:"error"`
}

type outcomeResponse struct {
	Outcome    models.OutcomeKind `json:"outcome"`
	Stage      models.Stage       `json:"stage,omitempty"`
	Address    *models.Address    `json:"address,omitempty"`
	Coordinate *models.Coordinate `json:"coordinate,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func newOutcomeResponse(outcome models.Outcome) outcomeResponse {
	resp := outcomeResponse{
		Outcome:    outcome.Kind,
		Stage:      outcome.Stage,
		Address:    outcome.Address,
		Coordinate: outcome.Coordinate,
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}

	return resp
}

func outcomeStatus(kind models.OutcomeKind) int {
	switch kind {
	case models.OutcomeSuccess, models.OutcomeSkipped:
		return http.StatusOK
	case models.OutcomeNotFound:
		return http.StatusNotFound
	case models.OutcomeTransportError:
		return http.StatusBadGateway
	case models.OutcomeStale:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
