// Package webhookserver runs a local HTTP receiver for platform webhook
// deliveries. Verified events are written to an event store, logged and
// streamed to /events subscribers.
package webhookserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mattjoyce/vortex/internal/auth"
	"github.com/mattjoyce/vortex/internal/events"
	"github.com/mattjoyce/vortex/webhook"
)

// Config defines the receiver settings.
type Config struct {
	Listen      string
	Path        string
	Secret      string
	MaxBodySize int64
	Strict      bool
	// FeedSize is how many recent deliveries /events replays to new
	// subscribers.
	FeedSize int
	// FeedToken, when set, is required as a bearer token on /events.
	FeedToken string
}

// EventRecorder persists verified deliveries.
type EventRecorder interface {
	Record(ctx context.Context, ev webhook.Event, raw []byte) (bool, error)
}

// Server represents the webhook HTTP server.
type Server struct {
	config  Config
	store   EventRecorder
	logger  *slog.Logger
	handler *webhook.Handler
	feed    *events.Hub
	server  *http.Server
}

// New creates a new webhook server instance.
func New(config Config, store EventRecorder, logger *slog.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("webhook server: event store is required")
	}
	if config.Path == "" {
		config.Path = "/"
	}

	var opts []webhook.Option
	if config.Strict {
		opts = append(opts, webhook.WithStrictClassification())
	}
	verifier, err := webhook.NewVerifier(config.Secret, opts...)
	if err != nil {
		return nil, fmt.Errorf("webhook server: %w", err)
	}

	s := &Server{
		config: config,
		store:  store,
		logger: logger,
		feed:   events.NewHub(config.FeedSize),
	}
	s.handler = webhook.NewHandler(verifier, s.handleEvent)
	if config.MaxBodySize > 0 {
		s.handler.MaxBodySize = config.MaxBodySize
	}
	return s, nil
}

// Start starts the webhook HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.config.Listen, "path", s.config.Path, "strict", s.config.Strict)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Group(func(r chi.Router) {
		if s.config.FeedToken != "" {
			r.Use(auth.RequireBearer(s.config.FeedToken))
		}
		r.Get("/events", s.handleFeed)
	})
	r.Method(http.MethodPost, s.config.Path, s.handler)

	return r
}

// loggingMiddleware logs HTTP requests (excludes sensitive payloads).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if ww.Status() == http.StatusUnauthorized {
			level = slog.LevelWarn
		}
		s.logger.Log(r.Context(), level, "webhook request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func (s *Server) handleEvent(ctx context.Context, ev webhook.Event, raw []byte) error {
	inserted, err := s.store.Record(ctx, ev, raw)
	if err != nil {
		s.logger.Error("failed to record webhook event",
			"kind", ev.Kind(),
			"event_id", ev.EventID(),
			"error", err,
		)
		return err
	}
	if !inserted {
		s.logger.Info("duplicate webhook delivery ignored", "kind", ev.Kind(), "event_id", ev.EventID())
		return nil
	}

	d := s.feed.Publish(string(ev.Kind()), ev.Label(), ev.EventID(), raw)
	s.logger.Info("webhook event recorded",
		"kind", ev.Kind(),
		"label", ev.Label(),
		"event_id", ev.EventID(),
		"seq", d.Seq,
		"request_id", middleware.GetReqID(ctx),
	)
	return nil
}

// handleFeed streams recorded deliveries as server-sent events. Clients
// that reconnect with Last-Event-ID get the buffered deliveries they missed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The stream outlives the server's WriteTimeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ch, cancel := s.feed.Subscribe()
	defer cancel()

	last := parseLastEventID(r.Header.Get("Last-Event-ID"))
	for _, d := range s.feed.Since(last) {
		if err := writeSSE(w, d); err != nil {
			return
		}
		last = d.Seq
	}
	if err := rc.Flush(); err != nil {
		s.logger.Warn("event feed: streaming unsupported", "error", err)
		return
	}

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case d, ok := <-ch:
			if !ok {
				return
			}
			if d.Seq <= last {
				continue
			}
			if err := writeSSE(w, d); err != nil {
				return
			}
			last = d.Seq
			_ = rc.Flush()
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			_ = rc.Flush()
		}
	}
}

func parseLastEventID(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeSSE(w http.ResponseWriter, d events.Delivery) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", d.Seq, d.Kind, data)
	return err
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
