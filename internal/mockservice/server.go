package mockservice

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/redline/api"
)

const maxBodyBytes = 1 << 20

// Server is a chi router plus the http.Server that runs it.
type Server struct {
	log   zerolog.Logger
	mux   *chi.Mux
	delay time.Duration
	newID func() string
}

type Option func(*Server)

// WithDelay holds every feedback reply for d, or until the request is
// canceled.
func WithDelay(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

// WithIDFunc replaces the uuid generator used for response ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func New(log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		log:   log.With().Str("component", "mockservice").Logger(),
		mux:   chi.NewRouter(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.Use(chimw.RequestID, chimw.Recoverer, s.requestLogger, chimw.Heartbeat("/health"))
	s.mux.Method(http.MethodPost, api.FeedbackPath, http.HandlerFunc(s.handleFeedback))
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("mock feedback service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}
