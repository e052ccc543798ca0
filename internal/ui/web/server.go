package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-drill/internal/api/middleware"
	"github.com/phrazzld/scry-drill/internal/api/shared"
	"github.com/phrazzld/scry-drill/internal/config"
	"github.com/rs/cors"
)

//go:embed static/index.html
var indexPage []byte

const shutdownTimeout = 5 * time.Second

// AnswerRequest is the body of POST /api/drill/answer. An empty value asks
// to skip the word.
type AnswerRequest struct {
	Value *string `json:"value" validate:"required,max=200"`
}

// ConfirmRequest is the body of POST /api/drill/confirm.
type ConfirmRequest struct {
	Skip *bool `json:"skip" validate:"required"`
}

// Server exposes a Presenter over HTTP.
type Server struct {
	presenter *Presenter
	cfg       config.UIConfig
	logger    *slog.Logger
	router    chi.Router
}

// NewServer creates the HTTP front end of presenter.
func NewServer(presenter *Presenter, cfg config.UIConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		presenter: presenter,
		cfg:       cfg,
		logger:    logger.With("component", "web_server"),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(s.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Trace-ID"},
	}).Handler)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api/drill", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Post("/answer", s.handleAnswer)
		r.Post("/confirm", s.handleConfirm)
		r.Post("/ack", s.handleSimple(ActionAck))
		r.Post("/retry", s.handleSimple(ActionRetry))
	})

	s.router = r
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts the listener down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web presenter", "addr", s.cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web presenter failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web presenter")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web presenter shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexPage); err != nil {
		s.logger.Debug("failed to write index page", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, s.presenter.Snapshot())
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.dispatch(w, r, action{kind: ActionAnswer, value: *req.Value})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.dispatch(w, r, action{kind: ActionConfirm, skip: *req.Skip})
}

func (s *Server) handleSimple(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, r, action{kind: kind})
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := shared.DecodeJSON(r, v)
	if err != nil {
		err = fmt.Errorf("%w: %w", errMalformedRequest, err)
	} else {
		err = shared.ValidateRequest(v)
	}
	if err != nil {
		s.respondWithError(w, r, err)
		return false
	}
	return true
}

func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, mapErrorToStatusCode(err), safeErrorMessage(err), err)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, a action) {
	if err := s.presenter.submit(a); err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.logger.DebugContext(r.Context(), "action accepted",
		"action", a.kind,
		"trace_id", shared.GetTraceID(r.Context()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, s.presenter.Snapshot())
}
