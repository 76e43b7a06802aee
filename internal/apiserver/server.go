package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/selector-project/selector-manager/internal/config"
	handlers "github.com/selector-project/selector-manager/internal/handlers/v1alpha1"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves the public selector API.
type Server struct {
	cfg      *config.Config
	listener net.Listener
	handler  *handlers.Handler
}

// New creates a new API server on the given listener.
func New(cfg *config.Config, listener net.Listener, handler *handlers.Handler) *Server {
	return &Server{
		cfg:      cfg,
		listener: listener,
		handler:  handler,
	}
}

// Routes builds the API router. Exposed separately so handler tests can
// exercise the full routing table without a listener.
func (s *Server) Routes() (http.Handler, error) {
	openAPIJSON, err := OpenAPIDocument()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))

	router.Route("/api/v1alpha1", func(r chi.Router) {
		r.Get("/health", health)
		r.Get("/openapi.json", serveOpenAPI(openAPIJSON))

		r.Post("/selectors", s.handler.CreateSelector)
		r.Get("/selectors", s.handler.ListSelectors)
		r.Post("/selectors:evaluate", s.handler.EvaluateAdHoc)
		r.Get("/selectors/{id}", s.handler.GetSelector)
		r.Patch("/selectors/{id}", s.handler.UpdateSelector)
		r.Delete("/selectors/{id}", s.handler.DeleteSelector)
		r.Post("/selectors/{id}:evaluate", s.handler.EvaluateSelector)
		r.Post("/labels:match", s.handler.MatchLabels)
	})

	return router, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	router, err := s.Routes()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler: router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on %s", s.listener.Addr())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func serveOpenAPI(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}
