// ABOUTME: HTTP server for the travel oracle comparison site behind a chi router.
// ABOUTME: Serves the quest form, the SSE comparison stream, and the booking endpoint.

package web

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nyghtowl/mystical-journeys/config"
	"github.com/nyghtowl/mystical-journeys/llm"
)

// Server hosts the Mystical Journeys site.
type Server struct {
	registry  *llm.Registry
	catalog   *config.Catalog
	templates *TemplateEngine
	router    chi.Router
	addr      string

	compareTimeout  time.Duration
	generateTimeout time.Duration
}

// ServerConfig holds everything a Server needs.
type ServerConfig struct {
	Addr            string
	Registry        *llm.Registry
	Catalog         *config.Catalog
	CompareTimeout  time.Duration
	GenerateTimeout time.Duration
}

// NewServer creates a Server with the given configuration and sets up
// routing.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	if cfg.CompareTimeout <= 0 {
		cfg.CompareTimeout = 60 * time.Second
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 3 * time.Minute
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	s := &Server{
		registry:        cfg.Registry,
		catalog:         cfg.Catalog,
		templates:       tmpl,
		addr:            cfg.Addr,
		compareTimeout:  cfg.CompareTimeout,
		generateTimeout: cfg.GenerateTimeout,
	}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server. The write timeout is generous
// because the comparison stream stays open until the slowest oracle
// answers or the stream times out.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(webRequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/providers", s.handleProviders)
	r.Post("/generate-comparison", s.handleComparison)
	r.Post("/generate-booking-response", s.handleBooking)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS))))

	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	err := s.templates.RenderHome(w, HomeData{
		Catalog:   s.catalog,
		Providers: s.providerInfo(),
	})
	if err != nil {
		log.Printf("error rendering home: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProviders reports each registered oracle and its availability.
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers := make(map[string]map[string]any)
	available := 0
	for _, p := range s.registry.All() {
		providers[p.Key()] = map[string]any{
			"name":      p.Name(),
			"available": p.Available(),
		}
		if p.Available() {
			available++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"providers":       providers,
		"available_count": available,
	})
}

// ProviderInfo is one oracle's status as shown on the quest form.
type ProviderInfo struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

func (s *Server) providerInfo() []ProviderInfo {
	var out []ProviderInfo
	for _, p := range s.registry.All() {
		out = append(out, ProviderInfo{Key: p.Key(), Name: p.Name(), Available: p.Available()})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
