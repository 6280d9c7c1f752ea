package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	mw "github.com/edvin/regionfailover/internal/api/middleware"
	"github.com/edvin/regionfailover/internal/model"
)

// Server is the regional endpoint for one region of a topology.
type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	topology model.RegionTopology
	serving  atomic.Bool
}

// HealthStatus is the body of the health route.
type HealthStatus struct {
	Status string       `json:"status"`
	Region model.Region `json:"region"`
	Role   model.Role   `json:"role"`
	Table  string       `json:"table"`
}

// NewServer creates the regional endpoint server for rt's region. It starts
// out serving.
func NewServer(logger zerolog.Logger, rt model.RegionTopology) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger.With().Str("component", "regional-api").Logger(),
		topology: rt,
	}
	s.serving.Store(true)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	// The platform strips the stage prefix in front of the API, the health
	// check does not.
	s.router.Get(s.topology.Endpoint.HealthPath, s.handleHealth)
	s.router.Get(s.topology.Endpoint.StageHealthPath(), s.handleHealth)

	s.router.Get("/topology", s.handleTopology)
}

// Mount attaches business routes from the compute layer. It must be called
// before the server starts serving.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

// SetServing toggles the health route. A draining region answers 503 so its
// health check goes UNHEALTHY and resolvers stop returning its record.
func (s *Server) SetServing(serving bool) {
	if s.serving.Swap(serving) != serving {
		s.logger.Info().Bool("serving", serving).Msg("health state changed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := HealthStatus{
		Status: "ok",
		Region: s.topology.Region(),
		Role:   s.topology.Role,
		Table:  s.topology.Table.Name,
	}
	code := http.StatusOK
	if !s.serving.Load() {
		status.Status = "draining"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (s *Server) handleTopology(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.topology)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
