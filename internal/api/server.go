// Package api exposes the simulator as an HTTP service: one-shot runs
// returning a full report, and a websocket stream emitting terminal contact
// records as the run executes.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GeneralAntilles/Conto/internal/center"
	"github.com/GeneralAntilles/Conto/internal/config"
	"github.com/GeneralAntilles/Conto/internal/report"
	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/GeneralAntilles/Conto/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Server handles simulation requests
type Server struct {
	cfg     *config.Config
	logger  zerolog.Logger
	limiter *rate.Limiter
}

// NewServer creates a simulation API server. The config supplies defaults
// for runs; requests may override individual parameters.
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(s.cfg.AllowedOrigins))

	r.Get("/health", s.healthHandler)

	// Run-triggering routes share one limiter.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(s.limiter))
		r.Post("/simulations", s.runHandler)
		r.Get("/simulations/stream", s.streamHandler)
	})

	return r
}

// SimulationRequest overrides run parameters; unset fields fall back to the
// server defaults
type SimulationRequest struct {
	ContactsPerHour *float64  `json:"contactsPerHour,omitempty"`
	HandleTime      *float64  `json:"handleTime,omitempty"`
	HandleStdDev    *float64  `json:"handleStdDev,omitempty"`
	HoldProbability *float64  `json:"holdProbability,omitempty"`
	HoldTime        *float64  `json:"holdTime,omitempty"`
	AbandonTime     *float64  `json:"abandonTime,omitempty"`
	WrapupTime      *float64  `json:"wrapupTime,omitempty"`
	AgentCount      *int      `json:"agentCount,omitempty"`
	Proficiencies   []float64 `json:"proficiencies,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	SimTime         *float64  `json:"simTime,omitempty"`
	MaxContacts     *int      `json:"maxContacts,omitempty"`
	Seed            *int64    `json:"seed,omitempty"`
	IncludeRecords  bool      `json:"includeRecords,omitempty"`
}

// apply overlays the request onto a copy of the server defaults
func (req *SimulationRequest) apply(base config.Config) *config.Config {
	cfg := base
	if req.ContactsPerHour != nil {
		cfg.ContactsPerHour = *req.ContactsPerHour
	}
	if req.HandleTime != nil {
		cfg.AvgHandleTime = *req.HandleTime
	}
	if req.HandleStdDev != nil {
		cfg.HandleStdDev = *req.HandleStdDev
	}
	if req.HoldProbability != nil {
		cfg.HoldProbability = *req.HoldProbability
	}
	if req.HoldTime != nil {
		cfg.AvgHoldTime = *req.HoldTime
	}
	if req.AbandonTime != nil {
		cfg.AvgAbandonTime = *req.AbandonTime
	}
	if req.WrapupTime != nil {
		cfg.AvgWrapupTime = *req.WrapupTime
	}
	if req.AgentCount != nil {
		cfg.AgentCount = *req.AgentCount
	}
	if len(req.Proficiencies) > 0 {
		cfg.Proficiencies = req.Proficiencies
	}
	if len(req.Skills) > 0 {
		cfg.Skills = req.Skills
	}
	if req.SimTime != nil {
		cfg.SimTime = *req.SimTime
	}
	if req.MaxContacts != nil {
		cfg.MaxContacts = *req.MaxContacts
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	return &cfg
}

// SimulationResponse is the full report of a one-shot run
type SimulationResponse struct {
	*center.Result
	Records []types.ContactRecord `json:"records,omitempty"`
}

// runHandler executes one simulation synchronously and returns the report
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg := req.apply(*s.cfg)

	var records report.Collector
	var sinks []report.Sink
	if req.IncludeRecords {
		sinks = append(sinks, &records)
	}

	c, err := center.FromConfig(cfg, s.logger, sinks...)
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error().Err(err).Msg("failed to build simulation")
		http.Error(w, "failed to build simulation", http.StatusInternalServerError)
		return
	}

	result, err := c.Run()
	if err != nil {
		s.logger.Error().Err(err).Str("run_id", c.RunID()).Msg("simulation run failed")
		http.Error(w, "simulation run failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SimulationResponse{
		Result:  result,
		Records: records.Records,
	})
}

// healthHandler handles health check requests
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"conto"}`)
}
