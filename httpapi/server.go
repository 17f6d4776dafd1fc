// Package httpapi exposes the Palate engine over a small JSON HTTP API.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/savorworks/palate"
)

// Server wires the engine into an HTTP handler.
type Server struct {
	engine   *palate.Engine
	logger   zerolog.Logger
	validate *validator.Validate
	router   chi.Router
}

// NewServer creates the API server and mounts all routes.
func NewServer(engine *palate.Engine, logger zerolog.Logger) *Server {
	s := &Server{
		engine:   engine,
		logger:   logger.With().Str("component", "httpapi").Logger(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendations", s.handleRecommendations)
		r.Post("/interactions", s.handleInteraction)
		r.Get("/trending", s.handleTrending)
		r.Get("/health", s.handleHealth)
	})
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

// Handler returns the mounted HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// GET /api/v1/recommendations?user_id=...&limit=10&time_of_day=evening&...
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := palate.RecommendParams{
		UserID: q.Get("user_id"),
		Limit:  10,
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		params.Limit = limit
	}

	rctx := palate.Context{
		TimeOfDay: q.Get("time_of_day"),
		Weather:   q.Get("weather"),
		Location:  q.Get("location"),
		Mood:      q.Get("mood"),
	}
	if !rctx.IsZero() {
		params.Context = &rctx
	}

	result, err := s.engine.Recommend(r.Context(), params)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

type interactionRequest struct {
	UserID         string   `json:"user_id" validate:"required"`
	OrderedItems   []string `json:"ordered_items,omitempty"`
	Preferences    []string `json:"preferences,omitempty"`
	OrderValue     float64  `json:"order_value,omitempty" validate:"gte=0"`
	DietaryChanges []string `json:"dietary_changes,omitempty"`
}

// POST /api/v1/interactions
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	err := s.engine.ApplyInteraction(r.Context(), req.UserID, palate.Interaction{
		OrderedItems:   req.OrderedItems,
		Preferences:    req.Preferences,
		OrderValue:     req.OrderValue,
		DietaryChanges: req.DietaryChanges,
	})
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/v1/trending?time_range=24h&limit=10
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 10
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	timeRange := q.Get("time_range")
	if timeRange == "" {
		timeRange = "24h"
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"time_range": timeRange,
		"items":      s.engine.Trending(timeRange, limit),
	})
}

// GET /api/v1/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.Stats()
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"stats":  stats,
	})
}

func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, palate.ErrEmptyUserID):
		s.respondError(w, http.StatusBadRequest, "empty_user_id", err.Error())
	case errors.Is(err, palate.ErrInvalidLimit):
		s.respondError(w, http.StatusBadRequest, "invalid_limit", err.Error())
	case errors.Is(err, palate.ErrMalformedContext):
		s.respondError(w, http.StatusBadRequest, "malformed_context", err.Error())
	case errors.Is(err, palate.ErrEngineClosed):
		s.respondError(w, http.StatusServiceUnavailable, "engine_closed", err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	s.respondJSON(w, status, body)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}
