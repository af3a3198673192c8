package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brk3/habitcal/internal/calendar"
	"github.com/brk3/habitcal/internal/config"
	"github.com/brk3/habitcal/internal/habits"
	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/textgen"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg      *config.Config
	tracker  *habits.Tracker
	calendar *calendar.Service
	inspirer *textgen.Inspirer
	cookies  *securecookie.SecureCookie
	limiter  *visitorLimiter
}

func New(cfg *config.Config, tracker *habits.Tracker, cal *calendar.Service, inspirer *textgen.Inspirer) (*Server, error) {
	cookies, err := newIdentityCookie(cfg.Server.CookieHashKey, cfg.Server.CookieBlockKey)
	if err != nil {
		return nil, err
	}
	if inspirer == nil {
		if inspirer, err = textgen.New(nil, cfg.TextGen.Language, 0); err != nil {
			return nil, fmt.Errorf("failed to create text generator: %w", err)
		}
	}
	logger.Info("Creating server",
		"listen_addr", cfg.ListenAddr,
		"streak_policy", cfg.StreakPolicy(),
		"textgen_rate_per_minute", cfg.TextGen.RatePerMinute)
	return &Server{
		cfg:      cfg,
		tracker:  tracker,
		calendar: cal,
		inspirer: inspirer,
		cookies:  cookies,
		limiter:  newVisitorLimiter(cfg.TextGen.RatePerMinute, cfg.TextGen.Burst),
	}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Get("/healthz", s.getHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/habits", func(r chi.Router) {
		r.Get("/", s.listHabits)
		r.Post("/", s.addHabit)
		r.Get("/{habit_id}", s.getHabit)
		r.Delete("/{habit_id}", s.deleteHabit)
		r.Post("/{habit_id}/toggle", s.toggleHabit)
		r.Get("/{habit_id}/summary", s.getHabitSummary)
	})

	r.Route("/leave", func(r chi.Router) {
		r.Use(s.identityMiddleware)
		r.Get("/", s.listLeave)
		r.Post("/", s.addLeave)
		r.Get("/recent", s.recentLeave)
		r.Get("/types", s.listLeaveTypes)
		r.Get("/identity", s.getIdentity)
		r.Put("/identity", s.putIdentity)
		r.Delete("/identity", s.clearIdentity)
		r.Delete("/{leave_id}", s.deleteLeave)
	})

	r.Route("/inspire", func(r chi.Router) {
		r.Use(s.limiter.middleware)
		r.Get("/quote", s.getQuote)
		r.Get("/ideas", s.getIdeas)
		r.Get("/reflection", s.getReflection)
	})

	return s.cors(r)
}

func (s *Server) cors(h http.Handler) http.Handler {
	opts := []gorillaHandlers.CORSOption{
		gorillaHandlers.AllowedOrigins(s.cfg.Server.CORSOrigins),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", employeeHeader}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
	}
	for _, o := range s.cfg.Server.CORSOrigins {
		if o == "*" {
			return gorillaHandlers.CORS(opts...)(h)
		}
	}
	// The identity cookie only crosses origins that are listed explicitly.
	return gorillaHandlers.CORS(append(opts, gorillaHandlers.AllowCredentials())...)(h)
}
