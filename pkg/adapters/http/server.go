package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/passage"
	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/policy"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service defines what the HTTP adapter needs from the Passage service.
type Service interface {
	GetRequirements(ctx context.Context, from, to string, duration any, purpose string) domain.Result
	VisaPolicy(origin, destination string) (domain.VisaPolicy, bool)
	Policies() []policy.Entry
	Rules() policy.Rules
}

var _ Service = (*passage.Service)(nil)

// VisaPolicyResponse is the body of GET /policies/{origin}/{destination}.
type VisaPolicyResponse struct {
	FromCountry string            `json:"from_country"`
	ToCountry   string            `json:"to_country"`
	Listed      bool              `json:"listed"`
	Policy      domain.VisaPolicy `json:"policy"`
}

// PoliciesResponse is the body of GET /policies.
type PoliciesResponse struct {
	Policies          []policy.Entry `json:"policies"`
	InsuranceRequired []string       `json:"insurance_required"`
	HighCost          []string       `json:"high_cost"`
}

// InfoResponse is the body of GET /info.
type InfoResponse struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
}

// Server serves the Passage REST API.
type Server struct {
	Service Service
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the HTTP handler.
type Option func(*Server)

// WithMetricsHandler serves h on /metrics instead of the default Prometheus registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the service.
func NewHandler(service Service, opts ...Option) http.Handler {
	server := &Server{
		Service: service,
		metrics: promhttp.Handler(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.logRequests)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Method(http.MethodGet, "/metrics", server.metrics)

	r.Post("/requirements", server.GetRequirements)
	r.Get("/requirements", server.GetRequirementsQuery)
	r.Get("/policies", server.ListPolicies)
	r.Get("/policies/{origin}/{destination}", server.GetVisaPolicy)

	return enableCORS(r)
}

// Serve runs handler on port until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", port)
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
		slog.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

// GetRequirements handles POST /requirements.
func (s *Server) GetRequirements(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("GetRequirements: Invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, errors.New("invalid request body: expected a JSON object"))
		return
	}
	if err := validateBody("TripRequest", body); err != nil {
		writeError(w, http.StatusBadRequest, schemaError(err))
		return
	}

	from, _ := body[domain.FieldFromCountry].(string)
	to, _ := body[domain.FieldToCountry].(string)
	purpose, _ := body[domain.FieldTripPurpose].(string)
	s.respondRequirements(w, r, from, to, body[domain.FieldTripDuration], purpose)
}

// GetRequirementsQuery handles GET /requirements.
func (s *Server) GetRequirementsQuery(w http.ResponseWriter, r *http.Request) {
	var from, to, duration, purpose string
	query := r.URL.Query()

	params := []struct {
		name     string
		required bool
		dest     *string
	}{
		{domain.FieldFromCountry, true, &from},
		{domain.FieldToCountry, true, &to},
		{domain.FieldTripDuration, true, &duration},
		{domain.FieldTripPurpose, false, &purpose},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, p.required, p.name, query, p.dest); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	s.respondRequirements(w, r, from, to, duration, purpose)
}

func (s *Server) respondRequirements(w http.ResponseWriter, r *http.Request, from, to string, duration any, purpose string) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%s and %s are required", domain.FieldFromCountry, domain.FieldToCountry))
		return
	}

	res := s.Service.GetRequirements(r.Context(), from, to, duration, purpose)
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetVisaPolicy handles GET /policies/{origin}/{destination}.
func (s *Server) GetVisaPolicy(w http.ResponseWriter, r *http.Request) {
	var origin, destination string
	for _, p := range []struct {
		name string
		dest *string
	}{{"origin", &origin}, {"destination", &destination}} {
		err := runtime.BindStyledParameterWithOptions("simple", p.name, chi.URLParam(r, p.name), p.dest,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter %s: %w", p.name, err))
			return
		}
	}

	p, listed := s.Service.VisaPolicy(origin, destination)
	writeJSON(w, http.StatusOK, VisaPolicyResponse{
		FromCountry: domain.NormalizeCountry(origin).Display(),
		ToCountry:   domain.NormalizeCountry(destination).Display(),
		Listed:      listed,
		Policy:      p,
	})
}

// ListPolicies handles GET /policies.
func (s *Server) ListPolicies(w http.ResponseWriter, r *http.Request) {
	rules := s.Service.Rules()
	writeJSON(w, http.StatusOK, PoliciesResponse{
		Policies:          s.Service.Policies(),
		InsuranceRequired: rules.InsuranceRequired(),
		HighCost:          rules.HighCost(),
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	info := InfoResponse{Version: strings.TrimSpace(passage.Version)}
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		info.APIVersion = doc.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "error", err)
	}
	writeJSON(w, http.StatusOK, info)
}

// schemaError turns a schema violation into a one-line message naming the offending field.
func schemaError(err error) error {
	var se *openapi3.SchemaError
	if !errors.As(err, &se) {
		return fmt.Errorf("invalid request: %w", err)
	}
	if ptr := se.JSONPointer(); len(ptr) > 0 {
		return fmt.Errorf("invalid %s: %s", strings.Join(ptr, "."), se.Reason)
	}
	return fmt.Errorf("invalid request: %s", se.Reason)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, domain.ErrorResult{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
