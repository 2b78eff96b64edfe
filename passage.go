package passage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/observability"
	"github.com/aretw0/passage/pkg/policy"
	"github.com/aretw0/passage/pkg/ports"
	"github.com/aretw0/passage/pkg/requirements"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is applied to cached reports when no TTL option is given.
const DefaultCacheTTL = 10 * time.Minute

// Cache lookup results reported through observability hooks.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Service is the high-level entry point of the Passage library.
// It wraps the requirements engine with caching, logging and observability hooks,
// and is what every transport adapter calls.
type Service struct {
	resolver   ports.PolicyResolver
	rules      *policy.Rules
	engine     *requirements.Engine
	cache      ports.ReportCache
	cacheTTL   time.Duration
	hooks      observability.Hooks
	logger     *slog.Logger
	policyFile string
	group      singleflight.Group
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithPolicyFile loads the bilateral table and rules from a YAML or JSON file instead of the
// built-in catalog.
func WithPolicyFile(path string) Option {
	return func(s *Service) {
		s.policyFile = path
	}
}

// WithCatalog injects an already loaded policy catalog.
func WithCatalog(c policy.Catalog) Option {
	return func(s *Service) {
		s.resolver = c.Table
		s.rules = &c.Rules
	}
}

// WithResolver injects a custom policy resolver. Rules stay the built-in ones unless
// WithCatalog or WithPolicyFile is also given.
func WithResolver(r ports.PolicyResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithCache enables report caching.
func WithCache(c ports.ReportCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithCacheTTL sets the expiration of cached reports. Zero keeps them until evicted.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithHooks registers observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(s *Service) {
		s.hooks = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New initializes a Service. Without options it uses the built-in policy catalog and no cache.
func New(opts ...Option) (*Service, error) {
	s := &Service{cacheTTL: DefaultCacheTTL}
	for _, opt := range opts {
		opt(s)
	}

	if s.policyFile != "" {
		c, err := policy.LoadFile(s.policyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load policies: %w", err)
		}
		s.resolver = c.Table
		s.rules = &c.Rules
	}

	builtin := policy.Builtin()
	if s.resolver == nil {
		s.resolver = builtin.Table
	}
	if s.rules == nil {
		s.rules = &builtin.Rules
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.engine = requirements.NewEngine(s.resolver, *s.rules)
	return s, nil
}

// GetRequirements answers one trip query. The result is either a complete report or an
// error object; a cache failure never changes the answer.
func (s *Service) GetRequirements(ctx context.Context, from, to string, duration any, purpose string) domain.Result {
	start := time.Now()
	callID := uuid.NewString()
	logger := s.logger.With("call_id", callID)

	req, err := domain.NewTripRequest(from, to, duration, purpose)
	if err != nil {
		logger.Warn("Request rejected", "error", err, "from", from, "to", to)
		if s.hooks.OnError != nil {
			s.hooks.OnError(ctx, &observability.ErrorEvent{CallID: callID, Err: err})
		}
		return domain.NewErrorResult(err)
	}

	report, hit := s.derive(ctx, logger, callID, req)

	logger.Debug("Requirements derived",
		"from", req.Origin,
		"to", req.Destination,
		"purpose", req.Purpose,
		"visa_needed", report.Summary.VisaNeeded,
		"documents", report.TotalDocuments,
		"cache_hit", hit,
	)
	if s.hooks.OnDerive != nil {
		s.hooks.OnDerive(ctx, &observability.DeriveEvent{
			CallID:      callID,
			Origin:      req.Origin,
			Destination: req.Destination,
			Purpose:     req.Purpose,
			VisaNeeded:  report.Summary.VisaNeeded,
			Documents:   report.TotalDocuments,
			CacheHit:    hit,
			Duration:    time.Since(start),
		})
	}

	return domain.Result{Report: report}
}

func (s *Service) derive(ctx context.Context, logger *slog.Logger, callID string, req domain.TripRequest) (*domain.RequirementReport, bool) {
	if s.cache == nil {
		report := s.engine.Derive(req)
		return &report, false
	}

	key := req.Key()
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.cacheEvent(ctx, callID, CacheHit)
		return cached, true
	case errors.Is(err, domain.ErrCacheMiss):
		s.cacheEvent(ctx, callID, CacheMiss)
	default:
		s.cacheEvent(ctx, callID, CacheError)
		logger.Warn("Cache lookup failed, deriving directly", "error", err)
	}

	// Concurrent misses for the same trip derive and store once.
	v, _, _ := s.group.Do(key, func() (any, error) {
		report := s.engine.Derive(req)
		if err := s.cache.Set(ctx, key, &report, s.cacheTTL); err != nil {
			logger.Warn("Cache store failed", "error", err)
		}
		return &report, nil
	})
	return v.(*domain.RequirementReport).Clone(), false
}

func (s *Service) cacheEvent(ctx context.Context, callID, result string) {
	if s.hooks.OnCache != nil {
		s.hooks.OnCache(ctx, &observability.CacheEvent{CallID: callID, Result: result})
	}
}

// VisaPolicy resolves the visa facts for a pair and reports whether the pair is listed
// (false means the default policy was applied).
func (s *Service) VisaPolicy(origin, destination string) (domain.VisaPolicy, bool) {
	o, d := domain.NormalizeCountry(origin), domain.NormalizeCountry(destination)
	if p, ok := s.resolver.Lookup(o, d); ok {
		return p, true
	}
	return s.resolver.Resolve(o, d), false
}

// Policies returns the listed bilateral pairs.
func (s *Service) Policies() []policy.Entry {
	return s.resolver.Entries()
}

// Rules returns the document rule sets in use.
func (s *Service) Rules() policy.Rules {
	return *s.rules
}

// Engine returns the underlying requirements engine.
func (s *Service) Engine() *requirements.Engine {
	return s.engine
}

// Close releases the cache, if any.
func (s *Service) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
