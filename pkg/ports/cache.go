package ports

import (
	"context"
	"time"

	"github.com/aretw0/passage/pkg/domain"
)

// ReportCache stores derived reports. Reports are a pure function of the request and the
// policy catalog, so a cache only has to be invalidated when the catalog changes.
type ReportCache interface {
	// Get returns the cached report for key.
	// Returns domain.ErrCacheMiss if there is none.
	Get(ctx context.Context, key string) (*domain.RequirementReport, error)

	// Set stores report under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, report *domain.RequirementReport, ttl time.Duration) error

	// Close releases any underlying connection.
	Close() error
}
