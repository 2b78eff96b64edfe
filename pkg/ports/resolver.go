package ports

import (
	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/policy"
)

// PolicyResolver provides visa facts for a directional country pair.
// Implementations must be read-only and safe for concurrent use.
type PolicyResolver interface {
	// Resolve never fails; unlisted pairs resolve to a default policy.
	Resolve(origin, destination domain.CountryCode) domain.VisaPolicy

	// Lookup reports whether the pair is explicitly listed.
	Lookup(origin, destination domain.CountryCode) (domain.VisaPolicy, bool)

	// Entries returns a snapshot of the listed pairs.
	Entries() []policy.Entry
}

var _ PolicyResolver = (*policy.Table)(nil)
