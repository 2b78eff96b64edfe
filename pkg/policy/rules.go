package policy

import "github.com/aretw0/passage/pkg/domain"

// Rules holds the destination sets used by the document rules.
// It is read-only after construction.
type Rules struct {
	insuranceRequired map[domain.CountryCode]struct{}
	highCost          map[domain.CountryCode]struct{}
}

// NewRules builds a rule set. Country names are normalized.
func NewRules(insuranceRequired, highCost []string) Rules {
	return Rules{
		insuranceRequired: toSet(insuranceRequired),
		highCost:          toSet(highCost),
	}
}

// RequiresInsurance reports whether travel insurance is mandatory for the destination.
// Membership is literal: a Schengen country missing from the list is treated as non-Schengen.
func (r Rules) RequiresInsurance(destination domain.CountryCode) bool {
	_, ok := r.insuranceRequired[domain.NormalizeCountry(string(destination))]
	return ok
}

// IsHighCost reports whether the destination uses the higher daily funds amount.
func (r Rules) IsHighCost(destination domain.CountryCode) bool {
	_, ok := r.highCost[domain.NormalizeCountry(string(destination))]
	return ok
}

// InsuranceRequired returns the insurance set, sorted.
func (r Rules) InsuranceRequired() []string { return sortedKeys(r.insuranceRequired) }

// HighCost returns the high-cost set, sorted.
func (r Rules) HighCost() []string { return sortedKeys(r.highCost) }

func toSet(values []string) map[domain.CountryCode]struct{} {
	set := make(map[domain.CountryCode]struct{}, len(values))
	for _, v := range values {
		c := domain.NormalizeCountry(v)
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return set
}
