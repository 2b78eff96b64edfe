package cli

import (
	"io"

	"github.com/aretw0/passage/internal/presentation/markdown"
	"github.com/aretw0/passage/pkg/domain"
)

// PolicyLookup resolves visa facts for a directional pair.
type PolicyLookup interface {
	VisaPolicy(origin, destination string) (domain.VisaPolicy, bool)
}

type policyOutput struct {
	FromCountry string            `json:"from_country"`
	ToCountry   string            `json:"to_country"`
	Listed      bool              `json:"listed"`
	Policy      domain.VisaPolicy `json:"policy"`
}

// Policy writes the visa policy for origin → destination to w.
func Policy(svc PolicyLookup, origin, destination string, jsonMode bool, w io.Writer) error {
	p, listed := svc.VisaPolicy(origin, destination)
	from := domain.NormalizeCountry(origin).Display()
	to := domain.NormalizeCountry(destination).Display()

	if jsonMode {
		return writeJSON(w, policyOutput{FromCountry: from, ToCountry: to, Listed: listed, Policy: p})
	}
	return render(w, markdown.VisaPolicy(from, to, p, listed))
}
