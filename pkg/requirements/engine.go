// Package requirements derives the travel documents needed for a trip.
//
// Derivation is a single linear pass with a fixed emission order (passport first,
// purpose-specific documents last). Consumers rely on that order for display and
// fixtures, so new rules must be appended, not interleaved.
package requirements

import (
	"fmt"

	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/policy"
)

// Financial proof daily amounts.
const (
	FundsStandard = "$50-100 per day"
	FundsHighCost = "$100-150 per day"
)

// Resolver provides visa facts for a directional country pair.
type Resolver interface {
	Resolve(origin, destination domain.CountryCode) domain.VisaPolicy
}

// Engine derives requirement reports. It holds only read-only collaborators and is safe
// for concurrent use.
type Engine struct {
	resolver Resolver
	rules    policy.Rules
}

// NewEngine creates an engine over the given resolver and rules.
func NewEngine(resolver Resolver, rules policy.Rules) *Engine {
	return &Engine{resolver: resolver, rules: rules}
}

// NewDefault creates an engine over the built-in policy catalog.
func NewDefault() *Engine {
	c := policy.Builtin()
	return NewEngine(c.Table, c.Rules)
}

// GetRequirements is the boundary contract: raw caller fields in, report or error object out.
// It never returns a partial report.
func (e *Engine) GetRequirements(from, to string, duration any, purpose string) domain.Result {
	req, err := domain.NewTripRequest(from, to, duration, purpose)
	if err != nil {
		return domain.NewErrorResult(err)
	}
	report := e.Derive(req)
	return domain.Result{Report: &report}
}

// Derive builds the full report for a validated request.
func (e *Engine) Derive(req domain.TripRequest) domain.RequirementReport {
	visa := e.resolver.Resolve(req.Origin, req.Destination)
	docs := e.documents(req, visa)
	required, optional := domain.Partition(docs)

	return domain.RequirementReport{
		TripInfo:          req.Info(),
		VisaRequirements:  visa,
		RequiredDocuments: required,
		OptionalDocuments: optional,
		TotalDocuments:    len(docs),
		Summary: domain.Summary{
			RequiredCount: len(required),
			OptionalCount: len(optional),
			VisaNeeded:    visa.VisaRequired,
		},
	}
}

// Documents returns the ordered document sequence before partitioning.
func (e *Engine) Documents(req domain.TripRequest) []domain.DocumentRequirement {
	return e.documents(req, e.resolver.Resolve(req.Origin, req.Destination))
}

func (e *Engine) documents(req domain.TripRequest, visa domain.VisaPolicy) []domain.DocumentRequirement {
	docs := make([]domain.DocumentRequirement, 0, 8)

	docs = append(docs, passport())
	if visa.VisaRequired {
		docs = append(docs, visaDocument(visa))
	}
	docs = append(docs,
		insurance(e.rules.RequiresInsurance(req.Destination)),
		returnTicket(),
		financialProof(e.rules.IsHighCost(req.Destination)),
		accommodationProof(),
	)
	return append(docs, purposeDocuments(req.Purpose)...)
}

func passport() domain.DocumentRequirement {
	return domain.DocumentRequirement{
		DocumentType:    domain.DocPassport,
		Required:        true,
		Description:     "Valid passport with at least 6 months validity remaining",
		ValidityPeriod:  "At least 6 months from travel date",
		AdditionalNotes: "Must have at least 2 blank pages for stamps",
	}
}

func visaDocument(visa domain.VisaPolicy) domain.DocumentRequirement {
	visaType := visa.TypeOr(policy.DefaultVisaType)
	processing := visa.ProcessingTimeOr(policy.DefaultProcessingTime)
	fee := visa.FeeOr("Varies by embassy")
	return domain.DocumentRequirement{
		DocumentType:    domain.DocVisa,
		Required:        true,
		Description:     fmt.Sprintf("Required %s (processing time: %s, fee: %s)", visaType, processing, fee),
		ProcessingTime:  processing,
		AdditionalNotes: "Fee: " + fee,
	}
}

func insurance(required bool) domain.DocumentRequirement {
	if required {
		return domain.DocumentRequirement{
			DocumentType:    domain.DocTravelInsurance,
			Required:        true,
			Description:     "Travel insurance with minimum €30,000 coverage",
			AdditionalNotes: "Required for Schengen area countries",
		}
	}
	return domain.DocumentRequirement{
		DocumentType:    domain.DocTravelInsurance,
		Required:        false,
		Description:     "Travel insurance (highly recommended)",
		AdditionalNotes: "Covers medical emergencies, trip cancellation, etc.",
	}
}

func returnTicket() domain.DocumentRequirement {
	return domain.DocumentRequirement{
		DocumentType:    domain.DocReturnTicket,
		Required:        true,
		Description:     "Proof of return or onward travel",
		AdditionalNotes: "Flight confirmation or travel itinerary",
	}
}

func financialProof(highCost bool) domain.DocumentRequirement {
	amount := FundsStandard
	if highCost {
		amount = FundsHighCost
	}
	return domain.DocumentRequirement{
		DocumentType:    domain.DocFinancialProof,
		Required:        true,
		Description:     fmt.Sprintf("Proof of sufficient funds (%s)", amount),
		AdditionalNotes: "Bank statements, credit cards, or traveler's checks",
	}
}

func accommodationProof() domain.DocumentRequirement {
	return domain.DocumentRequirement{
		DocumentType:    domain.DocAccommodationProof,
		Required:        true,
		Description:     "Hotel booking or invitation letter",
		AdditionalNotes: "Confirmation of where you'll be staying",
	}
}

func purposeDocuments(p domain.Purpose) []domain.DocumentRequirement {
	switch p {
	case domain.PurposeBusiness:
		return []domain.DocumentRequirement{{
			DocumentType:    domain.DocBusinessInvitation,
			Required:        true,
			Description:     "Letter from host company",
			AdditionalNotes: "Must include company details and purpose of visit",
		}}
	case domain.PurposeStudy:
		return []domain.DocumentRequirement{
			{
				DocumentType:    domain.DocStudentPermit,
				Required:        true,
				Description:     "Student visa or study permit",
				AdditionalNotes: "Issued by educational institution",
			},
			{
				DocumentType:    domain.DocAcceptanceLetter,
				Required:        true,
				Description:     "Letter of acceptance from educational institution",
				AdditionalNotes: "Must be from recognized institution",
			},
		}
	default:
		return nil
	}
}
