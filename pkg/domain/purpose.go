package domain

import "strings"

// Purpose is the declared reason for a trip.
type Purpose string

const (
	PurposeTourism     Purpose = "tourism"
	PurposeBusiness    Purpose = "business"
	PurposeTransit     Purpose = "transit"
	PurposeStudy       Purpose = "study"
	PurposeWork        Purpose = "work"
	PurposeFamilyVisit Purpose = "family_visit"
	PurposeOther       Purpose = "other"
)

// Purposes lists every known purpose in a stable order.
var Purposes = []Purpose{
	PurposeTourism,
	PurposeBusiness,
	PurposeTransit,
	PurposeStudy,
	PurposeWork,
	PurposeFamilyVisit,
	PurposeOther,
}

var purposeReplacer = strings.NewReplacer(" ", "_", "-", "_")

// ParsePurpose maps free-form input onto a known Purpose.
// Unrecognized values become PurposeOther; this is never an error.
func ParsePurpose(s string) Purpose {
	p := Purpose(purposeReplacer.Replace(strings.ToLower(strings.TrimSpace(s))))
	for _, known := range Purposes {
		if p == known {
			return p
		}
	}
	return PurposeOther
}

// String returns the canonical form.
func (p Purpose) String() string {
	return string(p)
}
