package domain

// VisaPolicy holds the visa facts for one directional (origin, destination) pair.
// Optional facts are nil when unknown and serialize as null.
type VisaPolicy struct {
	VisaRequired   bool    `json:"visa_required" yaml:"visa_required"`
	VisaType       *string `json:"visa_type" yaml:"visa_type,omitempty"`
	MaxStay        *string `json:"max_stay" yaml:"max_stay,omitempty"`
	ProcessingTime *string `json:"processing_time" yaml:"processing_time,omitempty"`
	Fee            *string `json:"fee" yaml:"fee,omitempty"`
}

// Clone returns a deep copy, so callers can never alias a shared table entry.
func (p VisaPolicy) Clone() VisaPolicy {
	return VisaPolicy{
		VisaRequired:   p.VisaRequired,
		VisaType:       clonePtr(p.VisaType),
		MaxStay:        clonePtr(p.MaxStay),
		ProcessingTime: clonePtr(p.ProcessingTime),
		Fee:            clonePtr(p.Fee),
	}
}

// TypeOr returns the visa type, or fallback when unknown.
func (p VisaPolicy) TypeOr(fallback string) string { return valueOr(p.VisaType, fallback) }

// MaxStayOr returns the maximum stay, or fallback when unknown.
func (p VisaPolicy) MaxStayOr(fallback string) string { return valueOr(p.MaxStay, fallback) }

// ProcessingTimeOr returns the processing time, or fallback when unknown.
func (p VisaPolicy) ProcessingTimeOr(fallback string) string {
	return valueOr(p.ProcessingTime, fallback)
}

// FeeOr returns the fee, or fallback when unknown.
func (p VisaPolicy) FeeOr(fallback string) string { return valueOr(p.Fee, fallback) }

// Ptr returns a pointer to s. It keeps policy literals short.
func Ptr(s string) *string {
	return &s
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
