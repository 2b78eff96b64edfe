package domain

import "encoding/json"

// TripInfo is the display echo of a TripRequest.
type TripInfo struct {
	FromCountry  string `json:"from_country"`
	ToCountry    string `json:"to_country"`
	DurationDays int    `json:"duration_days"`
	Purpose      string `json:"purpose"`
}

// Summary condenses a report into counts.
type Summary struct {
	RequiredCount int  `json:"required_count"`
	OptionalCount int  `json:"optional_count"`
	VisaNeeded    bool `json:"visa_needed"`
}

// RequirementReport is the complete answer for one trip.
type RequirementReport struct {
	TripInfo          TripInfo              `json:"trip_info"`
	VisaRequirements  VisaPolicy            `json:"visa_requirements"`
	RequiredDocuments []DocumentRequirement `json:"required_documents"`
	OptionalDocuments []DocumentRequirement `json:"optional_documents"`
	TotalDocuments    int                   `json:"total_documents"`
	Summary           Summary               `json:"summary"`
}

// Documents returns required then optional documents.
func (r *RequirementReport) Documents() []DocumentRequirement {
	out := make([]DocumentRequirement, 0, len(r.RequiredDocuments)+len(r.OptionalDocuments))
	out = append(out, r.RequiredDocuments...)
	return append(out, r.OptionalDocuments...)
}

// Find returns the first document of the given type in either partition.
func (r *RequirementReport) Find(docType string) (DocumentRequirement, bool) {
	for _, d := range r.Documents() {
		if d.DocumentType == docType {
			return d, true
		}
	}
	return DocumentRequirement{}, false
}

// ErrorResult is the single-field failure object returned at the service boundary.
type ErrorResult struct {
	Error string `json:"error"`
}

// Result is what callers of the boundary receive: a report or an error object.
type Result struct {
	Report *RequirementReport
	Err    *ErrorResult
}

// OK reports whether the result carries a report.
func (r Result) OK() bool {
	return r.Err == nil && r.Report != nil
}

// NewErrorResult wraps err as a boundary error object.
func NewErrorResult(err error) Result {
	return Result{Err: &ErrorResult{Error: err.Error()}}
}

// Value returns the object to serialize: *RequirementReport or *ErrorResult.
func (r Result) Value() any {
	if r.Err != nil {
		return r.Err
	}
	return r.Report
}

// MarshalJSON emits either the report or the error object, never both.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// UnmarshalJSON accepts either shape.
func (r *Result) UnmarshalJSON(data []byte) error {
	var probe struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != nil {
		*r = Result{Err: &ErrorResult{Error: *probe.Error}}
		return nil
	}
	var report RequirementReport
	if err := json.Unmarshal(data, &report); err != nil {
		return err
	}
	*r = Result{Report: &report}
	return nil
}

// Clone returns a deep copy of the report.
func (r *RequirementReport) Clone() *RequirementReport {
	if r == nil {
		return nil
	}
	c := *r
	c.VisaRequirements = r.VisaRequirements.Clone()
	c.RequiredDocuments = append(make([]DocumentRequirement, 0, len(r.RequiredDocuments)), r.RequiredDocuments...)
	c.OptionalDocuments = append(make([]DocumentRequirement, 0, len(r.OptionalDocuments)), r.OptionalDocuments...)
	return &c
}
