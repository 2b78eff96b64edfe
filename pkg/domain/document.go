package domain

// DocumentRequirement is one line item of a report.
type DocumentRequirement struct {
	DocumentType    string `json:"document_type"`
	Required        bool   `json:"required"`
	Description     string `json:"description"`
	ValidityPeriod  string `json:"validity_period,omitempty"`
	ProcessingTime  string `json:"processing_time,omitempty"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// Partition splits documents into required and optional, keeping relative order in both.
// Neither returned slice is nil.
func Partition(docs []DocumentRequirement) (required, optional []DocumentRequirement) {
	required = make([]DocumentRequirement, 0, len(docs))
	optional = make([]DocumentRequirement, 0)
	for _, d := range docs {
		if d.Required {
			required = append(required, d)
		} else {
			optional = append(optional, d)
		}
	}
	return required, optional
}
