package markdown

import (
	"fmt"
	"strings"

	"github.com/aretw0/passage/pkg/domain"
)

// Report renders a requirement report as a Markdown checklist.
// Required documents come first, then optional ones, each in emission order.
func Report(r *domain.RequirementReport) string {
	var sb strings.Builder

	info := r.TripInfo
	fmt.Fprintf(&sb, "# %s → %s\n\n", info.FromCountry, info.ToCountry)
	fmt.Fprintf(&sb, "**Duration:** %d days  \n**Purpose:** %s\n\n", info.DurationDays, info.Purpose)

	sb.WriteString("## Visa\n\n")
	sb.WriteString(visaSummary(r.VisaRequirements))
	sb.WriteString("\n")

	writeDocuments(&sb, "Required Documents", r.RequiredDocuments)
	writeDocuments(&sb, "Optional Documents", r.OptionalDocuments)

	fmt.Fprintf(&sb, "---\n\n%d documents in total: %d required, %d optional.\n",
		r.TotalDocuments, r.Summary.RequiredCount, r.Summary.OptionalCount)
	return sb.String()
}

// VisaPolicy renders the visa facts of one directional pair.
func VisaPolicy(from, to string, p domain.VisaPolicy, listed bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Visa policy: %s → %s\n\n", from, to)
	sb.WriteString(visaSummary(p))
	if !listed {
		sb.WriteString("\n> No bilateral agreement is on file for this pair. The conservative default applies; confirm with the embassy.\n")
	}
	return sb.String()
}

// Error renders a failed query.
func Error(e *domain.ErrorResult) string {
	return fmt.Sprintf("> **Error:** %s\n", e.Error)
}

const unknown = "Unknown"

func visaSummary(p domain.VisaPolicy) string {
	if !p.VisaRequired {
		var sb strings.Builder
		sb.WriteString("No visa required")
		if p.MaxStay != nil {
			fmt.Fprintf(&sb, " for stays up to %s", *p.MaxStay)
		}
		sb.WriteString(".\n")
		return sb.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** required.\n\n", p.TypeOr("Visa"))
	rows := []struct{ label, value string }{
		{"Maximum stay", p.MaxStayOr(unknown)},
		{"Processing time", p.ProcessingTimeOr(unknown)},
		{"Fee", p.FeeOr(unknown)},
	}
	sb.WriteString("| | |\n|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(&sb, "| %s | %s |\n", row.label, row.value)
	}
	return sb.String()
}

func writeDocuments(sb *strings.Builder, title string, docs []domain.DocumentRequirement) {
	fmt.Fprintf(sb, "## %s (%d)\n\n", title, len(docs))
	if len(docs) == 0 {
		sb.WriteString("_None._\n\n")
		return
	}
	for _, d := range docs {
		fmt.Fprintf(sb, "- [ ] **%s**: %s\n", d.DocumentType, d.Description)
		if d.ValidityPeriod != "" {
			fmt.Fprintf(sb, "  - Validity: %s\n", d.ValidityPeriod)
		}
		if d.ProcessingTime != "" {
			fmt.Fprintf(sb, "  - Processing time: %s\n", d.ProcessingTime)
		}
		if d.AdditionalNotes != "" {
			fmt.Fprintf(sb, "  - Note: %s\n", d.AdditionalNotes)
		}
	}
	sb.WriteString("\n")
}
