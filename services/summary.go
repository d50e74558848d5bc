package services

import (
	"fmt"
	"strings"

	"MetOptix/models"
)

var statusGlyphs = map[string]string{
	string(models.StatusStable):   "🟢",
	string(models.StatusModerate): "🟠",
	string(models.StatusCritical): "🔴",
}

const neutralGlyph = "⚪"

func getString(data map[string]interface{}, key, def string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return def
	}
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

/*
* Missing fields fall back to fixed placeholders
* Pick the status glyph, unknown statuses get the neutral one
* Every non-blank health issue line becomes one bold bullet, in order
* The output depends on data only
 */
func GenerateSummary(data map[string]interface{}) string {
	name := getString(data, "Name", "Unknown")
	status := getString(data, "MedicalStatus", "Unknown")
	issues := getString(data, "HealthIssues", "Not specified")
	prescription := getString(data, "Prescription", "None")
	days := getString(data, "PrescriptionDays", "N/A")
	notes := getString(data, "DoctorNotes", "No additional notes")

	glyph, ok := statusGlyphs[status]
	if !ok {
		glyph = neutralGlyph
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Summary for **%s**\n\n", glyph, name)
	fmt.Fprintf(&b, "**%s** is currently in a **%s** condition.\n\n", name, status)
	fmt.Fprintf(&b, "🩺 Health Issues:\n%s\n\n", IssueBullets(issues))
	fmt.Fprintf(&b, "💊 Prescription: **%s** for **%s** days\n", prescription, days)
	fmt.Fprintf(&b, "📝 Doctor Notes: **%s**", notes)
	return b.String()
}

// IssueBullets renders each non-blank line as "- **line**", trimmed, one per line.
func IssueBullets(issues string) string {
	issues = strings.ReplaceAll(issues, "\r\n", "\n")
	issues = strings.ReplaceAll(issues, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(issues, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, "- **"+line+"**")
	}
	return strings.Join(lines, "\n")
}

// SummaryFields maps a visit for GenerateSummary. Stored text is passed through as is, blanks included.
// Validated writes always carry at least one prescription day, so zero days means the field was never stored.
func SummaryFields(v models.PatientVisit) map[string]interface{} {
	fields := v.Fields()
	if v.PrescriptionDays == 0 {
		delete(fields, "PrescriptionDays")
	}
	return fields
}
