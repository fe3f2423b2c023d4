package catalog

import "strings"

// Format renders a record as the bullet list shown to the model and the
// customer:
//
//	Flight AA123:
//	• Route: New York (JFK) → Los Angeles (LAX)
//	• Departure: 08:00 AM
//	• Arrival: 11:30 AM
//	• Status: On Time
//	• Terminal: Terminal 4
//	• Gate: A12
//
// Terminal and gate lines are omitted when absent.
func Format(rec FlightRecord) string {
	var b strings.Builder
	b.WriteString("Flight " + rec.ID + ":\n")
	b.WriteString("• Route: " + rec.Origin + " → " + rec.Destination + "\n")
	b.WriteString("• Departure: " + rec.Departure + "\n")
	b.WriteString("• Arrival: " + rec.Arrival + "\n")
	b.WriteString("• Status: " + rec.Status)
	if rec.Terminal != "" {
		b.WriteString("\n• Terminal: " + rec.Terminal)
	}
	if rec.Gate != "" {
		b.WriteString("\n• Gate: " + rec.Gate)
	}
	return b.String()
}

// FormatList renders records separated by blank lines.
func FormatList(records []FlightRecord) string {
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = Format(rec)
	}
	return strings.Join(parts, "\n\n")
}

// StatusClass is a coarse classification of free-text flight status.
type StatusClass int

const (
	StatusOther StatusClass = iota
	StatusOnTime
	StatusDelayed
	StatusCancelled
	StatusBoarding
)

// Classify maps a record's status text to a StatusClass. Status is free text,
// so this is a best-effort keyword match.
func Classify(rec FlightRecord) StatusClass {
	s := strings.ToLower(rec.Status)
	switch {
	case strings.Contains(s, "cancel"):
		return StatusCancelled
	case strings.Contains(s, "delay"):
		return StatusDelayed
	case strings.Contains(s, "boarding"):
		return StatusBoarding
	case strings.Contains(s, "on time"):
		return StatusOnTime
	default:
		return StatusOther
	}
}

// String returns a lower-case label for the class.
func (c StatusClass) String() string {
	switch c {
	case StatusOnTime:
		return "on time"
	case StatusDelayed:
		return "delayed"
	case StatusCancelled:
		return "cancelled"
	case StatusBoarding:
		return "boarding"
	default:
		return "other"
	}
}
