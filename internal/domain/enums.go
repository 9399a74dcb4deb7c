package domain

import "strings"

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Quality ranks tasks of equal priority; A is placed first.
type Quality string

const (
	QualityA Quality = "A"
	QualityB Quality = "B"
	QualityC Quality = "C"
	QualityD Quality = "D"
)

// ValidQualities is the canonical set of accepted quality letters.
var ValidQualities = map[Quality]bool{
	QualityA: true, QualityB: true, QualityC: true, QualityD: true,
}

// ParseQuality normalizes a letter such as "b" to QualityB. The empty string
// is accepted and means "use the scheduling default".
func ParseQuality(s string) (Quality, bool) {
	q := Quality(strings.ToUpper(strings.TrimSpace(s)))
	if q == "" {
		return "", true
	}
	return q, ValidQualities[q]
}
