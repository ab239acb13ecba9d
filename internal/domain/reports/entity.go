package reports

import (
	"strings"
	"time"
)

// ReportID identifier type
type ReportID string

// Severity enum
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultSeverity is used whenever the assessment carries an unknown level.
const DefaultSeverity = SeverityMedium

// Severities lists the closed set in display order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Valid reports whether s is one of the four known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// NormalizeSeverity maps raw model output onto the enum. The second return is
// false when the value was unknown and DefaultSeverity was substituted.
func NormalizeSeverity(raw string) (Severity, bool) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s, true
	}
	return DefaultSeverity, false
}

// Language enum
type Language string

const (
	LangAR Language = "ar"
	LangFR Language = "fr"
)

// LocalizedString value object; both slots are always populated.
type LocalizedString struct {
	AR string `json:"ar" validate:"required"`
	FR string `json:"fr" validate:"required"`
}

// Get returns the slot for lang, falling back to French.
func (l LocalizedString) Get(lang Language) string {
	if lang == LangAR {
		return l.AR
	}
	return l.FR
}

// Complete reports whether both slots carry non-blank text.
func (l LocalizedString) Complete() bool {
	return strings.TrimSpace(l.AR) != "" && strings.TrimSpace(l.FR) != ""
}

// AnalysisResult is the structured hazard assessment returned by the AI.
type AnalysisResult struct {
	HazardType        LocalizedString `json:"hazardType"`
	Severity          Severity        `json:"severity"`
	ProposedSolution  LocalizedString `json:"proposedSolution"`
	ResponsiblePerson LocalizedString `json:"responsiblePerson"`
}

// Report is one row of the incident log.
type Report struct {
	ID                ReportID        `json:"id"`
	Date              string          `json:"date"`
	Location          string          `json:"location"`
	Image             string          `json:"image"`
	ImageType         string          `json:"imageType"`
	HazardType        LocalizedString `json:"hazardType"`
	Severity          Severity        `json:"severity"`
	ProposedSolution  LocalizedString `json:"proposedSolution"`
	ResponsiblePerson LocalizedString `json:"responsiblePerson"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ImageDataURI renders the embedded image for inline <img> tags.
func (r *Report) ImageDataURI() string {
	return "data:" + r.ImageType + ";base64," + r.Image
}
