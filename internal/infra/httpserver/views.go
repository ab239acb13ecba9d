package httpserver

import (
	"embed"
	"html/template"
	"io"

	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// page is the data every template receives.
type page struct {
	Lang       domain.Language
	Dir        string
	Error      string
	Loading    bool
	Form       formValues
	Reports    []reportView
	Report     *reportView
	Severities []severityOption
}

type formValues struct {
	Description string
	Location    string
}

func newPage(lang domain.Language) *page {
	return &page{Lang: lang, Dir: i18n.Dir(lang)}
}

// T translates key into the page language.
func (p *page) T(key string) string {
	return i18n.T(p.Lang, key)
}

// reportView routes bilingual fields through the active language.
type reportView struct {
	*domain.Report
	lang domain.Language
}

func (v reportView) Hazard() string      { return v.HazardType.Get(v.lang) }
func (v reportView) Solution() string    { return v.ProposedSolution.Get(v.lang) }
func (v reportView) Responsible() string { return v.ResponsiblePerson.Get(v.lang) }

func (v reportView) SeverityText() string {
	return i18n.SeverityLabel(v.lang, v.Severity)
}

// SeverityClass picks the color: low sky, medium yellow, high orange, critical red.
func (v reportView) SeverityClass() string {
	if v.Severity.Valid() {
		return "sev-" + string(v.Severity)
	}
	return "sev-unknown"
}

type severityOption struct {
	Value    domain.Severity
	Label    string
	Selected bool
}

func severityOptions(lang domain.Language, current domain.Severity) []severityOption {
	out := make([]severityOption, 0, len(domain.Severities))
	for _, s := range domain.Severities {
		out = append(out, severityOption{Value: s, Label: i18n.SeverityLabel(lang, s), Selected: s == current})
	}
	return out
}

func views(lang domain.Language, list []*domain.Report) []reportView {
	out := make([]reportView, 0, len(list))
	for _, r := range list {
		out = append(out, reportView{Report: r, lang: lang})
	}
	return out
}

func render(w io.Writer, name string, p *page) error {
	return pages.ExecuteTemplate(w, name, p)
}
