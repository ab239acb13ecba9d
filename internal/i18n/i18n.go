package i18n

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bryanwahyu/hse-assistant/internal/domain/reports"
)

// Languages lists the supported UI languages.
var Languages = []reports.Language{reports.LangAR, reports.LangFR}

// ParseLanguage accepts "ar"/"fr" (and region variants such as "fr-FR").
func ParseLanguage(s string) (reports.Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch reports.Language(s) {
	case reports.LangAR:
		return reports.LangAR, true
	case reports.LangFR:
		return reports.LangFR, true
	}
	return "", false
}

// T looks key up in lang, then in the other language, then returns the key itself.
func T(lang reports.Language, key string) string {
	if v, ok := translations[lang][key]; ok {
		return v
	}
	for _, l := range Languages {
		if v, ok := translations[l][key]; ok {
			return v
		}
	}
	return key
}

// Table returns a copy of every message for lang.
func Table(lang reports.Language) map[string]string {
	src, ok := translations[lang]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Dir is the text direction attribute for lang.
func Dir(lang reports.Language) string {
	if lang == reports.LangAR {
		return "rtl"
	}
	return "ltr"
}

func SeverityLabel(lang reports.Language, s reports.Severity) string {
	return T(lang, "severity_"+string(s))
}

// ErrorKey maps a domain error to the message key shown inline.
func ErrorKey(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, reports.ErrImageTooLarge):
		return "formErrorImageSize"
	case errors.Is(err, reports.ErrUnsupportedImage):
		return "formErrorImageType"
	case errors.Is(err, reports.ErrMissingFields):
		return "formErrorAllFields"
	case errors.Is(err, reports.ErrInvalidSeverity):
		return "errorInvalidSeverity"
	case errors.Is(err, reports.ErrAnalysisInProgress):
		return "errorBusy"
	case errors.Is(err, reports.ErrNotFound):
		return "errorNotFound"
	default:
		return "errorAnalysis"
	}
}

var months = map[reports.Language][12]string{
	reports.LangAR: {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
	reports.LangFR: {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

// FormatDate renders the long date form used in the log ("19 octobre 2026",
// "١٩ أكتوبر ٢٠٢٦").
func FormatDate(lang reports.Language, t time.Time) string {
	if lang != reports.LangAR {
		lang = reports.LangFR
	}
	s := fmt.Sprintf("%d %s %d", t.Day(), months[lang][t.Month()-1], t.Year())
	if lang == reports.LangAR {
		s = arabicDigits(s)
	}
	return s
}

func arabicDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			r = '٠' + (r - '0')
		}
		b.WriteRune(r)
	}
	return b.String()
}
