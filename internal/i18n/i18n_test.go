package i18n

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bryanwahyu/hse-assistant/internal/domain/reports"
)

func TestTablesHaveSameKeys(t *testing.T) {
	ar, fr := translations[reports.LangAR], translations[reports.LangFR]
	if len(ar) != len(fr) {
		t.Fatalf("ar has %d keys, fr has %d", len(ar), len(fr))
	}
	for k := range ar {
		if _, ok := fr[k]; !ok {
			t.Fatalf("key %q missing in fr", k)
		}
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(reports.LangFR, "severity_high"); got != "Élevée" {
		t.Fatalf("got %q", got)
	}
	if got := T("de", "tableTitle"); got != "سجل الحالات" && got != "Journal des cas" {
		t.Fatalf("expected fallback translation, got %q", got)
	}
	if got := T(reports.LangAR, "no_such_key"); got != "no_such_key" {
		t.Fatalf("expected key back, got %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]reports.Language{"ar": reports.LangAR, "FR": reports.LangFR, "fr-FR": reports.LangFR, "ar_EG": reports.LangAR} {
		got, ok := ParseLanguage(in)
		if !ok || got != want {
			t.Fatalf("ParseLanguage(%q) = %q,%v", in, got, ok)
		}
	}
	if _, ok := ParseLanguage("en"); ok {
		t.Fatalf("en is not supported")
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	if got := FormatDate(reports.LangFR, d); got != "19 octobre 2026" {
		t.Fatalf("fr: got %q", got)
	}
	if got := FormatDate(reports.LangAR, d); got != "١٩ أكتوبر ٢٠٢٦" {
		t.Fatalf("ar: got %q", got)
	}
}

func TestErrorKey(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{reports.ErrMissingFields, "formErrorAllFields"},
		{reports.ErrImageTooLarge, "formErrorImageSize"},
		{fmt.Errorf("wrap: %w", reports.ErrUnsupportedImage), "formErrorImageType"},
		{fmt.Errorf("%w: boom", reports.ErrAnalysisFailed), "errorAnalysis"},
		{reports.ErrAnalysisInProgress, "errorBusy"},
		{errors.New("anything else"), "errorAnalysis"},
	}
	for _, tc := range cases {
		if got := ErrorKey(tc.err); got != tc.want {
			t.Fatalf("ErrorKey(%v) = %q want %q", tc.err, got, tc.want)
		}
	}
	if Dir(reports.LangAR) != "rtl" || Dir(reports.LangFR) != "ltr" {
		t.Fatalf("unexpected directions")
	}
}
