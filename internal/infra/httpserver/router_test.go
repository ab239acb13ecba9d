package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bryanwahyu/hse-assistant/internal/application"
	appreports "github.com/bryanwahyu/hse-assistant/internal/application/reports"
	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/i18n"
	"github.com/bryanwahyu/hse-assistant/internal/infra/memory"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type stubAnalyzer struct {
	result domain.AnalysisResult
	err    error
}

func (s stubAnalyzer) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	return s.result, s.err
}

func newTestServer(t *testing.T) (http.Handler, *appreports.Service) {
	t.Helper()
	svc := appreports.NewService(memory.NewReportRepository(), stubAnalyzer{result: domain.AnalysisResult{
		HazardType:        domain.LocalizedString{AR: "كهربائي", FR: "Electrique"},
		Severity:          domain.SeverityHigh,
		ProposedSolution:  domain.LocalizedString{AR: "عزل الأسلاك", FR: "Isoler les cables"},
		ResponsiblePerson: domain.LocalizedString{AR: "فريق الكهرباء", FR: "Equipe maintenance"},
	}}, nil)
	svc.Clock = application.FixedClock{T: time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)}
	return NewRouter(svc, Options{}), svc
}

// multipartBody builds the upload form; a nil image omits the file part.
func multipartBody(t *testing.T, image []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
		h.Set("Content-Type", http.DetectContentType(image))
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(image)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{"description": "Cables denudes", "location": "Atelier B"}
}

func submitAPI(t *testing.T, h http.Handler, image []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, image, fields)
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) domain.Report {
	t.Helper()
	var rep domain.Report
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v (body %q)", err, rec.Body.String())
	}
	return rep
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestIndexEmpty(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `lang="fr" dir="ltr"`) {
		t.Errorf("expected french ltr page")
	}
	if !strings.Contains(body, `enctype="multipart/form-data"`) {
		t.Errorf("form missing")
	}
	if strings.Contains(body, "<table>") {
		t.Errorf("table rendered for empty log")
	}
}

func TestLanguageSwitchSetsCookie(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=ar", nil))

	if !strings.Contains(rec.Body.String(), `lang="ar" dir="rtl"`) {
		t.Fatalf("expected arabic rtl page")
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == langCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != "ar" {
		t.Fatalf("lang cookie = %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `dir="rtl"`) {
		t.Errorf("cookie language not applied")
	}
}

func TestSubmitAPI(t *testing.T) {
	h, _ := newTestServer(t)
	rec := submitAPI(t, h, pngHeader, validFields())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	rep := decodeReport(t, rec)
	if rep.Severity != domain.SeverityHigh || rep.Location != "Atelier B" {
		t.Errorf("report = %+v", rep)
	}
	if rep.Date != "19 octobre 2026" {
		t.Errorf("date = %q", rep.Date)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))
	var list struct {
		Data  []domain.Report `json:"data"`
		Total int             `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Data[0].ID != rep.ID {
		t.Errorf("list = %+v", list)
	}
}

func TestSubmitAPIValidation(t *testing.T) {
	cases := []struct {
		name   string
		image  []byte
		fields map[string]string
		status int
		key    string
	}{
		{"missing image", nil, validFields(), http.StatusBadRequest, "formErrorAllFields"},
		{"missing location", pngHeader, map[string]string{"description": "x"}, http.StatusBadRequest, "formErrorAllFields"},
		{"blank description", pngHeader, map[string]string{"description": "   ", "location": "A"}, http.StatusBadRequest, "formErrorAllFields"},
		{"not an image", []byte("just some text, definitely not a picture"), validFields(), http.StatusUnsupportedMediaType, "formErrorImageType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, svc := newTestServer(t)
			rec := submitAPI(t, h, tc.image, tc.fields)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			body := decodeError(t, rec)
			if body["error"] != tc.key {
				t.Errorf("error = %q, want %q", body["error"], tc.key)
			}
			if body["message"] != i18n.T(domain.LangFR, tc.key) {
				t.Errorf("message = %q", body["message"])
			}
			if n := svc.Repo.Count(context.Background()); n != 0 {
				t.Errorf("repo has %d reports", n)
			}
		})
	}
}

func TestSubmitAPIImageTooLarge(t *testing.T) {
	h, svc := newTestServer(t)
	svc.MaxImageBytes = int64(len(pngHeader))

	rec := submitAPI(t, h, append(append([]byte{}, pngHeader...), 0, 0, 0), validFields())
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeError(t, rec); body["error"] != "formErrorImageSize" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestSubmitFormRedirectsAndLists(t *testing.T) {
	h, _ := newTestServer(t)
	body, ct := multipartBody(t, pngHeader, validFields())
	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("status = %d, location %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	page := rec.Body.String()
	for _, want := range []string{"Atelier B", "Electrique", "sev-high", "19 octobre 2026"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestSubmitFormErrorKeepsInput(t *testing.T) {
	h, _ := newTestServer(t)
	body, ct := multipartBody(t, nil, validFields())
	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, `role="alert"`) {
		t.Errorf("inline error missing")
	}
	if !strings.Contains(page, `value="Atelier B"`) {
		t.Errorf("location not kept")
	}
}

func TestEditAPI(t *testing.T) {
	h, _ := newTestServer(t)
	rep := decodeReport(t, submitAPI(t, h, pngHeader, validFields()))

	patch := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/v1/reports/"+string(rep.ID), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := patch(`{"severity":"critical","hazardType":{"fr":"Incendie"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	got := decodeReport(t, rec)
	if got.Severity != domain.SeverityCritical {
		t.Errorf("severity = %q", got.Severity)
	}
	if got.HazardType.FR != "Incendie" || got.HazardType.AR != "كهربائي" {
		t.Errorf("hazard = %+v", got.HazardType)
	}
	if got.Date != rep.Date || got.Image != rep.Image || got.Location != rep.Location {
		t.Errorf("untouched fields changed")
	}

	rec = patch(`{"severity":"extreme"}`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec)["error"] != "errorInvalidSeverity" {
		t.Errorf("invalid severity: status %d", rec.Code)
	}

	rec = patch(`{"location":""}`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec)["error"] != "formErrorAllFields" {
		t.Errorf("empty location: status %d", rec.Code)
	}

	rec = patch(`{"bogus":1}`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec)["error"] != "errorBadRequest" {
		t.Errorf("unknown field: status %d", rec.Code)
	}
}

func TestEditForm(t *testing.T) {
	h, svc := newTestServer(t)
	rep := decodeReport(t, submitAPI(t, h, pngHeader, validFields()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/"+string(rep.ID)+"/edit", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `value="high" selected`) {
		t.Fatalf("edit page: status %d", rec.Code)
	}

	form := url.Values{"hazardType": {"حريق"}, "severity": {"low"}}
	req := httptest.NewRequest(http.MethodPost, "/reports/"+string(rep.ID)+"/edit?lang=ar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}

	got, err := svc.Get(context.Background(), rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.HazardType.AR != "حريق" || got.HazardType.FR != "Electrique" {
		t.Errorf("hazard = %+v", got.HazardType)
	}
	if got.Severity != domain.SeverityLow || got.Location != "Atelier B" {
		t.Errorf("report = %+v", got)
	}
}

func TestImageAndPreview(t *testing.T) {
	h, _ := newTestServer(t)
	rep := decodeReport(t, submitAPI(t, h, pngHeader, validFields()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/"+string(rep.ID)+"/image", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("status = %d, type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.Equal(rec.Body.Bytes(), pngHeader) {
		t.Errorf("image bytes differ")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/"+string(rep.ID)+"/preview", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `class="preview"`) {
		t.Errorf("preview: status %d", rec.Code)
	}
}

func TestUnknownReport(t *testing.T) {
	h, _ := newTestServer(t)
	for _, path := range []string{
		"/reports/not-an-id/image",
		"/reports/1792402200000-00000000-0000-0000-0000-000000000000/edit",
		"/v1/reports/1792402200000-00000000-0000-0000-0000-000000000000",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
}

func TestTranslations(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/i18n/ar", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Lang     string            `json:"lang"`
		Dir      string            `json:"dir"`
		Messages map[string]string `json:"messages"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Dir != "rtl" || body.Messages["formErrorAllFields"] != i18n.T(domain.LangAR, "formErrorAllFields") {
		t.Errorf("body = %+v", body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/i18n/de", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown lang: status = %d", rec.Code)
	}
}
