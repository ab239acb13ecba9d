package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appreports "github.com/bryanwahyu/hse-assistant/internal/application/reports"
	domai "github.com/bryanwahyu/hse-assistant/internal/domain/ai"
	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/i18n"
	"github.com/bryanwahyu/hse-assistant/internal/middleware"
	"github.com/bryanwahyu/hse-assistant/internal/pkg/logger"
)

const (
	langCookie = "lang"
	// multipart overhead allowed on top of the image itself
	formOverhead = 1 << 20

	maxTextLen = 2000
)

// Options configures NewRouter. Zero values are usable.
type Options struct {
	Log             logger.Logger
	DefaultLanguage domain.Language
	AllowedOrigins  []string
	RateLimiter     *middleware.RateLimiter
	HealthCheckers  map[string]middleware.HealthChecker
}

type Router struct {
	reportsSvc  *appreports.Service
	log         logger.Logger
	defaultLang domain.Language
}

func NewRouter(reportsSvc *appreports.Service, opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = domain.LangFR
	}
	r := &Router{reportsSvc: reportsSvc, log: opts.Log, defaultLang: opts.DefaultLanguage}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.LoggingMiddleware(opts.Log))
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.MetricsMiddleware)
	if opts.RateLimiter != nil {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
	}

	count := func() int { return reportsSvc.Repo.Count(context.Background()) }
	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers, func() map[string]any {
		return map[string]any{"reports": count(), "analysis_in_progress": reportsSvc.Loading()}
	}))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler(count))

	// HTML pages
	mux.Get("/", r.handleIndex)
	mux.Post("/reports", r.handleSubmitForm)
	mux.Route("/reports/{id}", func(rt chi.Router) {
		rt.Use(r.requireReportID)
		rt.Get("/edit", r.handleEditPage)
		rt.Post("/edit", r.handleEditForm)
		rt.Get("/preview", r.handlePreview)
		rt.Get("/image", r.handleImage)
	})

	// JSON API
	mux.Route("/v1", func(rt chi.Router) {
		rt.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins(opts.AllowedOrigins),
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "Accept-Language"},
			MaxAge:         300,
		}))
		rt.Get("/reports", r.wrap(r.handleList))
		rt.Post("/reports", r.wrap(r.handleSubmitAPI))
		rt.Get("/i18n/{lang}", r.wrap(r.handleTranslations))
		rt.Route("/reports/{id}", func(rr chi.Router) {
			rr.Use(r.requireReportID)
			rr.Get("/", r.wrap(r.handleGet))
			rr.Patch("/", r.wrap(r.handleEditAPI))
		})
	})

	return mux
}

func allowedOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain errors to status codes and a localized JSON body.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				r.log.Errorf(req.Context(), "request failed: %v", err)
			}
			key := i18n.ErrorKey(err)
			if errors.Is(err, errBadRequest) {
				key = "errorBadRequest"
			}
			writeJSON(w, status, map[string]string{
				"error":   key,
				"message": i18n.T(r.language(w, req), key),
			})
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrInvalidSeverity), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAnalysisInProgress):
		return http.StatusConflict
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrAnalysisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// language resolves ?lang=, then the cookie, then Accept-Language, then the default.
// An explicit ?lang= is remembered in a cookie.
func (r *Router) language(w http.ResponseWriter, req *http.Request) domain.Language {
	if l, ok := i18n.ParseLanguage(req.URL.Query().Get("lang")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     langCookie,
			Value:    string(l),
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return l
	}
	if c, err := req.Cookie(langCookie); err == nil {
		if l, ok := i18n.ParseLanguage(c.Value); ok {
			return l
		}
	}
	for _, part := range strings.Split(req.Header.Get("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if l, ok := i18n.ParseLanguage(tag); ok {
			return l
		}
	}
	return r.defaultLang
}

func (r *Router) requireReportID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := middleware.ValidateReportID(chi.URLParam(req, "id")); err != nil {
			http.NotFound(w, req)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func reportID(req *http.Request) domain.ReportID {
	return domain.ReportID(chi.URLParam(req, "id"))
}

// readSubmission pulls the multipart form into a SubmitCommand. A missing file
// leaves Image empty so the service reports the missing field.
func (r *Router) readSubmission(w http.ResponseWriter, req *http.Request, lang domain.Language) (appreports.SubmitCommand, error) {
	limit := r.reportsSvc.MaxImageBytes
	if limit <= 0 {
		limit = appreports.DefaultMaxImageBytes
	}
	req.Body = http.MaxBytesReader(w, req.Body, limit+formOverhead)

	cmd := appreports.SubmitCommand{Language: lang}
	if err := req.ParseMultipartForm(limit + formOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return cmd, domain.ErrImageTooLarge
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return cmd, errors.Join(errBadRequest, err)
		}
	}
	cmd.Description = middleware.LimitLength(middleware.SanitizeString(req.FormValue("description")), maxTextLen)
	cmd.Location = middleware.LimitLength(middleware.SanitizeString(req.FormValue("location")), maxTextLen)

	file, header, err := req.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		var buf bytes.Buffer
		// one byte past the limit is enough for the service to reject it
		if _, err := io.Copy(&buf, io.LimitReader(file, limit+1)); err != nil {
			return cmd, errors.Join(errBadRequest, err)
		}
		cmd.Image = buf.Bytes()
		cmd.ImageType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return cmd, errors.Join(errBadRequest, err)
	}
	return cmd, nil
}
