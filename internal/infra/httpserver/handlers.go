package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appreports "github.com/bryanwahyu/hse-assistant/internal/application/reports"
	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/i18n"
	"github.com/bryanwahyu/hse-assistant/internal/middleware"
)

//
// ==== HTML ====
//

// GET /
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	r.renderIndex(w, req, r.language(w, req), http.StatusOK, "", formValues{})
}

func (r *Router) renderIndex(w http.ResponseWriter, req *http.Request, lang domain.Language, status int, errMsg string, form formValues) {
	list, err := r.reportsSvc.List(req.Context())
	if err != nil {
		r.log.Errorf(req.Context(), "list reports: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	p := newPage(lang)
	p.Error = errMsg
	p.Form = form
	p.Loading = r.reportsSvc.Loading()
	p.Reports = views(lang, list)
	r.renderPage(w, req, status, "index", p)
}

func (r *Router) renderPage(w http.ResponseWriter, req *http.Request, status int, name string, p *page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render(w, name, p); err != nil {
		r.log.Errorf(req.Context(), "render %s: %v", name, err)
	}
}

// POST /reports (multipart: image, description, location)
func (r *Router) handleSubmitForm(w http.ResponseWriter, req *http.Request) {
	lang := r.language(w, req)
	cmd, err := r.readSubmission(w, req, lang)
	if err == nil {
		_, err = r.reportsSvc.Submit(req.Context(), cmd)
	}
	if err != nil {
		form := formValues{Description: cmd.Description, Location: cmd.Location}
		r.renderIndex(w, req, lang, statusFor(err), i18n.T(lang, i18n.ErrorKey(err)), form)
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

// GET /reports/{id}/edit
func (r *Router) handleEditPage(w http.ResponseWriter, req *http.Request) {
	lang := r.language(w, req)
	rep, err := r.reportsSvc.Get(req.Context(), reportID(req))
	if err != nil {
		r.notFoundOr500(w, req, err)
		return
	}
	r.renderEdit(w, req, lang, http.StatusOK, rep, "")
}

func (r *Router) renderEdit(w http.ResponseWriter, req *http.Request, lang domain.Language, status int, rep *domain.Report, errMsg string) {
	p := newPage(lang)
	p.Report = &reportView{Report: rep, lang: lang}
	p.Severities = severityOptions(lang, rep.Severity)
	p.Error = errMsg
	r.renderPage(w, req, status, "edit", p)
}

// POST /reports/{id}/edit edits the active language slot of each bilingual field.
func (r *Router) handleEditForm(w http.ResponseWriter, req *http.Request) {
	lang := r.language(w, req)
	if err := req.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var cmd appreports.EditCommand
	if v, ok := formField(req, "location"); ok {
		cmd.Location = &v
	}
	if v, ok := formField(req, "severity"); ok {
		cmd.Severity = &v
	}
	if v, ok := formField(req, "hazardType"); ok {
		cmd.HazardType.Set(lang, v)
	}
	if v, ok := formField(req, "proposedSolution"); ok {
		cmd.ProposedSolution.Set(lang, v)
	}
	if v, ok := formField(req, "responsiblePerson"); ok {
		cmd.ResponsiblePerson.Set(lang, v)
	}

	if _, err := r.reportsSvc.Edit(req.Context(), reportID(req), cmd); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.notFoundOr500(w, req, err)
			return
		}
		rep, gerr := r.reportsSvc.Get(req.Context(), reportID(req))
		if gerr != nil {
			r.notFoundOr500(w, req, gerr)
			return
		}
		r.renderEdit(w, req, lang, statusFor(err), rep, i18n.T(lang, i18n.ErrorKey(err)))
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func formField(req *http.Request, name string) (string, bool) {
	if _, ok := req.PostForm[name]; !ok {
		return "", false
	}
	return middleware.LimitLength(middleware.SanitizeString(req.PostForm.Get(name)), maxTextLen), true
}

// GET /reports/{id}/preview
func (r *Router) handlePreview(w http.ResponseWriter, req *http.Request) {
	lang := r.language(w, req)
	rep, err := r.reportsSvc.Get(req.Context(), reportID(req))
	if err != nil {
		r.notFoundOr500(w, req, err)
		return
	}
	p := newPage(lang)
	p.Report = &reportView{Report: rep, lang: lang}
	r.renderPage(w, req, http.StatusOK, "preview", p)
}

// GET /reports/{id}/image
func (r *Router) handleImage(w http.ResponseWriter, req *http.Request) {
	b, mime, err := r.reportsSvc.Image(req.Context(), reportID(req))
	if err != nil {
		r.notFoundOr500(w, req, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(b)
}

func (r *Router) notFoundOr500(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, req)
		return
	}
	r.log.Errorf(req.Context(), "request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

//
// ==== JSON API ====
//

// GET /v1/reports
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	list, err := r.reportsSvc.List(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"data":    list,
		"total":   len(list),
		"loading": r.reportsSvc.Loading(),
	})
}

// POST /v1/reports (multipart: image, description, location)
func (r *Router) handleSubmitAPI(w http.ResponseWriter, req *http.Request) error {
	cmd, err := r.readSubmission(w, req, r.language(w, req))
	if err != nil {
		return err
	}
	rep, err := r.reportsSvc.Submit(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, rep)
}

// GET /v1/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	rep, err := r.reportsSvc.Get(req.Context(), reportID(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

type localizedPatchBody struct {
	AR *string `json:"ar"`
	FR *string `json:"fr"`
}

func (b *localizedPatchBody) toPatch() appreports.LocalizedPatch {
	if b == nil {
		return appreports.LocalizedPatch{}
	}
	return appreports.LocalizedPatch{AR: b.AR, FR: b.FR}
}

// PATCH /v1/reports/{id}
// Body: any subset of {"location","severity","hazardType":{"ar","fr"},"proposedSolution":{...},"responsiblePerson":{...}}
func (r *Router) handleEditAPI(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Location          *string             `json:"location"`
		Severity          *string             `json:"severity"`
		HazardType        *localizedPatchBody `json:"hazardType"`
		ProposedSolution  *localizedPatchBody `json:"proposedSolution"`
		ResponsiblePerson *localizedPatchBody `json:"responsiblePerson"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return errors.Join(errBadRequest, err)
	}

	rep, err := r.reportsSvc.Edit(req.Context(), reportID(req), appreports.EditCommand{
		Location:          body.Location,
		Severity:          body.Severity,
		HazardType:        body.HazardType.toPatch(),
		ProposedSolution:  body.ProposedSolution.toPatch(),
		ResponsiblePerson: body.ResponsiblePerson.toPatch(),
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

// GET /v1/i18n/{lang}
func (r *Router) handleTranslations(w http.ResponseWriter, req *http.Request) error {
	lang, ok := i18n.ParseLanguage(chi.URLParam(req, "lang"))
	if !ok {
		return domain.ErrNotFound
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"lang":     lang,
		"dir":      i18n.Dir(lang),
		"messages": i18n.Table(lang),
	})
}
