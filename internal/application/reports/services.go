package reports

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/bryanwahyu/hse-assistant/internal/application"
	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/i18n"
	"github.com/bryanwahyu/hse-assistant/internal/pkg/logger"
)

// DefaultMaxImageBytes is the 4 MiB upload threshold.
const DefaultMaxImageBytes = 4 * 1024 * 1024

// Metrics receives analysis lifecycle events. Optional.
type Metrics interface {
	AnalysisStarted()
	AnalysisFinished(err error)
}

// Service holds the incident log and drives submissions and edits.
// At most one analysis runs at a time.
type Service struct {
	Repo            domain.Repository
	Analyzer        domain.Analyzer
	Clock           application.Clock
	Log             logger.Logger
	Metrics         Metrics
	MaxImageBytes   int64
	DefaultLanguage domain.Language

	inFlight atomic.Bool
	validate *validator.Validate
}

// NewService wires a Service with defaults for every optional field.
func NewService(repo domain.Repository, analyzer domain.Analyzer, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		Repo:            repo,
		Analyzer:        analyzer,
		Clock:           application.SystemClock{},
		Log:             log,
		MaxImageBytes:   DefaultMaxImageBytes,
		DefaultLanguage: domain.LangFR,
		validate:        validator.New(),
	}
}

//
// ==== USE CASES ====
//

// SubmitCommand is one form submission.
type SubmitCommand struct {
	Image       []byte `validate:"required,min=1"`
	ImageType   string
	Description string `validate:"required"`
	Location    string `validate:"required"`
	Language    domain.Language
}

// EditCommand carries only the fields the user submitted; nil means unchanged.
type EditCommand struct {
	Location          *string        `validate:"omitnil,min=1"`
	Severity          *string        `validate:"omitnil,oneof=low medium high critical"`
	HazardType        LocalizedPatch
	ProposedSolution  LocalizedPatch
	ResponsiblePerson LocalizedPatch
}

// LocalizedPatch edits one or both language slots.
type LocalizedPatch struct {
	AR *string `validate:"omitnil,min=1"`
	FR *string `validate:"omitnil,min=1"`
}

// Set fills the slot for lang.
func (p *LocalizedPatch) Set(lang domain.Language, v string) {
	if lang == domain.LangAR {
		p.AR = &v
		return
	}
	p.FR = &v
}

func (p LocalizedPatch) apply(l domain.LocalizedString) domain.LocalizedString {
	if p.AR != nil {
		l.AR = *p.AR
	}
	if p.FR != nil {
		l.FR = *p.FR
	}
	return l
}

// Loading reports whether an analysis is currently in flight.
func (s *Service) Loading() bool {
	return s.inFlight.Load()
}

// Submit validates the form, runs the analysis and prepends the new report.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Report, error) {
	cmd.Description = strings.TrimSpace(cmd.Description)
	cmd.Location = strings.TrimSpace(cmd.Location)

	if s.MaxImageBytes > 0 && int64(len(cmd.Image)) > s.MaxImageBytes {
		return nil, domain.ErrImageTooLarge
	}
	if err := s.validator().Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingFields, err)
	}
	mime, err := imageType(cmd.Image, cmd.ImageType)
	if err != nil {
		return nil, err
	}

	if !s.inFlight.CAS(false, true) {
		return nil, domain.ErrAnalysisInProgress
	}
	defer s.inFlight.Store(false)

	if s.Metrics != nil {
		s.Metrics.AnalysisStarted()
	}
	res, err := s.Analyzer.Analyze(ctx, domain.AnalysisRequest{
		Image:       cmd.Image,
		ImageType:   mime,
		Description: cmd.Description,
		Location:    cmd.Location,
	})
	if s.Metrics != nil {
		s.Metrics.AnalysisFinished(err)
	}
	if err != nil {
		s.Log.Errorf(ctx, "analysis failed location=%q: %v", cmd.Location, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}

	lang := cmd.Language
	if lang == "" {
		lang = s.DefaultLanguage
	}
	now := s.Clock.Now()
	rep := &domain.Report{
		ID:                domain.ReportID(fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.New().String())),
		Date:              i18n.FormatDate(lang, now),
		Location:          cmd.Location,
		Image:             base64.StdEncoding.EncodeToString(cmd.Image),
		ImageType:         mime,
		HazardType:        res.HazardType,
		Severity:          res.Severity,
		ProposedSolution:  res.ProposedSolution,
		ResponsiblePerson: res.ResponsiblePerson,
		CreatedAt:         now,
	}
	if err := s.Repo.Prepend(ctx, rep); err != nil {
		return nil, err
	}
	s.Log.Infof(logger.WithReportID(ctx, string(rep.ID)), "report created severity=%s location=%q", rep.Severity, rep.Location)
	return rep, nil
}

// List returns the log, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Report, error) {
	return s.Repo.List(ctx)
}

// Get ambil 1 report by id
func (s *Service) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	return s.Repo.Get(ctx, id)
}

// Edit overwrites only the submitted fields. ID, date, image and creation time never change.
func (s *Service) Edit(ctx context.Context, id domain.ReportID, cmd EditCommand) (*domain.Report, error) {
	trimPtr(cmd.Location)
	for _, p := range []*LocalizedPatch{&cmd.HazardType, &cmd.ProposedSolution, &cmd.ResponsiblePerson} {
		trimPtr(p.AR)
		trimPtr(p.FR)
	}
	if err := s.validator().Struct(cmd); err != nil {
		return nil, classify(err)
	}

	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if cmd.Location != nil {
		updated.Location = *cmd.Location
	}
	if cmd.Severity != nil {
		updated.Severity = domain.Severity(*cmd.Severity)
	}
	updated.HazardType = cmd.HazardType.apply(existing.HazardType)
	updated.ProposedSolution = cmd.ProposedSolution.apply(existing.ProposedSolution)
	updated.ResponsiblePerson = cmd.ResponsiblePerson.apply(existing.ResponsiblePerson)

	if err := s.Repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.Log.Infof(logger.WithReportID(ctx, string(id)), "report edited")
	return &updated, nil
}

// Image returns the decoded upload for the zoom view.
func (s *Service) Image(ctx context.Context, id domain.ReportID) ([]byte, string, error) {
	rep, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := base64.StdEncoding.DecodeString(rep.Image)
	if err != nil {
		return nil, "", fmt.Errorf("decode image %s: %w", id, err)
	}
	return b, rep.ImageType, nil
}

// helper

func (s *Service) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New()
	}
	return s.validate
}

func imageType(b []byte, declared string) (string, error) {
	if sniffed := http.DetectContentType(b); strings.HasPrefix(sniffed, "image/") {
		return sniffed, nil
	}
	if strings.HasPrefix(declared, "image/") {
		return declared, nil
	}
	return "", domain.ErrUnsupportedImage
}

func classify(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "oneof" {
				return fmt.Errorf("%w: %s", domain.ErrInvalidSeverity, fe.Field())
			}
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrMissingFields, err)
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
