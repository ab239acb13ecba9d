package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/hse-assistant/internal/domain/ai"
	"github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/pkg/logger"
)

// Service turns raw model output into a validated assessment. It implements reports.Analyzer.
type Service struct {
	client ai.Client
	log    logger.Logger

	// OnCoerced, when set, is called each time an unknown severity is replaced.
	OnCoerced func()
}

func NewService(client ai.Client, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{client: client, log: log}
}

func (s *Service) Analyze(ctx context.Context, req reports.AnalysisRequest) (reports.AnalysisResult, error) {
	raw, err := s.client.Analyze(ctx, req)
	if err != nil {
		return reports.AnalysisResult{}, err
	}

	res, rawSeverity, coerced, err := ParseAnalysis(raw)
	if err != nil {
		s.log.Errorf(ctx, "failed to parse ai response: %v raw=%q", err, truncate(raw, 512))
		return reports.AnalysisResult{}, err
	}
	if coerced {
		s.log.Warnf(ctx, "invalid severity received from ai: %q, defaulting to %q", rawSeverity, reports.DefaultSeverity)
		if s.OnCoerced != nil {
			s.OnCoerced()
		}
	}
	return res, nil
}

// ParseAnalysis decodes the model's JSON text. Unknown severities are replaced
// by reports.DefaultSeverity and reported through coerced.
func ParseAnalysis(raw string) (res reports.AnalysisResult, rawSeverity string, coerced bool, err error) {
	text := stripFence(strings.TrimSpace(raw))

	var wire struct {
		HazardType        reports.LocalizedString `json:"hazardType"`
		Severity          string                  `json:"severity"`
		ProposedSolution  reports.LocalizedString `json:"proposedSolution"`
		ResponsiblePerson reports.LocalizedString `json:"responsiblePerson"`
	}
	if !strings.HasPrefix(text, "{") {
		return res, "", false, ai.ErrUnparseable
	}
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return res, "", false, fmt.Errorf("%w: %v", ai.ErrUnparseable, err)
	}

	for name, l := range map[string]reports.LocalizedString{
		"hazardType":        wire.HazardType,
		"proposedSolution":  wire.ProposedSolution,
		"responsiblePerson": wire.ResponsiblePerson,
	} {
		if !l.Complete() {
			return res, wire.Severity, false, fmt.Errorf("%w: %s", ai.ErrIncomplete, name)
		}
	}

	sev, ok := reports.NormalizeSeverity(wire.Severity)
	res = reports.AnalysisResult{
		HazardType:        trimAll(wire.HazardType),
		Severity:          sev,
		ProposedSolution:  trimAll(wire.ProposedSolution),
		ResponsiblePerson: trimAll(wire.ResponsiblePerson),
	}
	return res, wire.Severity, !ok, nil
}

// stripFence removes a ```json ... ``` wrapper some models add despite instructions.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func trimAll(l reports.LocalizedString) reports.LocalizedString {
	return reports.LocalizedString{AR: strings.TrimSpace(l.AR), FR: strings.TrimSpace(l.FR)}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
