package ai

import (
	"context"

	"github.com/bryanwahyu/hse-assistant/internal/domain/reports"
)

// Client sends one incident to the multimodal model and returns the raw JSON text it answered with.
type Client interface {
	Analyze(ctx context.Context, req reports.AnalysisRequest) (string, error)
}
