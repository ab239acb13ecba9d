package reports

import "context"

// Repository port for the in-memory incident log
type Repository interface {
	// Prepend inserts r ahead of every existing report.
	Prepend(ctx context.Context, r *Report) error
	List(ctx context.Context) ([]*Report, error)
	Get(ctx context.Context, id ReportID) (*Report, error)
	Update(ctx context.Context, r *Report) error
	Count(ctx context.Context) int
}

// AnalysisRequest is what the analyzer needs to assess one incident.
type AnalysisRequest struct {
	Image       []byte
	ImageType   string
	Description string
	Location    string
}

// Analyzer port (the external multimodal AI)
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error)
}
