package reports

import "errors"

var (
	// ErrMissingFields means image, description or location (or an edited value) is empty.
	ErrMissingFields = errors.New("all fields are required")
	// ErrImageTooLarge means the upload exceeds the configured size threshold.
	ErrImageTooLarge = errors.New("image exceeds size limit")
	// ErrUnsupportedImage means the upload is not an image.
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrInvalidSeverity  = errors.New("invalid severity")
	// ErrAnalysisInProgress means another submission is still waiting on the AI.
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	// ErrAnalysisFailed wraps any analyzer failure (network, provider, parse).
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrNotFound       = errors.New("report not found")
)
