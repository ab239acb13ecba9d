package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrUnparseable indicates the model answered with something that is not a JSON object.
var ErrUnparseable = errors.New("could not parse the analysis result from the AI")

// ErrIncomplete indicates a bilingual field came back with an empty slot.
var ErrIncomplete = errors.New("ai analysis is missing required fields")

// ErrEmptyResponse indicates the provider returned no choices.
var ErrEmptyResponse = errors.New("ai returned no choices")
