package services

import "errors"

var (
	// ErrModelOutputMalformed means the model's structured answer could not
	// be parsed. Callers decide the fallback.
	ErrModelOutputMalformed = errors.New("model output malformed")

	// ErrForbidden means the acting user lacks the capability for the
	// requested workflow.
	ErrForbidden = errors.New("actor not allowed")

	// ErrNoCandidates means a grading session was started for a job with no
	// gradable matches. This is a contract error, not a soft failure.
	ErrNoCandidates = errors.New("no gradable candidates for job")
)
