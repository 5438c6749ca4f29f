package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. zero duration, unknown currency code).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrGenerationBlocked is returned when the completion provider refuses to
// generate any content for the prompt. The wrapped message carries the
// provider's block reason when one was given. Retrying the same prompt will
// not help; handlers should surface it as an explicit outcome, not a 5xx.
var ErrGenerationBlocked = errors.New("generation blocked")

// ErrGenerationFailed is returned when the call to the completion provider
// fails at the transport or parsing level. Handlers should map this to
// HTTP 502 — the session survives, only this request failed.
var ErrGenerationFailed = errors.New("generation failed")
