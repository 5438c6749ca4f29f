package domain

// CompletionOutcome classifies what the completion provider did with a prompt.
// Exactly one outcome applies per call, checked in this precedence order:
// blocked, then truncated, then clean; failed covers transport/parse errors.
type CompletionOutcome string

const (
	OutcomeClean     CompletionOutcome = "clean"
	OutcomeTruncated CompletionOutcome = "truncated"
	OutcomeBlocked   CompletionOutcome = "blocked"
	OutcomeFailed    CompletionOutcome = "failed"
)

// CompletionResult is the typed result of one completion call.
// It is immutable once produced; a new submission produces a new value.
// Callers must check Outcome before touching Raw — a blocked or failed
// result carries no usable text.
type CompletionResult struct {
	Outcome CompletionOutcome

	// Raw is the generated text. Empty unless Outcome is clean or truncated.
	Raw string

	// Truncated is true when the provider stopped for a non-natural reason
	// (length cap etc.) but still returned content.
	Truncated bool

	// BlockReason is set when Outcome is blocked: the provider's reason code
	// if it gave one, else "unknown".
	BlockReason string

	// ErrClass and ErrMessage describe the failure when Outcome is failed.
	// ErrClass is the Go type of the underlying error.
	ErrClass   string
	ErrMessage string
}
