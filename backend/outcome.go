package backend

import "context"

type OutcomeKind uint8

const (
	// Completed means a final text was extracted and is in Outcome.Text.
	Completed OutcomeKind = iota
	// SuccessNoText means the execution finished but the payload carried no
	// recognizable text; Body holds a compacted rendering of it.
	SuccessNoText
	// SubmissionRejected is a non-2xx response to the creation request.
	SubmissionRejected
	// SubmissionMalformed is a 2xx creation response without an execution_id.
	SubmissionMalformed
	// PollTimeout means the wall-clock budget ran out before a terminal status.
	PollTimeout
	// NetworkTimeout is a single request exceeding its own timeout.
	NetworkTimeout
	// NetworkUnreachable is any other transport-level failure.
	NetworkUnreachable
	// Canceled means the caller's context was canceled mid-job.
	Canceled
	// Unexpected covers everything uncaught. Logged, never propagated as a panic.
	Unexpected
)

// Outcome is the tagged result of one job run. Exactly the fields relevant
// to Kind are set; Render turns it into a display string.
type Outcome struct {
	Kind       OutcomeKind
	Text       string
	StatusCode int
	Body       string
	LastStatus string
	Err        error
}

// transportOutcome maps a failed network call onto the outcome taxonomy.
func transportOutcome(ctx context.Context, err error) Outcome {
	if ctx.Err() != nil {
		return Outcome{Kind: Canceled, Err: ctx.Err()}
	}
	if IsTimeoutErr(err) {
		return Outcome{Kind: NetworkTimeout, Err: err}
	}
	return Outcome{Kind: NetworkUnreachable, Err: err}
}
