package usecase

import (
	"fmt"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
)

// SubmissionOp names the invoice persistence call that failed.
type SubmissionOp string

const (
	OpSave SubmissionOp = "save"
	OpSend SubmissionOp = "send"
)

// SubmissionError reports a failed invoice save or send. It matches
// errors.ErrSaveFailed or errors.ErrSendFailed and unwraps to the transport error.
type SubmissionError struct {
	Op     SubmissionOp
	LoadID int64
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s invoice for load %d: %v", e.Op, e.LoadID, e.Err)
}

func (e *SubmissionError) Unwrap() []error {
	kind := domainErrors.ErrSaveFailed
	if e.Op == OpSend {
		kind = domainErrors.ErrSendFailed
	}
	return []error{kind, e.Err}
}
