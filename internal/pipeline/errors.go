package pipeline

import "errors"

// Precondition failures. Each is returned wrapped in a *PreconditionError
// before any network call is made.
var (
	ErrBusy           = errors.New("another operation is in progress")
	ErrNoPages        = errors.New("please upload a PDF first")
	ErrInvalidRange   = errors.New("invalid page range")
	ErrNoInput        = errors.New("no input text available for this agent")
	ErrNoDocument     = errors.New("no document text available, please run OCR first")
	ErrUnknownStage   = errors.New("unknown pipeline position")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrUnknownView    = errors.New("unknown view")
)

// PreconditionError reports an operation that was refused before it started.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PreconditionError) Unwrap() error { return e.Err }
