package apply

import "errors"

var (
	// ErrSubmissionInFlight is returned when dismissal or re-targeting is attempted
	// while a submission is pending.
	ErrSubmissionInFlight = errors.New("application submission in progress")
	// ErrNotOpen is returned by Submit when no job is targeted.
	ErrNotOpen = errors.New("application form is not open")
	// ErrDisposed is returned by any operation after Dispose.
	ErrDisposed = errors.New("application form disposed")
	// ErrResumeRejected is returned when a file cannot be picked as a resume.
	ErrResumeRejected = errors.New("resume not accepted")
)
