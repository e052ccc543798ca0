package drill

import "errors"

// Errors returned by Session operations.
var (
	// ErrBusy is returned when an operation is triggered while a fetch or
	// submission is still in flight. Nothing is changed.
	ErrBusy = errors.New("a request is already in flight")

	// ErrClosed is returned once the session has been closed.
	ErrClosed = errors.New("session closed")

	// ErrNotPrompt is returned by Answer when the front card is not a prompt.
	ErrNotPrompt = errors.New("current card is not a prompt")

	// ErrNotCommit is returned by Commit when the front card is not a commit.
	ErrNotCommit = errors.New("current card is not a commit")

	// ErrNotAcknowledgeable is returned by Acknowledge when there is no
	// graded result waiting for acknowledgment.
	ErrNotAcknowledgeable = errors.New("no graded result to acknowledge")

	// ErrNotSessionEnd is returned by Continue when the front card is not a
	// session end.
	ErrNotSessionEnd = errors.New("current card is not a session end")
)
