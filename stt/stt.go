// Package stt wraps the speech-to-text engine behind a single blocking
// transcription call.
package stt

import "fmt"

// FailedError reports an engine failure with a diagnostic reason. Absence
// of speech is not a failure; it yields an empty transcript.
type FailedError struct {
	Reason string
	Err    error
}

func (e *FailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transcription failed: %s", e.Reason)
}

func (e *FailedError) Unwrap() error { return e.Err }
