package scoring

import (
	"errors"
	"fmt"
)

// ErrorKind names the two ways a submitted score can be rejected.
type ErrorKind string

const (
	KindSetScoreInvalid   ErrorKind = "SET_SCORE_INVALID"
	KindMatchScoreInvalid ErrorKind = "MATCH_SCORE_INVALID"
)

// Sentinels for errors.Is checks against a *ValidationError.
var (
	ErrSetScoreInvalid   = errors.New("set score invalid")
	ErrMatchScoreInvalid = errors.New("match score invalid")
)

// Result is the outcome of a validation. An invalid result carries the kind and a
// human readable reason that is safe to show next to the form field.
type Result struct {
	Valid bool      `json:"valid"`
	Kind  ErrorKind `json:"kind,omitempty"`
	Error string    `json:"error,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func setInvalid(format string, args ...any) Result {
	return Result{Kind: KindSetScoreInvalid, Error: fmt.Sprintf(format, args...)}
}

func matchInvalid(format string, args ...any) Result {
	return Result{Kind: KindMatchScoreInvalid, Error: fmt.Sprintf(format, args...)}
}

// Err converts an invalid result into an error. It returns nil for valid results.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Kind: r.Kind, Reason: r.Error}
}

// ValidationError is the error form of an invalid Result.
type ValidationError struct {
	Kind   ErrorKind
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is lets errors.Is match the kind sentinels.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrSetScoreInvalid:
		return e.Kind == KindSetScoreInvalid
	case ErrMatchScoreInvalid:
		return e.Kind == KindMatchScoreInvalid
	}
	return false
}
