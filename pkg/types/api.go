package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat    ErrKind = iota // not a progress file (bad magic)
	ErrKindTruncated                // a structure or table runs past the buffer
	ErrKindMetadata                 // trophy-set descriptor could not be parsed
	ErrKindNotFound                 // missing game, file or trophy
	ErrKindIO                       // the collaborator failed to supply bytes
	ErrKindState                    // invalid operation for current state
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindTruncated:
		return "truncated"
	case ErrKindMetadata:
		return "metadata"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindIO:
		return "io"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so callers can test against the
// sentinels below regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotTrophyFile indicates the progress file lacks the expected magic.
	ErrNotTrophyFile = &Error{Kind: ErrKindFormat, Msg: "not a trophy progress file (bad magic)"}
	// ErrTruncated indicates a structure or table extends past the buffer.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "trophy data truncated"}
	// ErrMetadata indicates the trophy-set descriptor is malformed.
	ErrMetadata = &Error{Kind: ErrKindMetadata, Msg: "malformed trophy-set descriptor"}
	// ErrNotFound indicates a missing game, file or trophy.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
)

// KindOf returns the ErrKind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
