package download

import (
	"errors"
	"fmt"
)

// Kind classifies orchestration failures.
type Kind int

const (
	// KindValidation means the input was rejected before any network call.
	KindValidation Kind = iota + 1

	// KindNetwork covers transport failures, timeouts and malformed bodies.
	KindNetwork

	// KindServer means the service answered with a non-2xx status.
	KindServer

	// KindContract means a 2xx answer carried no usable download target.
	KindContract

	// KindFetch means the binary payload could not be read or saved.
	KindFetch
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNetwork:
		return "NetworkError"
	case KindServer:
		return "ServerError"
	case KindContract:
		return "ContractError"
	case KindFetch:
		return "FetchError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by Orchestrator.Submit for every failed submission.
type Error struct {
	Kind Kind

	// Message is the user-facing description.
	Message string

	// StatusCode is the HTTP status for KindServer errors.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrServer     = &Error{Kind: KindServer}
	ErrContract   = &Error{Kind: KindContract}
	ErrFetch      = &Error{Kind: KindFetch}

	// ErrBusy is returned when a submission arrives while another is in flight.
	ErrBusy = errors.New("a download is already in progress")
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}
