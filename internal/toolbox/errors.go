package toolbox

import (
	"encoding/json"
	"errors"
	"net/http"
)

// APIError is the envelope written for every non-2xx response.
type APIError struct {
	Message    string          `json:"message"`
	Title      string          `json:"title,omitempty"`
	Resolution string          `json:"resolution,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Kind classifies where a failure originated.
type Kind int

const (
	// KindValidation is a missing or invalid caller-supplied parameter.
	KindValidation Kind = iota + 1
	// KindUpstream is a non-success result from the external service,
	// whether signalled by HTTP status or by an embedded failure code.
	KindUpstream
	// KindTransport is a failure of the outbound call itself.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the failure arm of a normalized proxy result.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details json.RawMessage

	// body, when set, replaces the envelope built from Message and
	// Details.
	body json.RawMessage
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Body returns the verbatim upstream body attached to e, or nil.
func (e *Error) Body() json.RawMessage { return e.body }

// MarshalJSON renders the error as an APIError envelope, or as the
// verbatim upstream body when one was attached.
func (e *Error) MarshalJSON() ([]byte, error) {
	if len(e.body) > 0 {
		return e.body, nil
	}
	return json.Marshal(APIError{Message: e.Message, Details: e.Details})
}

// Validation returns a 400 error for a bad caller-supplied parameter.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Upstream returns an error reporting a non-success upstream result.
func Upstream(status int, msg string, details json.RawMessage) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: msg, Details: details}
}

// UpstreamBody returns an upstream error whose response body is passed
// through unchanged.
func UpstreamBody(status int, msg string, body json.RawMessage) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: msg, body: body}
}

// Transport returns a 500 error wrapping a failed outbound call.
func Transport(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Status: http.StatusInternalServerError, Message: msg, err: err}
}

// Internal returns a 500 error for a failure that is neither a bad
// parameter nor an upstream result.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Status: http.StatusInternalServerError, Message: msg, err: err}
}

// AsError reports whether err is, or wraps, an *Error.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
