// Package fault defines the closed set of error kinds the service can
// produce. Handlers branch on Kind rather than parsing message text.
package fault

import "errors"

type Kind string

const (
	// Configuration: a required credential or setting is absent. Fatal for
	// the request, never retried.
	Configuration Kind = "configuration"
	// UpstreamEmpty: the model returned no usable text.
	UpstreamEmpty Kind = "upstream_empty"
	// UpstreamTimeout: the model call exceeded the execution time budget.
	UpstreamTimeout Kind = "upstream_timeout"
	// Unparsable: text came back but no JSON object could be extracted or
	// repaired from it.
	Unparsable Kind = "unparsable"
	// Validation: the request is malformed or the result fails the
	// plausibility check (e.g. the photo is not a palm).
	Validation Kind = "validation"
	// NotFound: a referenced record does not exist.
	NotFound Kind = "not_found"
	// Internal: everything else, including upstream transport failures.
	Internal Kind = "internal"
)

// Error carries a Kind for branching and a user-presentable Message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of err, or Internal for errors produced outside
// this taxonomy.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-presentable message for err. Errors from outside
// the taxonomy collapse to a generic message so internals never leak to
// clients.
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "internal error"
}
