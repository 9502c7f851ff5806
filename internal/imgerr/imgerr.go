// Package imgerr defines the failure kinds a pipeline call can end with.
// Every error carries a single descriptive message; nothing in the pipeline
// recovers from one.
package imgerr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindInvalidBuffer   Kind = "invalid_buffer"
	KindDecode          Kind = "decode"
	KindFilterParameter Kind = "filter_parameter"
	KindEncode          Kind = "encode"
	KindUnknown         Kind = "unknown"
)

// Error is a classified pipeline failure.
type Error struct {
	Kind Kind
	// Op names the step that failed ("raw", "decode", "blur", "jpeg", ...).
	Op  string
	Msg string
	Err error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidBuffer   = &Error{Kind: KindInvalidBuffer}
	ErrDecode          = &Error{Kind: KindDecode}
	ErrFilterParameter = &Error{Kind: KindFilterParameter}
	ErrEncode          = &Error{Kind: KindEncode}
)

func (e *Error) Error() string {
	prefix := kindLabel(e.Kind)
	if e.Op != "" {
		prefix += " (" + e.Op + ")"
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	case e.Msg != "":
		return prefix + ": " + e.Msg
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return prefix
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// InvalidBuffer reports raw pixel data that does not match its declared dimensions.
func InvalidBuffer(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidBuffer, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Decode wraps a decoder diagnostic.
func Decode(err error) error {
	return &Error{Kind: KindDecode, Op: "decode", Err: err}
}

// FilterParameter reports a filter argument outside its numeric domain.
func FilterParameter(stage, format string, args ...any) error {
	return &Error{Kind: KindFilterParameter, Op: stage, Msg: fmt.Sprintf(format, args...)}
}

// Encode wraps an encoder diagnostic. Either msg or err may be empty.
func Encode(op, msg string, err error) error {
	return &Error{Kind: KindEncode, Op: op, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func kindLabel(k Kind) string {
	switch k {
	case KindInvalidBuffer:
		return "invalid buffer"
	case KindDecode:
		return "decode error"
	case KindFilterParameter:
		return "invalid filter parameter"
	case KindEncode:
		return "encode error"
	}
	return "error"
}
