package texatlas

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrIO            = errors.New("i/o error")
	ErrDecode        = errors.New("decode error")
	ErrManifestParse = errors.New("manifest parse error")
)

// Error is the structured failure returned by every operation in this package.
type Error struct {
	Kind error  // one of the Err* kinds
	Op   string // operation, e.g. "export atlas"
	Path string // file involved, if any
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := "texatlas: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": " + e.Kind.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func invalidf(op, format string, args ...any) *Error {
	return newError(ErrInvalidInput, op, "", fmt.Errorf(format, args...))
}

// Kind reports the error kind of err, or nil when err is not one of ours.
func Kind(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, k := range []error{ErrInvalidInput, ErrIO, ErrDecode, ErrManifestParse} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// guard converts a panic inside a public entry point into an *Error so that
// nothing unhandled reaches the host.
func guard(op string, errp *error) {
	if r := recover(); r != nil {
		*errp = newError(ErrInvalidInput, op, "", fmt.Errorf("panic: %v", r))
	}
}
