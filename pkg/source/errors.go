package source

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrIO marks failures to open, read or write a file.
	ErrIO = errors.New("io error")
	// ErrFormat marks inputs from which no usable byte payload could be derived.
	ErrFormat = errors.New("format error")
)

// Error describes a failed load. Kind is ErrIO or ErrFormat and matches
// through errors.Is, as does the underlying cause.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	msg = fmt.Sprintf("%s: %v", msg, e.Kind)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrIO, Err: err}
}

func formatError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrFormat, Err: err}
}
