// Package fatal carries unrecoverable errors to the one place allowed to
// show them: the OS goroutine, which logs, displays a modal and exits.
package fatal

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// DefaultSummary titles errors that do not provide their own summary.
const DefaultSummary = "Unexpected error"

// Error is an unrecoverable error together with the place it was raised.
// Go does not report columns, so Column is always 0.
type Error struct {
	File    string
	Line    int
	Column  int
	Summary string
	Message string
	Err     error
}

// New creates an Error originating at the caller.
func New(summary, message string) *Error {
	return newAt(2, summary, message, nil)
}

// Newf is New with a formatted message.
func Newf(summary, format string, args ...any) *Error {
	return newAt(2, summary, fmt.Sprintf(format, args...), nil)
}

// Wrap converts err into an Error originating at the caller. An Error
// already in the chain is returned unchanged so the first origin wins. The
// summary comes from the first error in the chain with a Summary method.
func Wrap(err error) *Error {
	return wrapAt(2, err)
}

func wrapAt(skip int, err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	summary := DefaultSummary
	var s interface{ Summary() string }
	if errors.As(err, &s) {
		summary = s.Summary()
	}
	return newAt(skip+1, summary, err.Error(), err)
}

func newAt(skip int, summary, message string, err error) *Error {
	e := &Error{Summary: summary, Message: message, Err: err}
	if _, file, line, ok := runtime.Caller(skip); ok {
		e.File = shortFile(file)
		e.Line = line
	}
	return e
}

// shortFile keeps the package directory and file name.
func shortFile(file string) string {
	dir, name := filepath.Split(file)
	return filepath.ToSlash(filepath.Join(filepath.Base(dir), name))
}

func (e *Error) Error() string {
	return fmt.Sprintf("<%s> %q", e.Summary, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Origin formats the raise site as file::line::column.
func (e *Error) Origin() string {
	return fmt.Sprintf("%s::%d::%d", e.File, e.Line, e.Column)
}

// Display returns the dialog body. Debug builds append the origin.
func (e *Error) Display(debug bool) string {
	if debug {
		return fmt.Sprintf("%s (%s)", e.Message, e.Origin())
	}
	return e.Message
}
