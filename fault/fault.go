// Package fault decorates errors with the file and line of the call site
// while keeping the whole chain visible to errors.Is and errors.As.
//
// A typical use is to attach a package-level sentinel to a low-level cause:
//
//  if err := readSomething(); err != nil {
//  	return fault.Wrap(err, ErrRead)
//  }
//
// The result matches both ErrRead and the original cause.
package fault

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
)

// From annotates err with the caller's position. It returns nil for a nil
// error. io.EOF and io.ErrUnexpectedEOF pass through untouched because much
// of the standard library compares them by identity.
func From(err error) error {
	return annotate(err, nil)
}

// Wrap annotates cause with the caller's position and attaches tag as an
// additional error the result matches via errors.Is. A nil cause returns nil
// even when tag is set.
func Wrap(cause, tag error) error {
	return annotate(cause, tag)
}

func annotate(cause, tag error) error {
	if cause == nil || cause == io.EOF || cause == io.ErrUnexpectedEOF {
		return cause
	}

	f := &fault{cause: cause, tag: tag}
	if _, file, line, ok := runtime.Caller(2); ok {
		f.file = filepath.Base(file)
		f.line = line
	}

	return f
}

type fault struct {
	cause error
	tag   error
	file  string
	line  int
}

func (f *fault) Error() string {
	at := "unknown"
	if f.file != "" {
		at = fmt.Sprintf("%s:%d", f.file, f.line)
	}

	if f.tag != nil {
		return fmt.Sprintf("%s: %v: %v", at, f.tag, f.cause)
	}
	return fmt.Sprintf("%s: %v", at, f.cause)
}

func (f *fault) Unwrap() error {
	return f.cause
}

func (f *fault) Is(target error) bool {
	return f.tag != nil && errors.Is(f.tag, target)
}

func (f *fault) As(target interface{}) bool {
	return f.tag != nil && errors.As(f.tag, target)
}
