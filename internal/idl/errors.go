package idl

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes patch failures.
type ErrorKind string

const (
	// KindIO indicates the file could not be read or written.
	KindIO ErrorKind = "io"

	// KindParse indicates the content is not valid JSON.
	KindParse ErrorKind = "parse"

	// KindSchema indicates valid JSON without the expected IDL shape.
	KindSchema ErrorKind = "schema"

	// KindLock indicates another process holds the patch lock.
	KindLock ErrorKind = "lock"
)

// Error is returned by every operation in this package that touches a
// document. Use errors.As or the Is* helpers to inspect it.
type Error struct {
	Kind ErrorKind
	Op   string // "read", "parse", "validate", "write", "lock"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s error: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func schemaErrorf(path, format string, args ...any) *Error {
	return newError(KindSchema, "validate", path, fmt.Errorf(format, args...))
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsIOError reports whether err is a read or write failure.
func IsIOError(err error) bool { return isKind(err, KindIO) }

// IsParseError reports whether err is a JSON syntax failure.
func IsParseError(err error) bool { return isKind(err, KindParse) }

// IsSchemaError reports whether err is an IDL shape failure.
func IsSchemaError(err error) bool { return isKind(err, KindSchema) }

// IsLockError reports whether err is a lock contention failure.
func IsLockError(err error) bool { return isKind(err, KindLock) }
