package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a file could not be processed.
type ErrorKind string

const (
	// KindCollaboratorUnavailable: the image codec or video muxer is missing.
	KindCollaboratorUnavailable ErrorKind = "collaborator_unavailable"
	// KindDecodeOrEncode: malformed or unsupported media content.
	KindDecodeOrEncode ErrorKind = "decode_or_encode_failure"
	// KindIO: read, write, copy, rename or backup-name failure.
	KindIO ErrorKind = "io_failure"
	// KindPathNotFound: the top-level target does not exist.
	KindPathNotFound ErrorKind = "path_not_found"
)

// Sentinel errors wrapped by *Error.
var (
	ErrBackupExhausted = errors.New("no free backup name")
	ErrUnsupported     = errors.New("unsupported file type")
)

// Error carries a kind and the offending path. Callers map it with KindOf.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with kind and path.
func NewError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain. Errors that
// carry no kind are treated as I/O failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
