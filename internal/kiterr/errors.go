package kiterr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCorruptMetadata   = errors.New("corrupt metadata")
	ErrNothingToGenerate = errors.New("nothing to generate")
	ErrWrite             = errors.New("write error")
)

// FileError pins a failure to the source or output file it concerns.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above. A non-empty path wraps the result in a FileError.
func Wrap(marker error, path, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	var wrapped error
	switch {
	case marker != nil && err != nil:
		wrapped = fmt.Errorf("%w: %s: %w", marker, detail, unwrapSamePath(path, err))
	case marker != nil:
		wrapped = fmt.Errorf("%w: %s", marker, detail)
	case err != nil:
		wrapped = fmt.Errorf("%s: %w", detail, unwrapSamePath(path, err))
	default:
		wrapped = errors.New(detail)
	}
	if path = strings.TrimSpace(path); path == "" {
		return wrapped
	}
	return &FileError{Path: path, Err: wrapped}
}

// PathOf returns the file path attached to err, if any.
func PathOf(err error) (string, bool) {
	var fe *FileError
	if errors.As(err, &fe) && fe.Path != "" {
		return fe.Path, true
	}
	return "", false
}

// Kind returns a short label for the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrUnsupportedFormat.Error()
	case errors.Is(err, ErrCorruptMetadata):
		return ErrCorruptMetadata.Error()
	case errors.Is(err, ErrNothingToGenerate):
		return ErrNothingToGenerate.Error()
	case errors.Is(err, ErrWrite):
		return ErrWrite.Error()
	default:
		return "error"
	}
}

// Cause strips the path prefix so messages can be shown next to the path.
func Cause(err error) string {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// unwrapSamePath drops a nested FileError for the same path so the path is
// printed once.
func unwrapSamePath(path string, err error) error {
	var fe *FileError
	if errors.As(err, &fe) && fe.Path == strings.TrimSpace(path) {
		return fe.Err
	}
	return err
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "kit generation failure"
	}
	return strings.Join(parts, ": ")
}
