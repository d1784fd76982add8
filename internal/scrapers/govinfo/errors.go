package govinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument means a fetched document did not have the expected shape.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrNoSessionFound means the sitemap index did not reference any session.
	ErrNoSessionFound = errors.New("no session found")
	// ErrNilPattern means FilterByAction was called without a pattern.
	ErrNilPattern = errors.New("nil action pattern")
)

// FetchError is a transport failure (including non-2xx responses) for a path.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError means a composite bill identifier could not be split.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse bill id %q: %s", e.Input, e.Reason)
}

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedDocument, path, fmt.Sprintf(format, args...))
}
