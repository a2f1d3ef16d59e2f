package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the vote pipeline can report.
// Kinds are part of the display contract: the shell renders errors as
// "Error: <ErrorKind>. Error details: <message>".
type ErrorKind string

const (
	// KindNotFound indicates the vote file path does not exist.
	KindNotFound ErrorKind = "NotFound"

	// KindPermissionDenied indicates the process lacks read access to the
	// vote file.
	KindPermissionDenied ErrorKind = "PermissionDenied"

	// KindIOFailure indicates any other I/O fault while reading the file.
	KindIOFailure ErrorKind = "IOFailure"

	// KindMalformedHeader indicates the candidate header line is empty or
	// contains a leading, trailing, or doubled delimiter.
	KindMalformedHeader ErrorKind = "MalformedHeader"

	// KindNoBallots indicates the file contains a header but no ballot
	// lines.
	KindNoBallots ErrorKind = "NoBallots"

	// KindMalformedBallot indicates a ballot line contains a token that is
	// not a base-10 integer, which also covers stray delimiters and empty
	// lines.
	KindMalformedBallot ErrorKind = "MalformedBallot"

	// KindBallotLengthMismatch indicates a ballot line's vote count does
	// not match the header's candidate count.
	KindBallotLengthMismatch ErrorKind = "BallotLengthMismatch"

	// KindIncompleteRanking indicates a ballot line does not rank every
	// candidate exactly once.
	KindIncompleteRanking ErrorKind = "IncompleteRanking"

	// KindInternalError indicates a pipeline invariant was violated after
	// validation. It should never surface for well-formed pipelines.
	KindInternalError ErrorKind = "InternalError"
)

// LoadError reports a failure to open or read a vote file. It always
// carries the attempted path.
type LoadError struct {
	// Kind is one of KindNotFound, KindPermissionDenied, or KindIOFailure.
	Kind ErrorKind

	// Path is the vote file path that could not be loaded.
	Path string

	// Err is the underlying cause from the operating system, if any.
	Err error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("the file %s could not be found", e.Path)
	case KindPermissionDenied:
		return fmt.Sprintf("you don't have permission to access the file %s", e.Path)
	default:
		return fmt.Sprintf("an IO error occurred with file %s: %v", e.Path, e.Err)
	}
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError creates a LoadError with the given kind, path, and cause.
func NewLoadError(kind ErrorKind, path string, err error) *LoadError {
	return &LoadError{Kind: kind, Path: path, Err: err}
}

// FormatError reports a validation failure in the contents of a vote file.
// Line is the 1-based file line number of the offending line, or zero for
// failures not tied to a single line (malformed header, no ballots).
type FormatError struct {
	// Kind identifies which validation rule was violated.
	Kind ErrorKind

	// Line is the 1-based line number within the file, zero when the
	// failure is not line-specific.
	Line int

	// Detail is the human-readable description shown to the user.
	Detail string
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Detail)
	}
	return e.Detail
}

// NewFormatError creates a FormatError for a file-level failure.
func NewFormatError(kind ErrorKind, detail string) *FormatError {
	return &FormatError{Kind: kind, Detail: detail}
}

// NewLineError creates a FormatError pinned to a 1-based file line number.
func NewLineError(kind ErrorKind, line int, detail string) *FormatError {
	return &FormatError{Kind: kind, Line: line, Detail: detail}
}

// InternalError reports a pipeline invariant violation detected after
// validation. Inputs that reach the tally stage have already been shape
// checked, so this error indicates a bug rather than bad user input.
type InternalError struct {
	// Op names the operation that detected the inconsistency.
	Op string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for InternalError.
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal inconsistency in %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("internal inconsistency in %s", e.Op)
}

// Unwrap returns the underlying error.
func (e *InternalError) Unwrap() error { return e.Err }

// NewInternalError creates an InternalError for the given operation.
func NewInternalError(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

// KindOf extracts the ErrorKind from any error produced by the pipeline.
// Errors from outside the taxonomy map to KindInternalError so the shell
// can always render something meaningful.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternalError
}

// DisplayError renders any pipeline error using the shell's error display
// contract: "Error: <ErrorKind>. Error details: <message>".
func DisplayError(err error) string {
	return fmt.Sprintf("Error: %s. Error details: %s", KindOf(err), err.Error())
}
