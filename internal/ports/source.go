package ports

import "context"

// BallotSource supplies the raw lines of a vote file: the trimmed header
// line and the trimmed ballot lines that follow it.
// Implementations translate storage failures into the domain error
// taxonomy (NotFound, PermissionDenied, IOFailure), always carrying the
// attempted path, and never return partial results on failure.
type BallotSource interface {
	// Load opens the vote file at path, reads the first line as the
	// header, and reads all remaining lines in order. Every returned line
	// is stripped of leading and trailing whitespace, including newline
	// and carriage-return characters. The underlying handle is released
	// before Load returns, on every exit path.
	Load(ctx context.Context, path string) (header string, lines []string, err error)
}
