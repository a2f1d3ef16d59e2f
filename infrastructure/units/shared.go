// Package units provides the pipeline stages that turn raw vote file
// lines into a ranked Borda Count result: header validation, ballot
// validation, and tallying. Each stage implements the ports.Unit
// interface and is stateless across file loads.
package units

import "errors"

// Delimiter separates candidate names in the header line and rank values
// in ballot lines. The semicolon-delimited convention is the only file
// format the pipeline accepts.
const Delimiter = ";"

// Common errors returned by pipeline units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrMissingHeader indicates the header line was not present in state.
	// Seeing it means a pipeline was assembled without a line reader.
	ErrMissingHeader = errors.New("header line not present in state")

	// ErrMissingVoteLines indicates the ballot lines were not present in state.
	ErrMissingVoteLines = errors.New("vote lines not present in state")

	// ErrMissingCandidates indicates the candidate list was not present in
	// state, meaning the header validator did not run before the ballot
	// validator or tally stage.
	ErrMissingCandidates = errors.New("candidate list not present in state")

	// ErrMissingBallots indicates no validated ballots were present in
	// state when the tally stage ran.
	ErrMissingBallots = errors.New("ballots not present in state")
)
