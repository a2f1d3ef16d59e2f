package domain

import (
	"fmt"
	"strings"
	"time"
)

// CandidateList is the ordered sequence of candidate display names parsed
// from a vote file header. Position is significant: index i corresponds to
// position i in every ballot's rank vector. Names are kept verbatim,
// including any surrounding whitespace, and duplicates are tolerated; all
// downstream accounting is positional, never name-keyed.
type CandidateList []string

// Count returns the number of candidate positions.
func (c CandidateList) Count() int { return len(c) }

// Ballot is one voter's complete ranking, expressed as a permutation of
// 1..N where N is the candidate count. Rank 1 is the most preferred.
// The value at index i is the rank the voter assigned to the candidate at
// position i of the CandidateList.
type Ballot []int

// BallotSet is the ordered sequence of validated ballots from one file,
// in original line order.
type BallotSet []Ballot

// CandidateScore is one entry of a ranked result: a candidate name paired
// with its accumulated Borda points.
type CandidateScore struct {
	// Candidate is the display name exactly as it appeared in the header.
	Candidate string `json:"candidate"`

	// Score is the total Borda points awarded across all ballots.
	// Always non-negative.
	Score int `json:"score"`
}

// Result is the final outcome of one vote file load. Rankings hold one
// entry per candidate position, sorted by descending score and, on equal
// scores, ascending candidate name. Duplicate-named candidates keep their
// header order on a full tie.
type Result struct {
	// ID uniquely identifies this computation run (a UUID).
	ID string `json:"id"`

	// SourcePath is the path of the vote file that produced this result.
	SourcePath string `json:"source_path"`

	// Rankings is the ordered candidate/score sequence.
	Rankings []CandidateScore `json:"rankings"`

	// BallotCount is the number of ballots tallied.
	BallotCount int `json:"ballot_count"`

	// InputsHash is the hex-encoded SHA-256 of the loaded header and
	// ballot lines, usable for caching and verification.
	InputsHash string `json:"inputs_hash"`

	// ComputedAt records when the tally was produced.
	ComputedAt time.Time `json:"computed_at"`
}

// Display renders the rankings in result order, one "<candidate>: <score>"
// line per entry. This is the exact text the presentation shell shows for
// a successful load.
func (r Result) Display() string {
	var b strings.Builder
	for _, cs := range r.Rankings {
		fmt.Fprintf(&b, "%s: %d\n", cs.Candidate, cs.Score)
	}
	return b.String()
}
