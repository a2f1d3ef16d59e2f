package units

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

var _ ports.Unit = (*BallotUnit)(nil)

// BallotUnit validates the ballot lines that follow the header and
// produces the ordered ballot set. Validation fails fast: the first
// offending line aborts the whole load, and every line-level error names
// the 1-based file line number of that line (index within the ballot
// lines plus two, since the header occupies file line 1).
//
// Per-line checks run in a fixed order:
//  1. every delimiter-separated token parses as a base-10 integer, which
//     implicitly rejects stray delimiters and fully empty lines;
//  2. the vote count equals the candidate count;
//  3. every rank from 1 through N is present, which together with the
//     length check guarantees the line is a permutation of 1..N.
//
// Concurrency: the unit is stateless and safe for concurrent execution.
type BallotUnit struct {
	// name is the unique identifier for this unit instance.
	name string
}

// NewBallotUnit creates a BallotUnit with the given name.
// Returns ErrEmptyUnitName if name is empty.
func NewBallotUnit(name string) (*BallotUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	return &BallotUnit{name: name}, nil
}

// Name returns the unique identifier for this unit instance.
func (bu *BallotUnit) Name() string { return bu.name }

// Execute reads the candidate list and raw ballot lines from state,
// validates every line, and stores the resulting ballot set under
// domain.KeyBallots. Missing state values indicate a mis-assembled
// pipeline and are reported as internal errors.
func (bu *BallotUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	candidates, ok := domain.Get(state, domain.KeyCandidates)
	if !ok {
		return state, domain.NewInternalError(bu.name, ErrMissingCandidates)
	}
	lines, ok := domain.Get(state, domain.KeyVoteLines)
	if !ok {
		return state, domain.NewInternalError(bu.name, ErrMissingVoteLines)
	}

	ballots, err := ParseBallots(candidates, lines)
	if err != nil {
		return state, err
	}

	return domain.With(state, domain.KeyBallots, ballots), nil
}

// ParseBallots validates every ballot line against the candidate list and
// returns the ballots in original line order. It fails with NoBallots
// when no lines follow the header, and otherwise with the first
// MalformedBallot, BallotLengthMismatch, or IncompleteRanking violation
// encountered.
func ParseBallots(candidates domain.CandidateList, lines []string) (domain.BallotSet, error) {
	if len(lines) == 0 {
		return nil, domain.NewFormatError(domain.KindNoBallots,
			"the file contains no voting lines, only a header")
	}

	n := candidates.Count()
	ballots := make(domain.BallotSet, 0, len(lines))
	for idx, line := range lines {
		// User-facing numbering: +2 accounts for the header occupying
		// file line 1 and idx being 0-based.
		fileLine := idx + 2

		ranks, badToken, ok := parseRankLine(line)
		if !ok {
			return nil, domain.NewLineError(domain.KindMalformedBallot, fileLine,
				fmt.Sprintf("vote line contains a token that is not an integer: %q", badToken))
		}

		if len(ranks) != n {
			return nil, domain.NewLineError(domain.KindBallotLengthMismatch, fileLine,
				fmt.Sprintf("vote line has %d votes but the header names %d candidates", len(ranks), n))
		}

		// Every rank 1..N must appear. Combined with the length check this
		// guarantees the line is a permutation: a length-N sequence that
		// contains each of 1..N cannot also contain a repeat.
		for want := 1; want <= n; want++ {
			if !containsRank(ranks, want) {
				return nil, domain.NewLineError(domain.KindIncompleteRanking, fileLine,
					fmt.Sprintf("vote line does not rank candidate number %d", want))
			}
		}

		ballots = append(ballots, ranks)
	}

	return ballots, nil
}

// parseRankLine splits a ballot line on the delimiter and parses each
// token as a base-10 integer. Tokens may carry surrounding whitespace,
// which is ignored. On failure it returns the offending token verbatim.
func parseRankLine(line string) (domain.Ballot, string, bool) {
	tokens := strings.Split(line, Delimiter)
	ranks := make(domain.Ballot, 0, len(tokens))
	for _, token := range tokens {
		value, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, token, false
		}
		ranks = append(ranks, value)
	}
	return ranks, "", true
}

func containsRank(ranks domain.Ballot, want int) bool {
	for _, r := range ranks {
		if r == want {
			return true
		}
	}
	return false
}

// Validate checks if the unit is properly configured and ready for
// execution.
func (bu *BallotUnit) Validate() error {
	if bu.name == "" {
		return ErrEmptyUnitName
	}
	return nil
}
