package units

import (
	"context"
	"fmt"
	"sort"

	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

var _ ports.Unit = (*BordaUnit)(nil)

// BordaUnit converts a validated ballot set into Borda Count scores and
// produces the deterministically ordered result.
//
// For every ballot and every candidate position i, the candidate at
// position i earns (N - ballot[i]) points, where N is the candidate
// count. The best rank (1) therefore yields N-1 points and the worst
// rank (N) yields zero. Pairing is strictly positional; scores accumulate
// in a slice parallel to the candidate list, so duplicate candidate names
// never merge.
//
// The final ordering is descending by score with ties broken by ascending
// lexicographic candidate name. The sort is stable, so duplicate-named
// candidates on a full tie retain their header order.
//
// Every input reaching this unit has already been shape-validated; any
// inconsistency found here is reported as an internal error, never as a
// user-facing validation message.
type BordaUnit struct {
	// name is the unique identifier for this unit instance.
	name string
}

// NewBordaUnit creates a BordaUnit with the given name.
// Returns ErrEmptyUnitName if name is empty.
func NewBordaUnit(name string) (*BordaUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	return &BordaUnit{name: name}, nil
}

// Name returns the unique identifier for this unit instance.
func (bdu *BordaUnit) Name() string { return bdu.name }

// Execute reads the candidate list and ballot set from state, tallies
// Borda scores, and stores a Result holding the sorted rankings and the
// ballot count under domain.KeyResult. Run metadata (ID, source path,
// inputs hash, timestamp) is stamped by the processor that owns the run.
func (bdu *BordaUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	candidates, ok := domain.Get(state, domain.KeyCandidates)
	if !ok {
		return state, domain.NewInternalError(bdu.name, ErrMissingCandidates)
	}
	ballots, ok := domain.Get(state, domain.KeyBallots)
	if !ok {
		return state, domain.NewInternalError(bdu.name, ErrMissingBallots)
	}

	rankings, err := Tally(candidates, ballots)
	if err != nil {
		return state, err
	}

	result := &domain.Result{
		Rankings:    rankings,
		BallotCount: len(ballots),
	}
	return domain.With(state, domain.KeyResult, result), nil
}

// Tally accumulates Borda points for every candidate position and returns
// the sorted candidate/score pairs. It returns an internal error when a
// ballot's shape contradicts the candidate list, which cannot happen for
// inputs that passed ballot validation.
func Tally(candidates domain.CandidateList, ballots domain.BallotSet) ([]domain.CandidateScore, error) {
	n := candidates.Count()
	if n == 0 {
		return nil, domain.NewInternalError(bordaOp, fmt.Errorf("empty candidate list"))
	}

	scores := make([]int, n)
	for _, ballot := range ballots {
		if len(ballot) != n {
			return nil, domain.NewInternalError(bordaOp,
				fmt.Errorf("ballot length %d does not match candidate count %d", len(ballot), n))
		}
		for i, rank := range ballot {
			if rank < 1 || rank > n {
				return nil, domain.NewInternalError(bordaOp,
					fmt.Errorf("rank %d outside 1..%d", rank, n))
			}
			scores[i] += n - rank
		}
	}

	rankings := make([]domain.CandidateScore, n)
	for i, name := range candidates {
		rankings[i] = domain.CandidateScore{Candidate: name, Score: scores[i]}
	}

	// Primary sort: descending score. Secondary sort: ascending name.
	// Stable so equal (name, score) pairs keep insertion order.
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Score != rankings[j].Score {
			return rankings[i].Score > rankings[j].Score
		}
		return rankings[i].Candidate < rankings[j].Candidate
	})

	return rankings, nil
}

const bordaOp = "borda tally"

// Validate checks if the unit is properly configured and ready for
// execution.
func (bdu *BordaUnit) Validate() error {
	if bdu.name == "" {
		return ErrEmptyUnitName
	}
	return nil
}
