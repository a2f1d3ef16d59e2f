package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetown/votecount/internal/domain"
)

// TestParseBallots verifies the per-line validation order and the 1-based
// file line numbering of every diagnostic: the header occupies file line
// 1, so ballot line i (0-based) reports as line i+2.
func TestParseBallots(t *testing.T) {
	abc := domain.CandidateList{"A", "B", "C"}
	ab := domain.CandidateList{"A", "B"}

	tests := []struct {
		name        string
		candidates  domain.CandidateList
		lines       []string
		wantBallots domain.BallotSet
		wantKind    domain.ErrorKind
		wantLine    int
	}{
		{
			name:       "two valid ballots",
			candidates: abc,
			lines:      []string{"1;2;3", "3;2;1"},
			wantBallots: domain.BallotSet{
				{1, 2, 3},
				{3, 2, 1},
			},
		},
		{
			name:        "single candidate single ballot",
			candidates:  domain.CandidateList{"Alice"},
			lines:       []string{"1"},
			wantBallots: domain.BallotSet{{1}},
		},
		{
			name:       "no ballot lines",
			candidates: ab,
			lines:      nil,
			wantKind:   domain.KindNoBallots,
		},
		{
			name:       "non-digit token",
			candidates: ab,
			lines:      []string{"1;2", "1;x"},
			wantKind:   domain.KindMalformedBallot,
			wantLine:   3,
		},
		{
			name:       "doubled delimiter yields empty token",
			candidates: ab,
			lines:      []string{"1;;2"},
			wantKind:   domain.KindMalformedBallot,
			wantLine:   2,
		},
		{
			name:       "trailing delimiter yields empty token",
			candidates: ab,
			lines:      []string{"1;2;"},
			wantKind:   domain.KindMalformedBallot,
			wantLine:   2,
		},
		{
			name:       "empty line yields empty token",
			candidates: ab,
			lines:      []string{"1;2", ""},
			wantKind:   domain.KindMalformedBallot,
			wantLine:   3,
		},
		{
			name:       "length mismatch",
			candidates: abc,
			lines:      []string{"1;2"},
			wantKind:   domain.KindBallotLengthMismatch,
			wantLine:   2,
		},
		{
			name:       "repeated rank",
			candidates: ab,
			lines:      []string{"1;1"},
			wantKind:   domain.KindIncompleteRanking,
			wantLine:   2,
		},
		{
			name:       "rank outside range",
			candidates: ab,
			lines:      []string{"0;1"},
			wantKind:   domain.KindIncompleteRanking,
			wantLine:   2,
		},
		{
			name:       "negative rank parses but fails the permutation check",
			candidates: ab,
			lines:      []string{"-1;2"},
			wantKind:   domain.KindIncompleteRanking,
			wantLine:   2,
		},
		{
			name:        "whitespace around tokens is tolerated",
			candidates:  ab,
			lines:       []string{"1; 2"},
			wantBallots: domain.BallotSet{{1, 2}},
		},
		{
			name:       "malformed token reported before length mismatch",
			candidates: abc,
			lines:      []string{"1;x"},
			wantKind:   domain.KindMalformedBallot,
			wantLine:   2,
		},
		{
			name:       "fail fast stops at first bad line",
			candidates: ab,
			lines:      []string{"1;2", "2;1", "1;1", "bad"},
			wantKind:   domain.KindIncompleteRanking,
			wantLine:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ballots, err := ParseBallots(tt.candidates, tt.lines)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				if tt.wantLine > 0 {
					var fe *domain.FormatError
					require.ErrorAs(t, err, &fe)
					assert.Equal(t, tt.wantLine, fe.Line)
				}
				assert.Nil(t, ballots)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBallots, ballots)
		})
	}
}

// TestParseBallots_NonDigitTokenNamed verifies the diagnostic identifies
// the offending token verbatim.
func TestParseBallots_NonDigitTokenNamed(t *testing.T) {
	_, err := ParseBallots(domain.CandidateList{"A", "B"}, []string{"1;x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)
	assert.Contains(t, err.Error(), "line 2")
}

// TestBallotUnit_Execute verifies state plumbing and the internal errors
// raised for a mis-assembled pipeline.
func TestBallotUnit_Execute(t *testing.T) {
	unit, err := NewBallotUnit("ballots")
	require.NoError(t, err)

	state := domain.With(domain.NewState(), domain.KeyCandidates, domain.CandidateList{"A", "B"})
	state = domain.With(state, domain.KeyVoteLines, []string{"2;1"})

	newState, err := unit.Execute(context.Background(), state)
	require.NoError(t, err)

	ballots, ok := domain.Get(newState, domain.KeyBallots)
	require.True(t, ok)
	assert.Equal(t, domain.BallotSet{{2, 1}}, ballots)
}

func TestBallotUnit_Execute_MissingState(t *testing.T) {
	unit, err := NewBallotUnit("ballots")
	require.NoError(t, err)

	_, err = unit.Execute(context.Background(), domain.NewState())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCandidates)

	state := domain.With(domain.NewState(), domain.KeyCandidates, domain.CandidateList{"A"})
	_, err = unit.Execute(context.Background(), state)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingVoteLines)
}

func TestNewBallotUnit_EmptyName(t *testing.T) {
	_, err := NewBallotUnit("")
	assert.ErrorIs(t, err, ErrEmptyUnitName)
}
