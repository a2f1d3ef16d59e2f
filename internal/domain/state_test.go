package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_GetMissingKey(t *testing.T) {
	state := NewState()
	_, ok := Get(state, KeyHeader)
	assert.False(t, ok)
}

func TestState_WithIsCopyOnWrite(t *testing.T) {
	state := NewState()
	updated := With(state, KeyHeader, "Alice;Bob")

	_, ok := Get(state, KeyHeader)
	assert.False(t, ok, "original state must not see the update")

	header, ok := Get(updated, KeyHeader)
	require.True(t, ok)
	assert.Equal(t, "Alice;Bob", header)
}

func TestState_SliceValuesAreDeepCopied(t *testing.T) {
	lines := []string{"1;2", "2;1"}
	state := With(NewState(), KeyVoteLines, lines)

	// Mutating the caller's slice must not leak into the state.
	lines[0] = "mutated"
	got, ok := Get(state, KeyVoteLines)
	require.True(t, ok)
	assert.Equal(t, []string{"1;2", "2;1"}, got)

	// Mutating the retrieved copy must not affect subsequent reads.
	got[1] = "mutated"
	again, ok := Get(state, KeyVoteLines)
	require.True(t, ok)
	assert.Equal(t, []string{"1;2", "2;1"}, again)
}

func TestState_BallotSetDeepCopy(t *testing.T) {
	ballots := BallotSet{{1, 2}, {2, 1}}
	state := With(NewState(), KeyBallots, ballots)

	ballots[0][0] = 99
	got, ok := Get(state, KeyBallots)
	require.True(t, ok)
	assert.Equal(t, BallotSet{{1, 2}, {2, 1}}, got)
}

func TestState_ResultPointerDeepCopy(t *testing.T) {
	result := &Result{BallotCount: 2}
	state := With(NewState(), KeyResult, result)

	result.BallotCount = 7
	got, ok := Get(state, KeyResult)
	require.True(t, ok)
	assert.Equal(t, 2, got.BallotCount)
}

func TestState_Keys(t *testing.T) {
	state := With(NewState(), KeyHeader, "Alice")
	state = With(state, KeySourcePath, "votes.txt")

	keys := state.Keys()
	assert.ElementsMatch(t, []string{"header", "source_path"}, keys)
}

func TestNewKey(t *testing.T) {
	key := NewKey[int]("custom")
	state := With(NewState(), key, 42)

	v, ok := Get(state, key)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}
