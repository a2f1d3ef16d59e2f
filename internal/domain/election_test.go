package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Display(t *testing.T) {
	result := Result{
		Rankings: []CandidateScore{
			{Candidate: "Carol", Score: 5},
			{Candidate: "Alice", Score: 2},
			{Candidate: "Bob", Score: 2},
		},
	}
	assert.Equal(t, "Carol: 5\nAlice: 2\nBob: 2\n", result.Display())
}

func TestResult_Display_Empty(t *testing.T) {
	assert.Equal(t, "", Result{}.Display())
}

func TestCandidateList_Count(t *testing.T) {
	assert.Equal(t, 0, CandidateList(nil).Count())
	assert.Equal(t, 3, CandidateList{"A", "B", "C"}.Count())
}
