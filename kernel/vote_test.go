package kernel

import (
	"testing"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/stretchr/testify/assert"
)

func TestClassifierVotes_ClampsToThreshold(t *testing.T) {
	s := automaton.New(8, 2, 10, automaton.CountingI32, false, 0)
	clauseOutput := []byte{1, 1, 1, 1, 1, 1, 1, 1}
	votes := ClassifierVotes(s, clauseOutput, 2, 4, 2)
	for _, v := range votes {
		assert.LessOrEqual(t, v, int64(2))
		assert.GreaterOrEqual(t, v, int64(-2))
	}
}

func TestClassifierVotes_EvenClausesPositiveOddNegative(t *testing.T) {
	s := automaton.New(4, 2, 10, automaton.CountingI32, false, 0)
	clauseOutput := []byte{1, 0, 0, 0} // only clause 0 (even -> positive) fires
	votes := ClassifierVotes(s, clauseOutput, 1, 4, 100)
	assert.Equal(t, int64(1), votes[0])

	clauseOutput2 := []byte{0, 1, 0, 0} // only clause 1 (odd -> negative) fires
	votes2 := ClassifierVotes(s, clauseOutput2, 1, 4, 100)
	assert.Equal(t, int64(-1), votes2[0])
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, Argmax([]int64{1, 5, 9, 3}))
	assert.Equal(t, 0, Argmax([]int64{5, 5, 5}))
}

func TestRegressorVote_ClampsToRange(t *testing.T) {
	s := automaton.New(2, 2, 10, automaton.CountingI32, false, 0)
	clauseOutput := []byte{1, 1}
	v := RegressorVote(s, clauseOutput, 2, 1)
	assert.Equal(t, int64(1), v)
}
