package kernel

import (
	"testing"

	"github.com/hyperifyio/tsetlin/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleClassifierFeedback_NegLabelNeverEqualsTrueLabel(t *testing.T) {
	frng := rng.NewFRNG(1)
	irng := rng.NewIRNG(1)
	votes := []int64{0, 0, 0, 0}
	clauseOutput := make([]byte, 4*4)
	fb := make([]int8, 4*4)
	for i := 0; i < 200; i++ {
		neg := SampleClassifierFeedback(frng, irng, votes, clauseOutput, fb, 1, 4, 4, 10)
		assert.NotEqual(t, 1, neg)
		require.GreaterOrEqual(t, neg, 0)
		require.Less(t, neg, 4)
	}
}

func TestSampleClassifierFeedback_SaturatedVoteSuppressesPositiveFeedback(t *testing.T) {
	frng := rng.NewFRNG(2)
	irng := rng.NewIRNG(2)
	threshold := int64(10)
	votes := []int64{threshold, -threshold}
	clauseOutput := make([]byte, 8)
	fb := make([]int8, 8)
	SampleClassifierFeedback(frng, irng, votes, clauseOutput, fb, 0, 2, 4, threshold)
	for j := 0; j < 4; j++ {
		assert.Equal(t, int8(FeedbackNone), fb[j], "clause %d of saturated positive label should get no feedback", j)
	}
}

func TestSampleClassifierFeedback_ClearsStaleFeedbackFromPriorCall(t *testing.T) {
	// Only two labels: every clause belongs to the true label's range or
	// the (only possible) negative label's range. The votes put both
	// feedback probabilities at 1 (true label at -threshold, negative label
	// at +threshold), so every clause in both ranges must receive Type-I or
	// Type-II feedback and none may be left as FeedbackNone.
	frng := rng.NewFRNG(4)
	irng := rng.NewIRNG(4)
	threshold := int64(10)
	votes := []int64{-threshold, threshold}
	clauseOutput := make([]byte, 8)
	fb := make([]int8, 8)
	for i := range fb {
		fb[i] = int8(FeedbackTypeI)
	}

	SampleClassifierFeedback(frng, irng, votes, clauseOutput, fb, 0, 2, 4, threshold)

	for i, v := range fb {
		assert.NotEqual(t, int8(FeedbackNone), v, "clause %d unexpectedly cleared", i)
	}

	// Now poison a slice that belongs to neither range by shrinking the
	// label count the caller claims versus the buffer it reuses: a wider
	// buffer than 2*clausesPerLabel simulates scratch left over from a
	// previous call with more labels.
	wideFB := make([]int8, 16)
	for i := range wideFB {
		wideFB[i] = int8(FeedbackTypeII)
	}
	SampleClassifierFeedback(frng, irng, votes, clauseOutput, wideFB, 0, 2, 4, threshold)
	for i := 8; i < 16; i++ {
		assert.Equal(t, int8(FeedbackTypeII), wideFB[i], "function must not touch memory beyond numLabels*clausesPerLabel")
	}
}

func TestApplyRange_FiresDeterministicallyAtExtremeProbability(t *testing.T) {
	frng := rng.NewFRNG(3)
	clauseOutput := make([]byte, 4)
	fb := make([]int8, 4)
	applyRange(frng, clauseOutput, fb, 0, 4, 1.0, FeedbackTypeI, FeedbackTypeII)
	assert.Equal(t, int8(FeedbackTypeI), fb[0])
	assert.Equal(t, int8(FeedbackTypeII), fb[1])

	applyRange(frng, clauseOutput, fb, 0, 4, 0.0, FeedbackTypeI, FeedbackTypeII)
	for _, v := range fb {
		assert.Equal(t, int8(FeedbackNone), v)
	}
}
