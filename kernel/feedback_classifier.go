package kernel

import "github.com/hyperifyio/tsetlin/rng"

// applyRange samples feedback for one label's clause bank. Each clause
// independently fires with probability p; when it fires, even-indexed
// clauses (the bank's positive polarity half) receive evenKind and
// odd-indexed clauses receive oddKind. The caller picks (p, evenKind,
// oddKind) so the positive-label and negative-label ranges share this one
// code path instead of two near-duplicate ones that only differ in which
// feedback type lands on which parity.
func applyRange(frng *rng.FRNG, clauseOutput []byte, fb []int8, base, clausesPerLabel int, p float64, evenKind, oddKind FeedbackKind) {
	for j := 0; j < clausesPerLabel; j++ {
		c := base + j
		if float64(frng.Float32()) > p {
			fb[c] = int8(FeedbackNone)
			continue
		}
		_ = clauseOutput // clause output is consulted by the update kernel, not the sampler
		if j%2 == 0 {
			fb[c] = int8(evenKind)
		} else {
			fb[c] = int8(oddKind)
		}
	}
}

// SampleClassifierFeedback draws one negative label uniformly from the
// labels other than trueLabel, then samples Type-I/Type-II feedback for
// both the true label's clause bank (reinforcing) and the negative label's
// clause bank (penalizing), writing one FeedbackKind per clause into fb.
// It returns the sampled negative label.
func SampleClassifierFeedback(frng *rng.FRNG, irng *rng.IRNG, votes []int64, clauseOutput []byte, fb []int8, trueLabel, numLabels, clausesPerLabel int, threshold int64) int {
	total := numLabels * clausesPerLabel
	for i := 0; i < total; i++ {
		fb[i] = int8(FeedbackNone)
	}
	negLabel := trueLabel
	if numLabels > 1 {
		for negLabel == trueLabel {
			negLabel = int(irng.Next(0, int64(numLabels-1)))
		}
	}

	t2 := float64(2 * threshold)
	pPos := (float64(threshold) - float64(votes[trueLabel])) / t2
	pNeg := (float64(threshold) + float64(votes[negLabel])) / t2

	posBase := trueLabel * clausesPerLabel
	negBase := negLabel * clausesPerLabel
	applyRange(frng, clauseOutput, fb, posBase, clausesPerLabel, pPos, FeedbackTypeI, FeedbackTypeII)
	if numLabels > 1 {
		applyRange(frng, clauseOutput, fb, negBase, clausesPerLabel, pNeg, FeedbackTypeII, FeedbackTypeI)
	}
	return negLabel
}
