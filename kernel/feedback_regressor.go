package kernel

import (
	"math"

	"github.com/hyperifyio/tsetlin/rng"
)

// LossKind selects the loss used to turn a regressor's response error into
// a feedback probability. Formulas follow the original implementation's
// loss_fn module.
type LossKind int8

const (
	LossL1 LossKind = iota
	LossL2
	LossBerHu
	LossConvex
)

// Loss evaluates the chosen loss at x (a response error normalized to
// roughly [-1, 1]); c1 is the berHu knee / convex mixing weight.
func Loss(kind LossKind, x, c1 float64) float64 {
	ax := math.Abs(x)
	switch kind {
	case LossL1:
		return ax
	case LossL2:
		return x * x
	case LossBerHu:
		if ax <= c1 {
			return ax
		}
		return x*x - (c1*c1 + c1)
	case LossConvex:
		return c1*ax + (1-c1)*x*x
	default:
		return ax
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BinomialDraw samples from Binomial(n, p): an exact Bernoulli-trial sum
// for n <= smallNThreshold, and a Box-Muller normal approximation above
// that, both taken from the original implementation's box_muller module.
func BinomialDraw(n int, p float64, frng *rng.FRNG, smallNThreshold int) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	if n <= smallNThreshold {
		hits := 0
		for i := 0; i < n; i++ {
			if float64(frng.Float32()) < p {
				hits++
			}
		}
		return hits
	}
	return binomialNormalApprox(n, p, frng)
}

func binomialNormalApprox(n int, p float64, frng *rng.FRNG) int {
	mean := float64(n) * p
	variance := mean * (1 - p)
	u1 := math.Max(float64(frng.Float32()), 1e-12)
	u2 := float64(frng.Float32())
	n1 := math.Sqrt(-2*math.Log(u1)) * math.Sin(2*math.Pi*u2)
	v := math.Round(clampFloat(mean+math.Sqrt(variance)*n1, 0, float64(n)))
	return int(v)
}

// SampleRegressorFeedback turns a response error (target minus the
// clamped vote sum) into a loss-weighted Type-I/Type-II feedback
// assignment across a binomially-drawn subset of clauses: a positive
// error reinforces a random subset with Type-I, a negative error
// penalizes one with Type-II.
func SampleRegressorFeedback(frng *rng.FRNG, irng *rng.IRNG, responseError int32, fb []int8, numClauses int, threshold int64, lossKind LossKind, c1 float64) {
	for i := range fb {
		fb[i] = int8(FeedbackNone)
	}
	if responseError == 0 || threshold == 0 {
		return
	}
	x := float64(responseError) / float64(threshold)
	p := clampFloat(Loss(lossKind, x, c1), 0, 1)
	k := BinomialDraw(numClauses, p, frng, 1000)
	if k <= 0 {
		return
	}
	kind := FeedbackTypeI
	if responseError < 0 {
		kind = FeedbackTypeII
	}
	for i := 0; i < k; i++ {
		fb[irng.Next(0, int64(numClauses-1))] = int8(kind)
	}
}
