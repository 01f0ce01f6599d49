// Package tsetlin implements Tsetlin Machine classifiers and regressors:
// conjunctive-clause learning automata trained by Type-I/Type-II feedback,
// exposed as scikit-learn-shaped fit/partial_fit/predict/evaluate
// façades over the automaton, kernel, cointosser, and rng packages.
package tsetlin

import (
	"sync"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/config"
	"github.com/hyperifyio/tsetlin/internal/errors"
	"github.com/hyperifyio/tsetlin/internal/log"
	"github.com/hyperifyio/tsetlin/kernel"
	"github.com/hyperifyio/tsetlin/rng"
)

// Classifier is a multi-class Tsetlin Machine: one clause bank per label,
// with votes clamped to [-threshold, threshold] and the predicted label
// the argmax over per-label vote sums.
type Classifier struct {
	mu sync.Mutex

	opt config.Options

	irng *rng.IRNG
	frng *rng.FRNG

	state   *automaton.TAState
	scratch automaton.Scratch

	numLabels       int
	numFeatures     int
	clausesPerLabel int
	numClauses      int
	initialized     bool
}

// NewClassifier validates opt and constructs a Classifier. If
// opt.NumberOfLabels and opt.NumberOfFeatures are both already known
// (non-zero), the automata state is built immediately; otherwise
// construction defers it to the first Fit/PartialFit call, which infers
// the missing dimensions from the training data (section 3: "inferred
// from training data if absent").
func NewClassifier(opt config.Options) (*Classifier, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	seed := uint32(1)
	if opt.RandomState != nil {
		seed = *opt.RandomState
	}
	c := &Classifier{
		opt:             opt,
		irng:            rng.NewIRNG(seed),
		frng:            rng.NewFRNG(seed),
		numLabels:       int(opt.NumberOfLabels),
		numFeatures:     int(opt.NumberOfFeatures),
		clausesPerLabel: int(opt.ClausesPerLabel),
	}
	if c.numLabels > 0 && c.numFeatures > 0 {
		c.build()
		c.state.Init(c.irng)
	}
	return c, nil
}

// build allocates state and scratch for the current numLabels/numFeatures.
func (c *Classifier) build() {
	c.numClauses = c.numLabels * c.clausesPerLabel
	c.state = automaton.New(2*c.numClauses, c.numFeatures, c.opt.NumberOfStates, c.opt.CountingType, c.opt.Weighted, c.opt.MaxWeight)
	c.scratch.EnsureClauses(c.numClauses)
	c.scratch.EnsureLabels(c.numLabels)
	c.initialized = true
}

func (c *Classifier) checkRow(x []byte) error {
	if len(x) != c.numFeatures {
		return errors.New(errors.ValueError, "expected %d features, got %d", c.numFeatures, len(x))
	}
	return nil
}

// inferLabelCount validates y per section 7's BadLabels rule (non-empty,
// zero-based, contiguous, more than one distinct value) and returns the
// inferred label count max(y)+1.
func inferLabelCount(y []int) (int, error) {
	if len(y) == 0 {
		return 0, errors.New(errors.BadLabels, "cannot infer number_of_labels from an empty label set")
	}
	seen := make(map[int]bool)
	maxLabel := -1
	for _, l := range y {
		if l < 0 {
			return 0, errors.New(errors.BadLabels, "labels must be >= 0, got %d", l)
		}
		seen[l] = true
		if l > maxLabel {
			maxLabel = l
		}
	}
	if !seen[0] {
		return 0, errors.New(errors.BadLabels, "labels must include 0, min(y) != 0")
	}
	for l := 0; l <= maxLabel; l++ {
		if !seen[l] {
			return 0, errors.New(errors.BadLabels, "labels must be a contiguous set starting at 0, missing %d", l)
		}
	}
	if len(seen) < 2 {
		return 0, errors.New(errors.BadLabels, "at least two distinct labels are required, got only label %d", maxLabel)
	}
	return maxLabel + 1, nil
}

// ensureInitialized builds the automata state from X/y on the first
// Fit/PartialFit call when NumberOfFeatures and/or NumberOfLabels were left
// at 0 in Options, inferring whichever dimensions are missing.
func (c *Classifier) ensureInitialized(X [][]byte, y []int) error {
	if c.initialized {
		return nil
	}
	if len(X) == 0 {
		return errors.New(errors.ValueError, "cannot infer feature count from an empty training set")
	}
	if c.numFeatures == 0 {
		c.numFeatures = len(X[0])
	}
	if c.numLabels == 0 {
		n, err := inferLabelCount(y)
		if err != nil {
			return err
		}
		c.numLabels = n
	}
	c.build()
	c.state.Init(c.irng)
	return nil
}

// trainOne runs one training step (clause evaluation, feedback sampling,
// automata update) for a single labeled example.
func (c *Classifier) trainOne(x []byte, label int) {
	out := c.scratch.ClauseOutput
	for cl := 0; cl < c.numClauses; cl++ {
		out[cl] = kernel.ClauseOutputByteTiled(c.state, x, cl, c.opt.ClauseOutputTileSize)
	}
	votes := kernel.ClassifierVotes(c.state, out, c.numLabels, c.clausesPerLabel, c.opt.Threshold)
	fb := c.scratch.FeedbackToClauses
	kernel.SampleClassifierFeedback(c.frng, c.irng, votes, out, fb, label, c.numLabels, c.clausesPerLabel, c.opt.Threshold)
	kernel.ParallelUpdate(c.state, x, fb, out, c.numClauses, c.opt.NJobs, c.numFeatures, c.opt.Specificity, c.opt.BoostTruePositiveFeedback, c.irng)
}

// PartialFit runs epochs passes of online updates over X/y without
// resetting automata state, the incremental-learning entry point. On the
// first call against a Classifier built with NumberOfLabels/NumberOfFeatures
// left at 0, it infers the missing dimensions from X/y before training.
func (c *Classifier) PartialFit(X [][]byte, y []int, epochs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureInitialized(X, y); err != nil {
		return err
	}
	for _, x := range X {
		if err := c.checkRow(x); err != nil {
			return err
		}
	}
	for _, label := range y {
		if label < 0 || label >= c.numLabels {
			return errors.New(errors.BadLabels, "label %d out of range [0, %d)", label, c.numLabels)
		}
	}
	for epoch := 0; epoch < epochs; epoch++ {
		perm := c.irng.Permutation(len(X))
		for _, i := range perm {
			c.trainOne(X[i], y[i])
		}
		log.Debugf("classifier epoch %d/%d complete", epoch+1, epochs)
	}
	return nil
}

// Fit resets automata state and trains from scratch for epochs passes. If
// the Classifier has not yet been initialized (dimensions still pending
// inference), Fit behaves like a first PartialFit call instead of
// re-initializing state that does not exist yet.
func (c *Classifier) Fit(X [][]byte, y []int, epochs int) error {
	c.mu.Lock()
	if c.initialized {
		c.state.Init(c.irng)
	}
	c.mu.Unlock()
	return c.PartialFit(X, y, epochs)
}

// PredictRaw returns the clamped per-label vote sums for x, without
// collapsing to a single predicted label.
func (c *Classifier) PredictRaw(x []byte) ([]int64, error) {
	if err := c.checkRow(x); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, c.numClauses)
	kernel.ParallelClauseOutput(c.state, c.numClauses, c.opt.NJobs, out, func(cl int) byte {
		return kernel.ClauseOutputBytePrunedTiled(c.state, x, cl, c.opt.ClauseOutputTileSize)
	})
	return kernel.ClassifierVotes(c.state, out, c.numLabels, c.clausesPerLabel, c.opt.Threshold), nil
}

// Predict returns the argmax label for x.
func (c *Classifier) Predict(x []byte) (int, error) {
	votes, err := c.PredictRaw(x)
	if err != nil {
		return 0, err
	}
	return kernel.Argmax(votes), nil
}

// Evaluate returns the fraction of Xs correctly classified against ys.
func (c *Classifier) Evaluate(Xs [][]byte, ys []int) (float64, error) {
	if len(Xs) != len(ys) {
		return 0, errors.New(errors.ValueError, "Xs and ys must have equal length, got %d and %d", len(Xs), len(ys))
	}
	if len(Xs) == 0 {
		return 0, errors.New(errors.ValueError, "cannot evaluate an empty dataset")
	}
	correct := 0
	for i, x := range Xs {
		pred, err := c.Predict(x)
		if err != nil {
			return 0, err
		}
		if pred == ys[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(Xs)), nil
}
