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

// Regressor is a Tsetlin Machine extended to continuous targets: a single
// clause bank whose vote sum, clamped to [0, threshold], is the predicted
// value. This is an extension beyond the original classifier-shaped
// accuracy definition; Evaluate here reports 1 - normalized MAE rather
// than a classification accuracy, since "fraction exactly correct" is not
// a meaningful metric for a continuous target.
type Regressor struct {
	mu sync.Mutex

	opt config.Options

	irng *rng.IRNG
	frng *rng.FRNG

	state   *automaton.TAState
	scratch automaton.Scratch

	numFeatures int
	numClauses  int
	initialized bool
}

// NewRegressor validates opt and constructs a Regressor. The label count
// carried in opt is ignored; a Regressor always trains a single clause bank
// of ClausesPerLabel clauses. If opt.NumberOfFeatures is 0, construction
// defers building automata state to the first Fit/PartialFit call, which
// infers the feature count from the training data (section 3: "inferred
// from training data if absent").
func NewRegressor(opt config.Options) (*Regressor, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	seed := uint32(1)
	if opt.RandomState != nil {
		seed = *opt.RandomState
	}
	r := &Regressor{
		opt:         opt,
		irng:        rng.NewIRNG(seed),
		frng:        rng.NewFRNG(seed),
		numFeatures: int(opt.NumberOfFeatures),
		numClauses:  int(opt.ClausesPerLabel),
	}
	if r.numFeatures > 0 {
		r.build()
		r.state.Init(r.irng)
	}
	return r, nil
}

// build allocates state and scratch for the current numFeatures.
func (r *Regressor) build() {
	r.state = automaton.New(2*r.numClauses, r.numFeatures, r.opt.NumberOfStates, r.opt.CountingType, r.opt.Weighted, r.opt.MaxWeight)
	r.scratch.EnsureClauses(r.numClauses)
	r.initialized = true
}

func (r *Regressor) checkRow(x []byte) error {
	if len(x) != r.numFeatures {
		return errors.New(errors.ValueError, "expected %d features, got %d", r.numFeatures, len(x))
	}
	return nil
}

// ensureInitialized builds automata state from X on the first
// Fit/PartialFit call when NumberOfFeatures was left at 0 in Options.
func (r *Regressor) ensureInitialized(X [][]byte) error {
	if r.initialized {
		return nil
	}
	if len(X) == 0 {
		return errors.New(errors.ValueError, "cannot infer feature count from an empty training set")
	}
	r.numFeatures = len(X[0])
	r.build()
	r.state.Init(r.irng)
	return nil
}

func (r *Regressor) trainOne(x []byte, target int32) {
	out := r.scratch.ClauseOutput
	for c := 0; c < r.numClauses; c++ {
		out[c] = kernel.ClauseOutputByteTiled(r.state, x, c, r.opt.ClauseOutputTileSize)
	}
	vote := kernel.RegressorVote(r.state, out, r.numClauses, r.opt.Threshold)
	responseError := target - int32(vote)
	fb := r.scratch.FeedbackToClauses
	kernel.SampleRegressorFeedback(r.frng, r.irng, responseError, fb, r.numClauses, r.opt.Threshold, r.opt.LossKind, r.opt.LossC1)
	kernel.ParallelUpdate(r.state, x, fb, out, r.numClauses, r.opt.NJobs, r.numFeatures, r.opt.Specificity, r.opt.BoostTruePositiveFeedback, r.irng)
}

// PartialFit runs epochs passes of online updates over X/y without
// resetting automata state.
func (r *Regressor) PartialFit(X [][]byte, y []int32, epochs int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureInitialized(X); err != nil {
		return err
	}
	for _, x := range X {
		if err := r.checkRow(x); err != nil {
			return err
		}
	}
	if len(X) != len(y) {
		return errors.New(errors.ValueError, "X and y must have equal length, got %d and %d", len(X), len(y))
	}
	for epoch := 0; epoch < epochs; epoch++ {
		perm := r.irng.Permutation(len(X))
		for _, i := range perm {
			r.trainOne(X[i], y[i])
		}
		log.Debugf("regressor epoch %d/%d complete", epoch+1, epochs)
	}
	return nil
}

// Fit resets automata state and trains from scratch for epochs passes. If
// the Regressor has not yet been initialized (feature count still pending
// inference), Fit behaves like a first PartialFit call instead of
// re-initializing state that does not exist yet.
func (r *Regressor) Fit(X [][]byte, y []int32, epochs int) error {
	r.mu.Lock()
	if r.initialized {
		r.state.Init(r.irng)
	}
	r.mu.Unlock()
	return r.PartialFit(X, y, epochs)
}

// PredictRaw returns the clamped vote sum for x without further
// interpretation.
func (r *Regressor) PredictRaw(x []byte) (int64, error) {
	if err := r.checkRow(x); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, r.numClauses)
	kernel.ParallelClauseOutput(r.state, r.numClauses, r.opt.NJobs, out, func(c int) byte {
		return kernel.ClauseOutputBytePrunedTiled(r.state, x, c, r.opt.ClauseOutputTileSize)
	})
	return kernel.RegressorVote(r.state, out, r.numClauses, r.opt.Threshold), nil
}

// Predict is an alias for PredictRaw, kept distinct from PredictRaw so
// callers of the Classifier/Regressor pair can use the same method name
// regardless of target type.
func (r *Regressor) Predict(x []byte) (int64, error) {
	return r.PredictRaw(x)
}

// Evaluate reports 1 minus the mean absolute error normalized by
// threshold, clamped to [0, 1].
func (r *Regressor) Evaluate(Xs [][]byte, ys []int32) (float64, error) {
	if len(Xs) != len(ys) {
		return 0, errors.New(errors.ValueError, "Xs and ys must have equal length, got %d and %d", len(Xs), len(ys))
	}
	if len(Xs) == 0 {
		return 0, errors.New(errors.ValueError, "cannot evaluate an empty dataset")
	}
	var totalAbsErr float64
	for i, x := range Xs {
		pred, err := r.Predict(x)
		if err != nil {
			return 0, err
		}
		diff := float64(ys[i]) - float64(pred)
		if diff < 0 {
			diff = -diff
		}
		totalAbsErr += diff
	}
	mae := totalAbsErr / float64(len(Xs))
	score := 1 - mae/float64(r.opt.Threshold)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
