// Package config holds the estimator's tunable Options, their validation,
// and a minimal key=value textual parser. No repo in the retrieval pack
// imports a structured config-file library (no viper/koanf/hcl
// equivalent), so this stays a small hand-rolled parser over the
// teacher's own bufio.Scanner line-reading idiom rather than reaching for
// an unrepresented dependency; see DESIGN.md.
package config

import (
	"math"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/internal/errors"
	"github.com/hyperifyio/tsetlin/kernel"
)

// Options configures a Classifier or Regressor. NumberOfLabels (classifier
// only) and NumberOfFeatures left at 0 mean "not yet known": the estimator
// infers them from the first Fit/PartialFit call's training data instead,
// per section 3's "inferred from training data if absent."
type Options struct {
	NumberOfLabels   int32
	NumberOfFeatures int32
	ClausesPerLabel  int32
	NumberOfStates   int32
	Threshold        int64
	Specificity      float64

	BoostTruePositiveFeedback bool
	Weighted                  bool
	MaxWeight                 int32

	CountingType         automaton.CountingType
	ClauseOutputTileSize int
	NJobs                int
	RandomState          *uint32
	Verbose              bool

	LossKind kernel.LossKind
	LossC1   float64
}

// Default returns an Options with the reference hyperparameters used for
// the Noisy-XOR benchmark in spec section 8.
func Default() Options {
	return Options{
		NumberOfLabels:       2,
		NumberOfFeatures:     12,
		ClausesPerLabel:      10,
		NumberOfStates:       100,
		Threshold:            15,
		Specificity:          3.9,
		Weighted:             false,
		MaxWeight:            1,
		CountingType:         automaton.CountingAuto,
		ClauseOutputTileSize: 16,
		NJobs:                -1,
		LossKind:             kernel.LossL1,
		LossC1:               0.3,
	}
}

// Validate reports the first structurally invalid field, if any, as a
// *errors.Error tagged ValueError.
func (o Options) Validate() error {
	switch {
	case o.NumberOfLabels < 0:
		return errors.New(errors.ValueError, "number_of_labels must be >= 0 (0 defers to inference from training data), got %d", o.NumberOfLabels)
	case o.NumberOfLabels == 1:
		return errors.New(errors.ValueError, "number_of_labels must be >= 2 when given explicitly, got 1")
	case o.NumberOfFeatures < 0:
		return errors.New(errors.ValueError, "number_of_features must be >= 0 (0 defers to inference from training data), got %d", o.NumberOfFeatures)
	case o.ClausesPerLabel < 2 || o.ClausesPerLabel%2 != 0:
		return errors.New(errors.ValueError, "clauses_per_label must be an even number >= 2, got %d", o.ClausesPerLabel)
	case o.NumberOfStates < 1:
		return errors.New(errors.ValueError, "number_of_states must be >= 1, got %d", o.NumberOfStates)
	case o.Threshold < 1:
		return errors.New(errors.ValueError, "threshold must be >= 1, got %d", o.Threshold)
	case math.IsNaN(o.Specificity) || math.IsInf(o.Specificity, 0):
		return errors.New(errors.ValueError, "specificity must be finite and non-NaN, got %f", o.Specificity)
	case o.Specificity < 1.0:
		return errors.New(errors.ValueError, "specificity must be >= 1.0, got %f", o.Specificity)
	case o.Weighted && o.MaxWeight < 1:
		return errors.New(errors.ValueError, "max_weight must be >= 1 when weighted, got %d", o.MaxWeight)
	case !validTileSize(o.ClauseOutputTileSize):
		return errors.New(errors.ValueError, "clause_output_tile_size must be one of 16, 32, 64, 128, got %d", o.ClauseOutputTileSize)
	case o.NJobs < -1 || o.NJobs == 0:
		return errors.New(errors.ValueError, "n_jobs must be -1 or >= 1, got %d", o.NJobs)
	case o.LossC1 < 0 || o.LossC1 > 1:
		return errors.New(errors.ValueError, "loss_c1 must be in [0, 1], got %f", o.LossC1)
	}
	return nil
}

func validTileSize(n int) bool {
	switch n {
	case 16, 32, 64, 128:
		return true
	default:
		return false
	}
}
