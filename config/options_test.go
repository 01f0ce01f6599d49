package config

import (
	"math"
	"testing"

	"github.com/hyperifyio/tsetlin/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_RejectsOddClausesPerLabel(t *testing.T) {
	o := Default()
	o.ClausesPerLabel = 3
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ValueError))
}

func TestValidate_RejectsBadSpecificity(t *testing.T) {
	o := Default()
	o.Specificity = 0.5
	assert.Error(t, o.Validate())
}

func TestValidate_RejectsBadNJobs(t *testing.T) {
	o := Default()
	o.NJobs = 0
	assert.Error(t, o.Validate())
	o.NJobs = -2
	assert.Error(t, o.Validate())
	o.NJobs = 4
	assert.NoError(t, o.Validate())
}

func TestValidate_RejectsWeightedWithoutMaxWeight(t *testing.T) {
	o := Default()
	o.Weighted = true
	o.MaxWeight = 0
	assert.Error(t, o.Validate())
}

func TestValidate_RejectsTileSizeOutsideAllowedSet(t *testing.T) {
	o := Default()
	o.ClauseOutputTileSize = 24
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ValueError))
	for _, ok := range []int{16, 32, 64, 128} {
		o.ClauseOutputTileSize = ok
		assert.NoError(t, o.Validate())
	}
}

func TestValidate_RejectsNonFiniteSpecificity(t *testing.T) {
	o := Default()
	o.Specificity = math.NaN()
	assert.Error(t, o.Validate())
	o.Specificity = math.Inf(1)
	assert.Error(t, o.Validate())
}

func TestValidate_AllowsZeroLabelsAndFeaturesAsInferDeferral(t *testing.T) {
	o := Default()
	o.NumberOfLabels = 0
	o.NumberOfFeatures = 0
	assert.NoError(t, o.Validate())
}

func TestValidate_RejectsNegativeLabelsAndFeatures(t *testing.T) {
	o := Default()
	o.NumberOfLabels = -1
	assert.Error(t, o.Validate())

	o = Default()
	o.NumberOfFeatures = -1
	assert.Error(t, o.Validate())
}

func TestValidate_RejectsExactlyOneLabel(t *testing.T) {
	o := Default()
	o.NumberOfLabels = 1
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ValueError))
}
