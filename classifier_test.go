package tsetlin

import (
	"testing"

	"github.com/hyperifyio/tsetlin/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisyXORDataset(n int, seed uint32, flipFraction float64) ([][]byte, []int) {
	X := make([][]byte, n)
	y := make([]int, n)
	state := seed
	nextBit := func() byte {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return byte(state & 1)
	}
	for i := 0; i < n; i++ {
		row := make([]byte, 12)
		a, b := nextBit(), nextBit()
		row[0], row[1] = a, b
		for j := 2; j < 12; j++ {
			row[j] = nextBit()
		}
		label := int(a ^ b)
		state ^= state << 7
		if float64(state%1000)/1000.0 < flipFraction {
			label = 1 - label
		}
		X[i] = row
		y[i] = label
	}
	return X, y
}

func TestClassifier_FitPredictsNoisyXORWithHighAccuracy(t *testing.T) {
	opt := config.Default()
	seed := uint32(1)
	opt.RandomState = &seed
	c, err := NewClassifier(opt)
	require.NoError(t, err)

	Xtrain, ytrain := noisyXORDataset(500, 1, 0.0)
	require.NoError(t, c.Fit(Xtrain, ytrain, 50))

	Xtest, ytest := noisyXORDataset(200, 777, 0.0)
	acc, err := c.Evaluate(Xtest, ytest)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.85, "expected high accuracy on noiseless XOR, got %f", acc)
}

func TestClassifier_PredictRejectsWrongFeatureCount(t *testing.T) {
	c, err := NewClassifier(config.Default())
	require.NoError(t, err)
	_, err = c.Predict([]byte{1, 0, 1})
	assert.Error(t, err)
}

func TestClassifier_FitRejectsOutOfRangeLabel(t *testing.T) {
	c, err := NewClassifier(config.Default())
	require.NoError(t, err)
	X := [][]byte{make([]byte, 12)}
	err = c.Fit(X, []int{5}, 1)
	assert.Error(t, err)
}

func TestClassifier_VotesStayWithinThreshold(t *testing.T) {
	opt := config.Default()
	opt.Threshold = 2
	seed := uint32(3)
	opt.RandomState = &seed
	c, err := NewClassifier(opt)
	require.NoError(t, err)
	Xtrain, ytrain := noisyXORDataset(300, 5, 0.0)
	require.NoError(t, c.Fit(Xtrain, ytrain, 30))
	votes, err := c.PredictRaw(Xtrain[0])
	require.NoError(t, err)
	for _, v := range votes {
		assert.LessOrEqual(t, v, opt.Threshold)
		assert.GreaterOrEqual(t, v, -opt.Threshold)
	}
}

func TestClassifier_ExportImportStateRoundTrip(t *testing.T) {
	opt := config.Default()
	seed := uint32(9)
	opt.RandomState = &seed
	c, err := NewClassifier(opt)
	require.NoError(t, err)
	Xtrain, ytrain := noisyXORDataset(100, 9, 0.0)
	require.NoError(t, c.Fit(Xtrain, ytrain, 5))

	blob, err := c.ExportState()
	require.NoError(t, err)
	restored, err := LoadClassifierState(blob)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		want, err := c.Predict(Xtrain[i])
		require.NoError(t, err)
		got, err := restored.Predict(Xtrain[i])
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestClassifier_InfersNumberOfLabelsAndFeaturesFromTrainingData(t *testing.T) {
	opt := config.Default()
	opt.NumberOfLabels = 0
	opt.NumberOfFeatures = 0
	seed := uint32(1)
	opt.RandomState = &seed
	c, err := NewClassifier(opt)
	require.NoError(t, err)
	assert.False(t, c.initialized)

	Xtrain, ytrain := noisyXORDataset(200, 1, 0.0)
	require.NoError(t, c.Fit(Xtrain, ytrain, 20))
	assert.True(t, c.initialized)
	assert.Equal(t, 12, c.numFeatures)
	assert.Equal(t, 2, c.numLabels)

	Xtest, ytest := noisyXORDataset(100, 777, 0.0)
	acc, err := c.Evaluate(Xtest, ytest)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.8, "expected high accuracy with inferred dimensions, got %f", acc)
}

func TestClassifier_InferenceRejectsNonContiguousLabels(t *testing.T) {
	opt := config.Default()
	opt.NumberOfLabels = 0
	c, err := NewClassifier(opt)
	require.NoError(t, err)
	X := [][]byte{make([]byte, 12), make([]byte, 12)}
	err = c.Fit(X, []int{0, 2}, 1)
	assert.Error(t, err)
}

func TestClassifier_InferenceRejectsSingleDistinctLabel(t *testing.T) {
	opt := config.Default()
	opt.NumberOfLabels = 0
	c, err := NewClassifier(opt)
	require.NoError(t, err)
	X := [][]byte{make([]byte, 12), make([]byte, 12)}
	err = c.Fit(X, []int{0, 0}, 1)
	assert.Error(t, err)
}

func TestClassifier_InferenceRejectsEmptyTrainingSet(t *testing.T) {
	opt := config.Default()
	opt.NumberOfLabels = 0
	opt.NumberOfFeatures = 0
	c, err := NewClassifier(opt)
	require.NoError(t, err)
	err = c.Fit(nil, nil, 1)
	assert.Error(t, err)
}

func TestClassifier_FitCSRMatchesDenseFit(t *testing.T) {
	opt := config.Default()
	seed := uint32(4)
	opt.RandomState = &seed
	c, err := NewClassifier(opt)
	require.NoError(t, err)

	X, y := noisyXORDataset(40, 4, 0.0)
	indptr := []int{0}
	var indices []int
	for _, row := range X {
		count := 0
		for col, v := range row {
			if v != 0 {
				indices = append(indices, col)
				count++
			}
		}
		indptr = append(indptr, indptr[len(indptr)-1]+count)
	}
	require.NoError(t, c.FitCSR(indptr, indices, nil, 12, y, 20))
	preds, err := c.PredictCSR(indptr, indices, nil, 12)
	require.NoError(t, err)
	require.Len(t, preds, len(X))

	dense, err := NewClassifier(opt)
	require.NoError(t, err)
	require.NoError(t, dense.Fit(X, y, 20))
	for i, row := range X {
		want, err := dense.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, want, preds[i], "row %d", i)
	}
}
