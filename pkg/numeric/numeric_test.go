package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func matrix(rows [][]float64) *tensor.Dense {
	backing := make([]float64, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		backing = append(backing, row...)
	}
	return tensor.New(tensor.WithShape(len(rows), len(rows[0])), tensor.WithBacking(backing))
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	scores := matrix([][]float64{
		{1, 2, 3},
		{-5, 0, 5},
		{1000, 1001, 999},
		{0, 0, 0},
	})

	probs, err := Softmax(scores)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3}, probs.Shape())

	data := probs.Float64s()
	for i := 0; i < 4; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			p := data[i*3+j]
			assert.Greater(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "row %d", i)
	}
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, data[9:12], 1e-12)
}

func TestSoftmaxShiftInvariant(t *testing.T) {
	scores := matrix([][]float64{{1, 2, 3}, {0.5, -0.5, 4}})
	shifted := matrix([][]float64{{101, 102, 103}, {-9.5, -10.5, -6}})

	a, err := Softmax(scores)
	require.NoError(t, err)
	b, err := Softmax(shifted)
	require.NoError(t, err)
	assert.InDeltaSlice(t, a.Float64s(), b.Float64s(), 1e-9)
}

func TestSoftmaxDoesNotModifyInput(t *testing.T) {
	scores := matrix([][]float64{{1, 2, 3}})
	_, err := Softmax(scores)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, scores.Float64s())
}

func TestSoftmaxVector(t *testing.T) {
	probs, err := SoftmaxVector([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, probs, 3)
	assert.InDeltaSlice(t, []float64{0.0900, 0.2447, 0.6652}, probs, 1e-4)
}

func TestSoftmaxRejectsNonMatrix(t *testing.T) {
	v := tensor.New(tensor.WithShape(3), tensor.WithBacking([]float64{1, 2, 3}))
	_, err := Softmax(v)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Softmax(nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCrossEntropyLoss(t *testing.T) {
	probs := matrix([][]float64{{0.1, 0.9}, {0.5, 0.5}})
	loss, err := CrossEntropyLoss(probs, []int{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, (-math.Log(0.9)-math.Log(0.5))/2, loss, 1e-12)
	assert.GreaterOrEqual(t, loss, 0.0)

	loss, err = CrossEntropyLossVector([]float64{0, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, loss)
}

func TestCrossEntropyLossZeroProbability(t *testing.T) {
	loss, err := CrossEntropyLossVector([]float64{1, 0}, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(loss, 1))
}

func TestCrossEntropyLossTargets(t *testing.T) {
	probs := matrix([][]float64{{0.1, 0.9}, {0.5, 0.5}})

	_, err := CrossEntropyLoss(probs, []int{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = CrossEntropyLoss(probs, []int{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = CrossEntropyLoss(probs, []int{-1, 0})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSoftmaxCrossEntropy(t *testing.T) {
	loss, grad, err := SoftmaxCrossEntropy(matrix([][]float64{{1, 2, 3}}), []int{2})
	require.NoError(t, err)
	assert.InDelta(t, 0.4076, loss, 1e-4)
	assert.Equal(t, tensor.Shape{1, 3}, grad.Shape())
	assert.InDeltaSlice(t, []float64{0.0900, 0.2447, -0.3348}, grad.Float64s(), 1e-4)
}

func TestSoftmaxCrossEntropyGradientRowsSumToZero(t *testing.T) {
	scores := matrix([][]float64{
		{1, 2, 3, 4},
		{-3, 0.5, 2, 0},
		{10, -10, 0, 5},
	})
	_, grad, err := SoftmaxCrossEntropy(scores, []int{0, 3, 1})
	require.NoError(t, err)

	data := grad.Float64s()
	for i := 0; i < 3; i++ {
		sum := 0.0
		for j := 0; j < 4; j++ {
			sum += data[i*4+j]
		}
		assert.InDelta(t, 0, sum, 1e-12, "row %d", i)
	}
}

func TestSoftmaxCrossEntropyNumericalGradient(t *testing.T) {
	scores := []float64{0.3, -1.2, 2.0, 0.7, 0.1, -0.4}
	targets := []int{2, 0}
	m := func(v []float64) *tensor.Dense {
		backing := append([]float64(nil), v...)
		return tensor.New(tensor.WithShape(2, 3), tensor.WithBacking(backing))
	}

	_, grad, err := SoftmaxCrossEntropy(m(scores), targets)
	require.NoError(t, err)

	const h = 1e-6
	for i := range scores {
		plus := append([]float64(nil), scores...)
		minus := append([]float64(nil), scores...)
		plus[i] += h
		minus[i] -= h
		lp, _, err := SoftmaxCrossEntropy(m(plus), targets)
		require.NoError(t, err)
		lm, _, err := SoftmaxCrossEntropy(m(minus), targets)
		require.NoError(t, err)
		assert.InDelta(t, (lp-lm)/(2*h), grad.Float64s()[i], 1e-6, "index %d", i)
	}
}

func TestSoftmaxCrossEntropyVector(t *testing.T) {
	loss, grad, err := SoftmaxCrossEntropyVector([]float64{1, 2, 3}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.4076, loss, 1e-4)
	assert.InDeltaSlice(t, []float64{0.0900, 0.2447, -0.3348}, grad, 1e-4)
}

func TestL2Regularization(t *testing.T) {
	w := matrix([][]float64{{1, 2}, {3, 4}})
	loss, grad, err := L2Regularization(w, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, loss, 1e-12)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.6, 0.8}, grad.Float64s(), 1e-12)
	assert.Equal(t, tensor.Shape{2, 2}, grad.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, w.Float64s())
}

func TestOneHot(t *testing.T) {
	m, err := OneHot([]int{0, 2, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 1, 0, 1, 0}, m.Float64s())

	_, err = OneHot([]int{3}, 3)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestArgmax(t *testing.T) {
	idx, err := Argmax(matrix([][]float64{
		{0.1, 0.7, 0.2},
		{0.4, 0.2, 0.4},
		{0.3, 0.3, 0.4},
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, idx)
}
