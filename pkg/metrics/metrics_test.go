package metrics

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulticlassAccuracy(t *testing.T) {
	accuracy, err := MulticlassAccuracy([]int{1, 2, 2}, []int{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, accuracy, 1e-12)

	_, err = MulticlassAccuracy([]int{1}, []int{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	accuracy, err = MulticlassAccuracy(nil, nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(accuracy))
}

func TestBinaryClassificationMetrics(t *testing.T) {
	m, err := BinaryClassificationMetrics(
		[]bool{true, false, true, false},
		[]bool{true, true, false, false},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TruePositives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.Equal(t, 1, m.FalseNegatives)
	assert.Equal(t, 1, m.TrueNegatives)
	assert.InDelta(t, 0.5, m.Precision, 1e-12)
	assert.InDelta(t, 0.5, m.Recall, 1e-12)
	assert.InDelta(t, 0.5, m.Accuracy, 1e-12)
	assert.InDelta(t, 0.5, m.F1, 1e-12)
}

func TestBinaryClassificationMetricsDegenerate(t *testing.T) {
	m, err := BinaryClassificationMetrics([]bool{false, false}, []bool{true, false})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.Precision))
	assert.Equal(t, 0.0, m.Recall)
	assert.True(t, math.IsNaN(m.F1))
	assert.InDelta(t, 0.5, m.Accuracy, 1e-12)

	_, err = StrictBinaryClassificationMetrics([]bool{false, false}, []bool{true, false})
	assert.ErrorIs(t, err, ErrDegenerateMetric)

	_, err = StrictBinaryClassificationMetrics([]bool{true, false}, []bool{false, false})
	assert.ErrorIs(t, err, ErrDegenerateMetric)

	_, err = StrictBinaryClassificationMetrics(nil, nil)
	assert.ErrorIs(t, err, ErrDegenerateMetric)

	m, err = StrictBinaryClassificationMetrics([]bool{true, false}, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.F1)

	_, err = BinaryClassificationMetrics([]bool{true}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestOneVsRest(t *testing.T) {
	assert.Equal(t, []bool{false, true, false, true}, OneVsRest([]int{0, 9, 3, 9}, 9))
}

func TestReport(t *testing.T) {
	r, err := NewReport([]int{0, 1, 1, 2, 2, 0}, []int{0, 1, 2, 2, 2, 1}, 3)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{1, 0, 0}, {1, 1, 0}, {0, 1, 2}}, r.ConfusionMatrix)
	assert.Equal(t, []int{1, 2, 3}, r.Support)
	assert.InDelta(t, 400.0/6, r.Accuracy, 1e-9)
	assert.InDelta(t, 50.0, r.ClassPrecision[0], 1e-9)
	assert.InDelta(t, 100.0, r.ClassRecall[0], 1e-9)
	assert.InDelta(t, 100.0, r.ClassPrecision[2], 1e-9)
	assert.InDelta(t, 200.0/3, r.ClassRecall[2], 1e-9)
	assert.InDelta(t, 80.0, r.F1Scores[2], 1e-9)

	_, err = NewReport([]int{0}, []int{0, 1}, 2)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewReport([]int{3}, []int{0}, 2)
	assert.ErrorIs(t, err, ErrClassRange)

	_, err = NewReport([]int{0}, []int{-1}, 2)
	assert.ErrorIs(t, err, ErrClassRange)

	_, err = NewReport(nil, nil, -1)
	assert.ErrorIs(t, err, ErrClassRange)
}

func TestReportMissingClassHasZeroSupport(t *testing.T) {
	r, err := NewReport([]int{0, 1}, []int{0, 1}, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 0}, r.Support)
	assert.Equal(t, 0.0, r.F1Scores[2])
	assert.InDelta(t, 100.0, r.Accuracy, 1e-9)
}

func TestReportWrite(t *testing.T) {
	r, err := NewReport([]int{0, 1, 1}, []int{0, 1, 0}, 3)
	require.NoError(t, err)
	r.ClassNames = []string{"cat", "dog"}

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "Confusion Matrix")
	assert.Contains(t, out, "PRECISION")
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, "2")

	m, err := BinaryClassificationMetrics([]bool{true, false}, []bool{true, true})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, m.Write(&buf, "Binary Metrics"))
	assert.Contains(t, buf.String(), "RECALL")
}
