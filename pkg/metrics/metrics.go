package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when predictions and ground truth differ
	// in length.
	ErrLengthMismatch = errors.New("metrics: prediction and ground truth lengths differ")

	// ErrDegenerateMetric is returned by the strict variants when a ratio has
	// a zero denominator.
	ErrDegenerateMetric = errors.New("metrics: degenerate metric")

	// ErrClassRange is returned when a class count is negative or a label
	// falls outside it.
	ErrClassRange = errors.New("metrics: class out of range")
)

// MulticlassAccuracy returns the fraction of predictions equal to the ground
// truth. An empty input yields NaN.
func MulticlassAccuracy(prediction, groundTruth []int) (float64, error) {
	if len(prediction) != len(groundTruth) {
		return 0, fmt.Errorf("%d predictions, %d labels: %w", len(prediction), len(groundTruth), ErrLengthMismatch)
	}

	correct := 0
	for i := range groundTruth {
		if prediction[i] == groundTruth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(groundTruth)), nil
}

type BinaryMetrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int

	Precision float64
	Recall    float64
	F1        float64
	Accuracy  float64
}

// BinaryClassificationMetrics computes the confusion counts and the derived
// ratios for boolean predictions. Ratios are not smoothed: a zero
// denominator produces NaN or Inf.
func BinaryClassificationMetrics(prediction, groundTruth []bool) (BinaryMetrics, error) {
	if len(prediction) != len(groundTruth) {
		return BinaryMetrics{}, fmt.Errorf("%d predictions, %d labels: %w", len(prediction), len(groundTruth), ErrLengthMismatch)
	}

	m := BinaryMetrics{}
	for i, truth := range groundTruth {
		switch {
		case truth && prediction[i]:
			m.TruePositives++
		case !truth && !prediction[i]:
			m.TrueNegatives++
		case !truth && prediction[i]:
			m.FalsePositives++
		default:
			m.FalseNegatives++
		}
	}

	tp, fp, fn, tn := float64(m.TruePositives), float64(m.FalsePositives), float64(m.FalseNegatives), float64(m.TrueNegatives)
	m.Precision = tp / (tp + fp)
	m.Recall = tp / (tp + fn)
	m.Accuracy = (tp + tn) / (tp + fp + fn + tn)
	m.F1 = 2 * (m.Precision * m.Recall) / (m.Precision + m.Recall)

	return m, nil
}

// StrictBinaryClassificationMetrics is BinaryClassificationMetrics but fails
// with ErrDegenerateMetric instead of returning non-finite ratios.
func StrictBinaryClassificationMetrics(prediction, groundTruth []bool) (BinaryMetrics, error) {
	m, err := BinaryClassificationMetrics(prediction, groundTruth)
	if err != nil {
		return m, err
	}

	switch {
	case len(groundTruth) == 0:
		return m, fmt.Errorf("no samples: %w", ErrDegenerateMetric)
	case m.TruePositives+m.FalsePositives == 0:
		return m, fmt.Errorf("precision undefined without positive predictions: %w", ErrDegenerateMetric)
	case m.TruePositives+m.FalseNegatives == 0:
		return m, fmt.Errorf("recall undefined without positive labels: %w", ErrDegenerateMetric)
	case m.Precision+m.Recall == 0:
		return m, fmt.Errorf("f1 undefined with zero precision and recall: %w", ErrDegenerateMetric)
	}
	return m, nil
}

// OneVsRest maps class labels to booleans that are true for the positive
// class.
func OneVsRest(labels []int, positive int) []bool {
	out := make([]bool, len(labels))
	for i, label := range labels {
		out[i] = label == positive
	}
	return out
}
