package numeric

import (
	"fmt"
	"math"

	"gorgonia.org/tensor"
)

// CrossEntropyLoss returns the mean over rows of -ln(probs[i, targets[i]]).
//
// Target probabilities are not clamped: a true class with probability 0
// yields +Inf, and NaN inputs propagate.
func CrossEntropyLoss(probs *tensor.Dense, targets []int) (float64, error) {
	rows, cols, err := matrixShape(probs)
	if err != nil {
		return 0, err
	}
	if err := checkTargets(targets, rows, cols); err != nil {
		return 0, err
	}

	data := probs.Float64s()
	loss := 0.0
	for i, target := range targets {
		loss -= math.Log(data[i*cols+target])
	}
	return loss / float64(rows), nil
}

// CrossEntropyLossVector is CrossEntropyLoss for a single probability vector.
func CrossEntropyLossVector(probs []float64, target int) (float64, error) {
	return CrossEntropyLoss(rowMatrix(probs), []int{target})
}

// SoftmaxCrossEntropy computes the softmax of scores, the cross-entropy loss
// against targets and the gradient of that loss with respect to the scores:
// (probs - onehot(targets)) / batchSize.
func SoftmaxCrossEntropy(scores *tensor.Dense, targets []int) (float64, *tensor.Dense, error) {
	probs, err := Softmax(scores)
	if err != nil {
		return 0, nil, err
	}

	loss, err := CrossEntropyLoss(probs, targets)
	if err != nil {
		return 0, nil, err
	}

	rows, cols := probs.Shape()[0], probs.Shape()[1]
	grad := probs.Float64s()
	for i, target := range targets {
		grad[i*cols+target] -= 1
	}
	if _, err := tensor.Mul(probs, 1/float64(rows), tensor.UseUnsafe()); err != nil {
		return 0, nil, fmt.Errorf("failed to scale gradient: %v", err)
	}

	return loss, probs, nil
}

// SoftmaxCrossEntropyVector is SoftmaxCrossEntropy for a single score vector.
func SoftmaxCrossEntropyVector(scores []float64, target int) (float64, []float64, error) {
	loss, grad, err := SoftmaxCrossEntropy(rowMatrix(scores), []int{target})
	if err != nil {
		return 0, nil, err
	}
	return loss, grad.Float64s(), nil
}

func checkTargets(targets []int, rows, cols int) error {
	if len(targets) != rows {
		return fmt.Errorf("%d targets for %d rows: %w", len(targets), rows, ErrShapeMismatch)
	}
	if rows == 0 {
		return fmt.Errorf("empty batch: %w", ErrShapeMismatch)
	}
	for i, target := range targets {
		if target < 0 || target >= cols {
			return fmt.Errorf("target %d at row %d outside [0, %d): %w", target, i, cols, ErrShapeMismatch)
		}
	}
	return nil
}
