package numeric

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// L2Regularization returns reg * sum(w^2) and its gradient 2 * reg * w.
// The weights are not modified.
func L2Regularization(weights *tensor.Dense, reg float64) (float64, *tensor.Dense, error) {
	if _, _, err := matrixShape(weights); err != nil {
		return 0, nil, err
	}

	w := weights.Float64s()
	loss := reg * floats.Dot(w, w)

	grad, err := tensor.Mul(weights, 2*reg)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to compute l2 gradient: %v", err)
	}
	return loss, grad.(*tensor.Dense), nil
}
