package model

import (
	"fmt"

	"github.com/grexie/classifier/pkg/numeric"
	"gorgonia.org/tensor"
)

// BatchGradient runs the linear forward pass scores = features · weights and
// returns the softmax cross-entropy loss of the batch together with its
// gradient with respect to weights, featuresᵀ · dScores.
func BatchGradient(features, weights *tensor.Dense, targets []int) (float64, *tensor.Dense, error) {
	if err := checkOperands(features, weights); err != nil {
		return 0, nil, err
	}

	scores, err := features.MatMul(weights)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to compute scores: %v", err)
	}

	loss, dScores, err := numeric.SoftmaxCrossEntropy(scores, targets)
	if err != nil {
		return 0, nil, err
	}

	featuresT, err := transpose(features)
	if err != nil {
		return 0, nil, err
	}

	dW, err := featuresT.MatMul(dScores)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to compute weight gradient: %v", err)
	}

	return loss, dW, nil
}

func checkOperands(features, weights *tensor.Dense) error {
	if features == nil || weights == nil {
		return fmt.Errorf("nil operand: %w", ErrShapeMismatch)
	}
	fs, ws := features.Shape(), weights.Shape()
	if !fs.IsMatrix() || !ws.IsMatrix() {
		return fmt.Errorf("features %v and weights %v must be matrices: %w", fs, ws, ErrShapeMismatch)
	}
	if fs[1] != ws[0] {
		return fmt.Errorf("features have %d columns, weights have %d rows: %w", fs[1], ws[0], ErrShapeMismatch)
	}
	return nil
}
