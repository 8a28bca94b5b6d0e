package model

import (
	"fmt"

	"github.com/grexie/classifier/pkg/numeric"
	"gorgonia.org/tensor"
)

// Predict returns the most probable class of every sample.
func (c *Classifier) Predict(features [][]float64) ([]int, error) {
	probs, err := c.probabilities(features)
	if err != nil {
		return nil, err
	}
	return numeric.Argmax(probs)
}

// PredictProba returns the class probabilities of every sample.
func (c *Classifier) PredictProba(features [][]float64) ([][]float64, error) {
	probs, err := c.probabilities(features)
	if err != nil {
		return nil, err
	}

	cols := probs.Shape()[1]
	data := probs.Float64s()
	out := make([][]float64, len(features))
	for i := range out {
		out[i] = data[i*cols : (i+1)*cols]
	}
	return out, nil
}

func (c *Classifier) probabilities(features [][]float64) (*tensor.Dense, error) {
	if c.weights == nil {
		return nil, ErrUninitializedModel
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no samples to predict: %w", ErrShapeMismatch)
	}

	x, err := denseFromRows(features)
	if err != nil {
		return nil, err
	}
	if err := checkOperands(x, c.weights); err != nil {
		return nil, err
	}

	scores, err := x.MatMul(c.weights)
	if err != nil {
		return nil, fmt.Errorf("failed to compute scores: %v", err)
	}
	return numeric.Softmax(scores)
}
