package numeric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// Softmax turns a (batch x classes) score matrix into a row-stochastic
// probability matrix. Each row is shifted by its maximum before
// exponentiation so large scores cannot overflow.
func Softmax(scores *tensor.Dense) (*tensor.Dense, error) {
	rows, cols, err := matrixShape(scores)
	if err != nil {
		return nil, err
	}

	probs := scores.Clone().(*tensor.Dense)
	data := probs.Float64s()
	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		shift := floats.Max(row)
		for j, v := range row {
			row[j] = math.Exp(v - shift)
		}
		floats.Scale(1/floats.Sum(row), row)
	}
	return probs, nil
}

// SoftmaxVector is Softmax for a single score vector.
func SoftmaxVector(scores []float64) ([]float64, error) {
	probs, err := Softmax(rowMatrix(scores))
	if err != nil {
		return nil, err
	}
	return probs.Float64s(), nil
}

func rowMatrix(v []float64) *tensor.Dense {
	backing := make([]float64, len(v))
	copy(backing, v)
	return tensor.New(tensor.WithShape(1, len(v)), tensor.WithBacking(backing))
}

func matrixShape(t *tensor.Dense) (int, int, error) {
	if t == nil {
		return 0, 0, fmt.Errorf("nil tensor: %w", ErrShapeMismatch)
	}
	shape := t.Shape()
	if !shape.IsMatrix() {
		return 0, 0, fmt.Errorf("expected a matrix, got shape %v: %w", shape, ErrShapeMismatch)
	}
	if shape[1] == 0 {
		return 0, 0, fmt.Errorf("matrix has no columns: %w", ErrShapeMismatch)
	}
	return shape[0], shape[1], nil
}
