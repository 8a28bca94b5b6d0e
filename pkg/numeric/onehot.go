package numeric

import (
	"fmt"

	"gorgonia.org/tensor"
)

// OneHot encodes class indices as a (len(targets) x numClasses) matrix.
func OneHot(targets []int, numClasses int) (*tensor.Dense, error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("invalid class count %d: %w", numClasses, ErrShapeMismatch)
	}
	if err := checkTargets(targets, len(targets), numClasses); err != nil {
		return nil, err
	}

	flattened := make([]float64, len(targets)*numClasses)
	for i, target := range targets {
		flattened[i*numClasses+target] = 1.0
	}
	return tensor.New(tensor.WithShape(len(targets), numClasses), tensor.WithBacking(flattened)), nil
}

// Argmax returns the index of the largest value of every row. Ties resolve to
// the lowest index.
func Argmax(m *tensor.Dense) ([]int, error) {
	rows, cols, err := matrixShape(m)
	if err != nil {
		return nil, err
	}

	data := m.Float64s()
	out := make([]int, rows)
	for i := range rows {
		out[i] = argmax(data[i*cols : (i+1)*cols])
	}
	return out, nil
}

func argmax(slice []float64) int {
	maxIndex := 0
	maxValue := slice[0]
	for i, value := range slice {
		if value > maxValue {
			maxValue = value
			maxIndex = i
		}
	}
	return maxIndex
}
