package model

import (
	"fmt"

	"gorgonia.org/tensor"
)

func denseFromRows(rows [][]float64) (*tensor.Dense, error) {
	width, err := checkRows(rows)
	if err != nil {
		return nil, err
	}
	flattened := make([]float64, 0, len(rows)*width)
	for _, row := range rows {
		flattened = append(flattened, row...)
	}
	return tensor.New(tensor.WithShape(len(rows), width), tensor.WithBacking(flattened)), nil
}

func checkRows(rows [][]float64) (int, error) {
	width := len(rows[0])
	if width == 0 {
		return 0, fmt.Errorf("samples have no features: %w", ErrShapeMismatch)
	}
	for i, row := range rows {
		if len(row) != width {
			return 0, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(row), width, ErrShapeMismatch)
		}
	}
	return width, nil
}

func batchFeatures(features [][]float64, indices []int) *tensor.Dense {
	featureSize := len(features[0])
	flattened := make([]float64, len(indices)*featureSize)
	for i, idx := range indices {
		copy(flattened[i*featureSize:], features[idx])
	}
	return tensor.New(tensor.WithShape(len(indices), featureSize), tensor.WithBacking(flattened))
}

func batchLabels(labels []int, indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = labels[idx]
	}
	return out
}

// batches splits indices into contiguous runs of batchSize. The last run may
// be shorter; empty runs are never produced.
func batches(indices []int, batchSize int) [][]int {
	out := make([][]int, 0, (len(indices)+batchSize-1)/batchSize)
	for start := 0; start < len(indices); start += batchSize {
		end := min(start+batchSize, len(indices))
		out = append(out, indices[start:end])
	}
	return out
}
