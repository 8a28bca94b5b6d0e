package model

import (
	"fmt"

	"gorgonia.org/tensor"
)

func transpose(t *tensor.Dense) (*tensor.Dense, error) {
	out := t.Clone().(*tensor.Dense)
	if err := out.T(); err != nil {
		return nil, fmt.Errorf("failed to transpose: %v", err)
	}
	if err := out.Transpose(); err != nil {
		return nil, fmt.Errorf("failed to transpose: %v", err)
	}
	return out, nil
}

func maxLabel(labels []int) (int, error) {
	largest := 0
	for i, label := range labels {
		if label < 0 {
			return 0, fmt.Errorf("negative label %d at index %d: %w", label, i, ErrShapeMismatch)
		}
		if label > largest {
			largest = label
		}
	}
	return largest, nil
}
