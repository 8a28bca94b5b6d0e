package dataset

import (
	"errors"
	"fmt"
)

var ErrInvalidDataset = errors.New("dataset: invalid dataset")

// Dataset is a dense feature matrix with one class label per row.
type Dataset struct {
	Features [][]float64
	Labels   []int
}

func (d Dataset) Len() int {
	return len(d.Labels)
}

func (d Dataset) NumFeatures() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// NumClasses is the largest label plus one.
func (d Dataset) NumClasses() int {
	n := 0
	for _, label := range d.Labels {
		n = max(n, label+1)
	}
	return n
}

// Validate checks that every row has a label, rows share one width and
// labels are non-negative.
func (d Dataset) Validate() error {
	if len(d.Features) != len(d.Labels) {
		return fmt.Errorf("%d rows but %d labels: %w", len(d.Features), len(d.Labels), ErrInvalidDataset)
	}
	width := d.NumFeatures()
	for i, row := range d.Features {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, expected %d: %w", i, len(row), width, ErrInvalidDataset)
		}
		if d.Labels[i] < 0 {
			return fmt.Errorf("row %d has negative label %d: %w", i, d.Labels[i], ErrInvalidDataset)
		}
	}
	return nil
}

// Subset returns the rows at indices. Rows are shared, not copied.
func (d Dataset) Subset(indices []int) Dataset {
	out := Dataset{
		Features: make([][]float64, len(indices)),
		Labels:   make([]int, len(indices)),
	}
	for i, idx := range indices {
		out.Features[i] = d.Features[idx]
		out.Labels[i] = d.Labels[idx]
	}
	return out
}

// AppendBias returns a copy of d with a constant 1 appended to every row, so
// a linear model without an intercept can learn one.
func AppendBias(d Dataset) Dataset {
	out := Dataset{
		Features: make([][]float64, len(d.Features)),
		Labels:   append([]int(nil), d.Labels...),
	}
	for i, row := range d.Features {
		biased := make([]float64, len(row)+1)
		copy(biased, row)
		biased[len(row)] = 1
		out.Features[i] = biased
	}
	return out
}
