package model

import (
	"fmt"
	"math"

	"github.com/grexie/classifier/pkg/numeric"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// GraphBatchGradient computes the same loss and weight gradient as
// BatchGradient with gorgonia's symbolic differentiation instead of the
// closed-form softmax gradient.
func GraphBatchGradient(features, weights *tensor.Dense, targets []int) (float64, *tensor.Dense, error) {
	if err := checkOperands(features, weights); err != nil {
		return 0, nil, err
	}

	oneHot, err := numeric.OneHot(targets, weights.Shape()[1])
	if err != nil {
		return 0, nil, err
	}
	if oneHot.Shape()[0] != features.Shape()[0] {
		return 0, nil, fmt.Errorf("%d targets for %d rows: %w", len(targets), features.Shape()[0], ErrShapeMismatch)
	}

	g := gorgonia.NewGraph()

	x := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(features.Shape()...),
		gorgonia.WithValue(features.Clone().(*tensor.Dense)),
		gorgonia.WithName("x"))

	y := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(oneHot.Shape()...),
		gorgonia.WithValue(oneHot),
		gorgonia.WithName("y"))

	w := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(weights.Shape()...),
		gorgonia.WithValue(weights.Clone().(*tensor.Dense)),
		gorgonia.WithName("w"))

	scores, err := gorgonia.Mul(x, w)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build scores: %v", err)
	}
	probs, err := gorgonia.SoftMax(scores)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build softmax: %v", err)
	}
	loss, err := CategoricalCrossEntropy(probs, y)
	if err != nil {
		return 0, nil, err
	}

	if _, err := gorgonia.Grad(loss, w); err != nil {
		return 0, nil, fmt.Errorf("failed to compute gradients: %v", err)
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()

	if err := vm.RunAll(); err != nil {
		return 0, nil, fmt.Errorf("forward/backward pass failed: %v", err)
	}

	grad, err := w.Grad()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read weight gradient: %v", err)
	}
	dW, ok := grad.(*tensor.Dense)
	if !ok {
		return 0, nil, fmt.Errorf("weight gradient is %T, not a dense tensor", grad)
	}

	value, ok := loss.Value().Data().(float64)
	if !ok {
		return 0, nil, fmt.Errorf("loss value is %T, not a scalar", loss.Value().Data())
	}

	return value, dW.Clone().(*tensor.Dense), nil
}

// CheckGradient returns the largest absolute difference between the
// closed-form and the autodiff weight gradient on a batch.
func CheckGradient(features [][]float64, labels []int, weights [][]float64) (float64, error) {
	if len(features) == 0 || len(weights) == 0 {
		return 0, fmt.Errorf("empty operands: %w", ErrShapeMismatch)
	}
	x, err := denseFromRows(features)
	if err != nil {
		return 0, err
	}
	w, err := denseFromRows(weights)
	if err != nil {
		return 0, err
	}

	_, analytic, err := BatchGradient(x, w, labels)
	if err != nil {
		return 0, err
	}
	_, symbolic, err := GraphBatchGradient(x, w, labels)
	if err != nil {
		return 0, err
	}

	diff := 0.0
	b := symbolic.Float64s()
	for i, v := range analytic.Float64s() {
		diff = math.Max(diff, math.Abs(v-b[i]))
	}
	return diff, nil
}
