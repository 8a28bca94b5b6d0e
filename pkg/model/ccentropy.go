package model

import (
	"fmt"

	"gorgonia.org/gorgonia"
)

// CategoricalCrossEntropy builds -mean(sum(target * log(pred), 1)) for one-hot
// targets. pred is not clamped, so a zero probability on the true class
// evaluates to +Inf like the analytic loss.
func CategoricalCrossEntropy(pred, target *gorgonia.Node) (*gorgonia.Node, error) {
	logPred, err := gorgonia.Log(pred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute log: %v", err)
	}

	losses, err := gorgonia.HadamardProd(target, logPred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hadamard product: %v", err)
	}

	rowLosses, err := gorgonia.Sum(losses, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sum: %v", err)
	}

	meanLoss, err := gorgonia.Mean(rowLosses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %v", err)
	}

	return gorgonia.Neg(meanLoss)
}
