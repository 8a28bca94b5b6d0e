package model

import (
	"fmt"

	"github.com/grexie/classifier/pkg/numeric"
	"github.com/jedib0t/go-pretty/v6/progress"
	"gorgonia.org/tensor"
)

// Fit trains the classifier with mini-batch gradient descent on the softmax
// cross-entropy loss plus L2 regularization, and returns one loss per epoch.
//
// Weights are initialized on the first call and carried over on later calls.
// The recorded epoch loss is the total loss of the last batch of that epoch
// unless params.AverageEpochLoss is set.
func (c *Classifier) Fit(features [][]float64, labels []int, params TrainParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no training samples: %w", ErrShapeMismatch)
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("%d samples but %d labels: %w", len(features), len(labels), ErrShapeMismatch)
	}

	numFeatures, err := checkRows(features)
	if err != nil {
		return nil, err
	}

	maxClass, err := maxLabel(labels)
	if err != nil {
		return nil, err
	}
	numClasses := maxClass + 1

	if c.weights == nil {
		if err := c.Initialize(numFeatures, numClasses); err != nil {
			return nil, err
		}
	} else if c.NumFeatures() != numFeatures || c.NumClasses() != numClasses {
		return nil, fmt.Errorf("labels and features need %dx%d weights, have %v: %w", numFeatures, numClasses, c.weights.Shape(), ErrShapeMismatch)
	}

	var tracker *progress.Tracker
	if c.pw != nil {
		tracker = &progress.Tracker{
			Message: "Training",
			Total:   int64(params.Epochs),
			Units:   progress.UnitsDefault,
		}
		c.pw.AppendTracker(tracker)
		tracker.Start()
	}

	history := make([]float64, 0, params.Epochs)
	for range params.Epochs {
		loss := 0.0
		sum := 0.0
		parts := batches(c.rng.Perm(len(features)), params.BatchSize)
		for _, indices := range parts {
			if loss, err = c.step(batchFeatures(features, indices), batchLabels(labels, indices), params); err != nil {
				if tracker != nil {
					tracker.MarkAsErrored()
				}
				return nil, err
			}
			sum += loss
		}

		if params.AverageEpochLoss {
			loss = sum / float64(len(parts))
		}
		history = append(history, loss)

		if tracker != nil {
			tracker.Message = fmt.Sprintf("Training - L: %.6f", loss)
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}

	c.lossHistory = append(c.lossHistory, history...)
	return history, nil
}

// step applies one gradient descent update for a batch and returns the total
// loss measured before the update.
func (c *Classifier) step(x *tensor.Dense, y []int, params TrainParams) (float64, error) {
	loss, dW, err := BatchGradient(x, c.weights, y)
	if err != nil {
		return 0, err
	}

	regLoss, regGrad, err := numeric.L2Regularization(c.weights, params.L2Penalty)
	if err != nil {
		return 0, err
	}

	if _, err := tensor.Add(dW, regGrad, tensor.UseUnsafe()); err != nil {
		return 0, fmt.Errorf("failed to add regularization gradient: %v", err)
	}
	if _, err := tensor.Mul(dW, params.LearningRate, tensor.UseUnsafe()); err != nil {
		return 0, fmt.Errorf("failed to scale gradient: %v", err)
	}
	if _, err := tensor.Sub(c.weights, dW, tensor.UseUnsafe()); err != nil {
		return 0, fmt.Errorf("failed to update weights: %v", err)
	}

	return loss + regLoss, nil
}
