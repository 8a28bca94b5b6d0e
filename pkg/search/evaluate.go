package search

import (
	"math"

	"github.com/grexie/classifier/pkg/dataset"
	"github.com/grexie/classifier/pkg/metrics"
	"github.com/grexie/classifier/pkg/model"
)

// FitnessFunc scores validation predictions; higher is better.
type FitnessFunc func(prediction, groundTruth []int, numClasses int) (float64, error)

func Accuracy(prediction, groundTruth []int, _ int) (float64, error) {
	return metrics.MulticlassAccuracy(prediction, groundTruth)
}

// MacroF1 is the unweighted mean of the per-class F1 scores, in [0, 1].
func MacroF1(prediction, groundTruth []int, numClasses int) (float64, error) {
	r, err := metrics.NewReport(prediction, groundTruth, numClasses)
	if err != nil {
		return 0, err
	}
	return r.MacroF1() / 100, nil
}

// evaluate trains a fresh classifier on train and scores it on validation.
// Any failure, including a non-finite score, yields zero fitness.
func evaluate(train, validation dataset.Dataset, numClasses int, params model.TrainParams, seed uint64, fitness FitnessFunc) float64 {
	c := model.NewClassifier(model.WithSeed(seed))
	if _, err := c.Fit(train.Features, train.Labels, params); err != nil {
		return 0
	}

	prediction, err := c.Predict(validation.Features)
	if err != nil {
		return 0
	}

	if f, err := fitness(prediction, validation.Labels, numClasses); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	} else {
		return f
	}
}
