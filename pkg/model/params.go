package model

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v2"
)

// TrainParams are the hyperparameters of a single Fit call.
type TrainParams struct {
	BatchSize    int     `yaml:"batch_size" bson:"batchSize"`
	LearningRate float64 `yaml:"learning_rate" bson:"learningRate"`
	L2Penalty    float64 `yaml:"l2_penalty" bson:"l2Penalty"`
	Epochs       int     `yaml:"epochs" bson:"epochs"`

	// AverageEpochLoss records the mean batch loss of each epoch instead of
	// the loss of its final batch.
	AverageEpochLoss bool `yaml:"average_epoch_loss" bson:"averageEpochLoss"`
}

func (p TrainParams) Validate() error {
	if p.BatchSize < 1 {
		return fmt.Errorf("batch size %d: %w", p.BatchSize, ErrInvalidParams)
	}
	if p.Epochs < 0 {
		return fmt.Errorf("epochs %d: %w", p.Epochs, ErrInvalidParams)
	}
	return nil
}

func (p *TrainParams) Write(w io.Writer, title string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"CLASSIFIER_BATCH_SIZE", fmt.Sprintf("%d", p.BatchSize)},
		{"CLASSIFIER_LEARNING_RATE", fmt.Sprintf("%g", p.LearningRate)},
		{"CLASSIFIER_L2_PENALTY", fmt.Sprintf("%g", p.L2Penalty)},
		{"CLASSIFIER_EPOCHS", fmt.Sprintf("%d", p.Epochs)},
		{"CLASSIFIER_AVERAGE_EPOCH_LOSS", fmt.Sprintf("%t", p.AverageEpochLoss)},
	})
	t.Render()
}

func NewTrainParamsFromDefaults() TrainParams {
	return TrainParams{
		BatchSize:        BatchSize(),
		LearningRate:     LearningRate(),
		L2Penalty:        L2Penalty(),
		Epochs:           Epochs(),
		AverageEpochLoss: AverageEpochLoss(),
	}
}

// LoadTrainParams reads YAML hyperparameters from path on top of the
// environment defaults. Values are clamped by the same bounds as the
// environment.
func LoadTrainParams(path string) (TrainParams, error) {
	params := NewTrainParamsFromDefaults()

	file, err := os.Open(path)
	if err != nil {
		return params, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&params); err != nil && err != io.EOF {
		return params, fmt.Errorf("failed to decode %s: %v", path, err)
	}

	params.BatchSize = BoundBatchSize(params.BatchSize)
	params.LearningRate = BoundLearningRate(params.LearningRate)
	params.L2Penalty = BoundL2Penalty(params.L2Penalty)
	params.Epochs = BoundEpochs(params.Epochs)
	return params, nil
}

func envInt(name string, def func() int, dec func(v int) int) func() int {
	return func() int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 32); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = int(v)
			}
		}
		return dec(value)
	}
}

func envFloat64(name string, def func() float64, dec func(v float64) float64) func() float64 {
	return func() float64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseFloat(v, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return dec(value)
	}
}

func envBool(name string, def func() bool) func() bool {
	return func() bool {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseBool(v); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

var (
	BatchSize        = envInt("CLASSIFIER_BATCH_SIZE", func() int { return 100 }, BoundBatchSize)
	LearningRate     = envFloat64("CLASSIFIER_LEARNING_RATE", func() float64 { return 1e-7 }, BoundLearningRate)
	L2Penalty        = envFloat64("CLASSIFIER_L2_PENALTY", func() float64 { return 1e-5 }, BoundL2Penalty)
	Epochs           = envInt("CLASSIFIER_EPOCHS", func() int { return 1 }, BoundEpochs)
	AverageEpochLoss = envBool("CLASSIFIER_AVERAGE_EPOCH_LOSS", func() bool { return false })
)
