package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainParamsFromEnv(t *testing.T) {
	t.Setenv("CLASSIFIER_BATCH_SIZE", "32")
	t.Setenv("CLASSIFIER_LEARNING_RATE", "0.01")
	t.Setenv("CLASSIFIER_EPOCHS", "-4")

	params := NewTrainParamsFromDefaults()
	assert.Equal(t, 32, params.BatchSize)
	assert.Equal(t, 0.01, params.LearningRate)
	assert.Equal(t, 1e-5, params.L2Penalty)
	assert.Equal(t, 0, params.Epochs)
	assert.False(t, params.AverageEpochLoss)
}

func TestLoadTrainParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: 0\nlearning_rate: 0.001\nepochs: 20\naverage_epoch_loss: true\n"), 0o600))

	params, err := LoadTrainParams(path)
	require.NoError(t, err)
	assert.Equal(t, 1, params.BatchSize)
	assert.Equal(t, 0.001, params.LearningRate)
	assert.Equal(t, 1e-5, params.L2Penalty)
	assert.Equal(t, 20, params.Epochs)
	assert.True(t, params.AverageEpochLoss)

	_, err = LoadTrainParams(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTrainParamsValidate(t *testing.T) {
	assert.NoError(t, TrainParams{BatchSize: 1}.Validate())
	assert.ErrorIs(t, TrainParams{BatchSize: 0}.Validate(), ErrInvalidParams)
	assert.ErrorIs(t, TrainParams{BatchSize: 1, Epochs: -1}.Validate(), ErrInvalidParams)
}
