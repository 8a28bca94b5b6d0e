package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"gorgonia.org/tensor"
)

// InitScale is the standard deviation of the initial Gaussian weights.
const InitScale = 0.001

// Classifier is a linear softmax classifier. It owns a (features x classes)
// weight matrix that every call to Fit continues to train.
//
// A Classifier is not safe for concurrent use.
type Classifier struct {
	weights     *tensor.Dense
	rng         *rand.Rand
	pw          progress.Writer
	lossHistory []float64
}

type Option func(*Classifier)

// WithSeed makes weight initialization and batch shuffling deterministic.
func WithSeed(seed uint64) Option {
	return func(c *Classifier) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithProgress reports training progress to pw, one tracker per Fit.
func WithProgress(pw progress.Writer) Option {
	return func(c *Classifier) {
		c.pw = pw
	}
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		now := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(now, now^0xdeadbeef))
	}
	return c
}

// Initialize replaces the weights with small random values drawn from
// N(0, InitScale^2).
func (c *Classifier) Initialize(numFeatures, numClasses int) error {
	if numFeatures <= 0 || numClasses <= 0 {
		return fmt.Errorf("cannot initialize %dx%d weights: %w", numFeatures, numClasses, ErrShapeMismatch)
	}

	backing := make([]float64, numFeatures*numClasses)
	for i := range backing {
		backing[i] = InitScale * c.rng.NormFloat64()
	}
	c.weights = tensor.New(tensor.WithShape(numFeatures, numClasses), tensor.WithBacking(backing))
	return nil
}

// Reset drops the weights and the accumulated loss history.
func (c *Classifier) Reset() {
	c.weights = nil
	c.lossHistory = nil
}

func (c *Classifier) Initialized() bool {
	return c.weights != nil
}

// Weights returns a copy of the weight matrix as rows of length NumClasses,
// or nil before initialization.
func (c *Classifier) Weights() [][]float64 {
	if c.weights == nil {
		return nil
	}
	rows, cols := c.weights.Shape()[0], c.weights.Shape()[1]
	data := c.weights.Float64s()
	out := make([][]float64, rows)
	for i := range rows {
		out[i] = append([]float64(nil), data[i*cols:(i+1)*cols]...)
	}
	return out
}

// SetWeights replaces the weight matrix with a copy of w.
func (c *Classifier) SetWeights(w [][]float64) error {
	if len(w) == 0 || len(w[0]) == 0 {
		return fmt.Errorf("empty weight matrix: %w", ErrShapeMismatch)
	}
	dense, err := denseFromRows(w)
	if err != nil {
		return err
	}
	c.weights = dense
	return nil
}

func (c *Classifier) NumFeatures() int {
	if c.weights == nil {
		return 0
	}
	return c.weights.Shape()[0]
}

func (c *Classifier) NumClasses() int {
	if c.weights == nil {
		return 0
	}
	return c.weights.Shape()[1]
}

// LossHistory returns every epoch loss recorded since the last Reset.
func (c *Classifier) LossHistory() []float64 {
	return append([]float64(nil), c.lossHistory...)
}
