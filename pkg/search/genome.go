package search

import (
	"math"
	"math/rand/v2"

	"github.com/grexie/classifier/pkg/model"
)

// Genome holds the searched hyperparameters in log space. Epochs and the
// epoch loss mode are taken from the base TrainParams unchanged.
type Genome struct {
	BatchSizeLog2     float64
	LearningRateLog10 float64
	L2PenaltyLog10    float64
}

// Candidate is a genome together with the parameters it decodes to and its
// validation fitness.
type Candidate struct {
	Genome
	Params    model.TrainParams
	Fitness   float64
	evaluated bool
}

func newGenome(params model.TrainParams) Genome {
	return Genome{
		BatchSizeLog2:     model.BoundBatchSizeLog2Float64(math.Log2(float64(params.BatchSize))),
		LearningRateLog10: model.BoundLearningRateLog10(math.Log10(params.LearningRate)),
		L2PenaltyLog10:    model.BoundL2PenaltyLog10(math.Log10(params.L2Penalty)),
	}
}

// randomize shifts every gene by up to spread in its log unit.
func randomize(rng *rand.Rand, g *Genome, spread float64) {
	shift := func() float64 {
		return spread * (2*rng.Float64() - 1)
	}
	g.BatchSizeLog2 = model.BoundBatchSizeLog2Float64(g.BatchSizeLog2 + shift())
	g.LearningRateLog10 = model.BoundLearningRateLog10(g.LearningRateLog10 + shift())
	g.L2PenaltyLog10 = model.BoundL2PenaltyLog10(g.L2PenaltyLog10 + shift())
}

// Decode returns base with the searched fields replaced by g.
func (g Genome) Decode(base model.TrainParams) model.TrainParams {
	params := base
	params.BatchSize = model.BoundBatchSize(int(math.Pow(2, math.Round(g.BatchSizeLog2))))
	params.LearningRate = model.BoundLearningRate(math.Pow(10, g.LearningRateLog10))
	params.L2Penalty = model.BoundL2Penalty(math.Pow(10, g.L2PenaltyLog10))
	return params
}
