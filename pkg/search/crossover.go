package search

import "math/rand/v2"

func crossover(rng *rand.Rand, parent1, parent2 Genome) Genome {
	selectValue := func(a, b float64) float64 {
		r := rng.Float64()
		if r < 0.4 {
			return a
		} else if r < 0.8 {
			return b
		}
		return (a + b) / 2
	}

	return Genome{
		BatchSizeLog2:     selectValue(parent1.BatchSizeLog2, parent2.BatchSizeLog2),
		LearningRateLog10: selectValue(parent1.LearningRateLog10, parent2.LearningRateLog10),
		L2PenaltyLog10:    selectValue(parent1.L2PenaltyLog10, parent2.L2PenaltyLog10),
	}
}

func mutate(rng *rand.Rand, g *Genome, mutationRate, spread float64) {
	if rng.Float64() < mutationRate {
		randomize(rng, g, spread)
	}
}
