package search

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// selection keeps the eliteCount best candidates, the rest of the top
// retainRate share, and a fitness-proportional sample of the remainder.
// population must be sorted by fitness, best first.
func selection(rng *rand.Rand, population []Candidate, retainRate float64, eliteCount int) []Candidate {
	fitnesses := make([]float64, len(population))
	for i, c := range population {
		fitnesses[i] = c.Fitness
	}
	if stat.StdDev(fitnesses, nil) > 0.05 {
		retainRate *= 0.9
	} else {
		retainRate *= 1.1
	}

	eliteCount = min(eliteCount, len(population))
	n := max(eliteCount, min(len(population), int(float64(len(population))*retainRate)))

	selected := make([]Candidate, 0, len(population))
	selected = append(selected, population[:n]...)

	totalFitness := floats.Sum(fitnesses)
	if totalFitness <= 0 {
		return selected
	}
	for _, c := range population[n:] {
		if rng.Float64() < c.Fitness/totalFitness {
			selected = append(selected, c)
		}
	}
	return selected
}
