package dataset

import "math/rand/v2"

// Split keeps the first (1 - testRatio) of the rows for training and the
// rest for testing. Ratios outside (0, 1) fall back to 0.2.
func Split(d Dataset, testRatio float64) (train, test Dataset) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}

	countTraining := int(float64(d.Len()) * (1 - testRatio))
	train = Dataset{Features: d.Features[:countTraining], Labels: d.Labels[:countTraining]}
	test = Dataset{Features: d.Features[countTraining:], Labels: d.Labels[countTraining:]}
	return train, test
}

// Shuffle returns d with its rows permuted by rng.
func Shuffle(d Dataset, rng *rand.Rand) Dataset {
	return d.Subset(rng.Perm(d.Len()))
}
