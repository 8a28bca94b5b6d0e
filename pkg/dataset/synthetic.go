package dataset

import "math/rand/v2"

// Blobs draws perClass points around each center with Gaussian noise of the
// given standard deviation. Class i is the cluster around centers[i]; rows
// are interleaved by class.
func Blobs(rng *rand.Rand, centers [][]float64, perClass int, spread float64) Dataset {
	d := Dataset{
		Features: make([][]float64, 0, len(centers)*perClass),
		Labels:   make([]int, 0, len(centers)*perClass),
	}
	for range perClass {
		for class, center := range centers {
			point := make([]float64, len(center))
			for j, c := range center {
				point[j] = c + spread*rng.NormFloat64()
			}
			d.Features = append(d.Features, point)
			d.Labels = append(d.Labels, class)
		}
	}
	return d
}
