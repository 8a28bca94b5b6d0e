package dataset

import (
	"math/rand/v2"
	"sort"
)

// Balance oversamples every minority class up to the size of the majority
// class. Added rows are copies of random class members with 1% multiplicative
// noise on each feature.
func Balance(d Dataset, rng *rand.Rand) Dataset {
	classSamples := make(map[int][]int)
	for i, label := range d.Labels {
		classSamples[label] = append(classSamples[label], i)
	}

	majoritySize := 0
	classes := make([]int, 0, len(classSamples))
	for class, samples := range classSamples {
		majoritySize = max(majoritySize, len(samples))
		classes = append(classes, class)
	}
	sort.Ints(classes)

	out := Dataset{}
	for _, class := range classes {
		samples := classSamples[class]
		for _, idx := range samples {
			out.Features = append(out.Features, d.Features[idx])
			out.Labels = append(out.Labels, class)
		}

		for range majoritySize - len(samples) {
			original := d.Features[samples[rng.IntN(len(samples))]]
			augmented := make([]float64, len(original))
			for j, v := range original {
				noise := (rng.Float64()*2 - 1) * 0.01
				augmented[j] = v * (1 + noise)
			}
			out.Features = append(out.Features, augmented)
			out.Labels = append(out.Labels, class)
		}
	}
	return out
}
