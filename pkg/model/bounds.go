package model

import "math"

func BoundBatchSize(v int) int {
	return int(math.Max(1, math.Min(1<<20, float64(v)))) // Default: 100
}

func BoundLearningRate(v float64) float64 {
	return math.Max(0, math.Min(10, v)) // Default: 1e-7
}

func BoundL2Penalty(v float64) float64 {
	return math.Max(0, math.Min(1, v)) // Default: 1e-5
}

func BoundEpochs(v int) int {
	return int(math.Max(0, math.Min(1_000_000, float64(v)))) // Default: 1
}

func BoundBatchSizeLog2Float64(v float64) float64 {
	return math.Max(0, math.Min(20, v))
}

func BoundLearningRateLog10(v float64) float64 {
	return math.Max(-8, math.Min(1, v))
}

func BoundL2PenaltyLog10(v float64) float64 {
	return math.Max(-10, math.Min(0, v))
}
