package search

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// summarize expects population sorted by fitness, best first.
func summarize(gen int, started time.Time, population []Candidate) Summary {
	fitnesses := make([]float64, len(population))
	for i, c := range population {
		fitnesses[i] = c.Fitness
	}
	mean, std := stat.MeanStdDev(fitnesses, nil)

	return Summary{
		Generation: gen,
		Started:    started,
		Duration:   time.Since(started),
		Mean:       mean,
		Min:        floats.Min(fitnesses),
		Max:        floats.Max(fitnesses),
		StdDev:     std,
		Best:       population[0],
	}
}

func percentile(sorted []float64, p float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func describe(values []float64, format string) table.Row {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	return table.Row{
		fmt.Sprintf(format, mean),
		fmt.Sprintf(format, sorted[0]),
		fmt.Sprintf(format, percentile(sorted, 0.25)),
		fmt.Sprintf(format, percentile(sorted, 0.5)),
		fmt.Sprintf(format, percentile(sorted, 0.75)),
		fmt.Sprintf(format, sorted[len(sorted)-1]),
		fmt.Sprintf("%0.6f", std),
	}
}

func writeSummary(w io.Writer, s Summary, population []Candidate) {
	fitnesses := make([]float64, len(population))
	learningRates := make([]float64, len(population))
	l2Penalties := make([]float64, len(population))
	batchSizes := make([]float64, len(population))
	for i, c := range population {
		fitnesses[i] = c.Fitness
		learningRates[i] = c.LearningRateLog10
		l2Penalties[i] = c.L2PenaltyLog10
		batchSizes[i] = c.BatchSizeLog2
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Generation %d - Summary", s.Generation))
	t.AppendHeader(table.Row{"", "MEAN", "MIN", "25TH", "MEDIAN", "75TH", "MAX", "STDDEV"})
	t.AppendRow(append(table.Row{"Fitness"}, describe(fitnesses, "%0.6f")...))
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		append(table.Row{"log10(Learning Rate)"}, describe(learningRates, "%0.2f")...),
		append(table.Row{"log10(L2 Penalty)"}, describe(l2Penalties, "%0.2f")...),
		append(table.Row{"log2(Batch Size)"}, describe(batchSizes, "%0.2f")...),
	})
	t.Render()

	s.Best.Params.Write(w, fmt.Sprintf("Generation %d - Best Parameters (%0.4f)", s.Generation, s.Best.Fitness))
}
