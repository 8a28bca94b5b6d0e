package search

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/grexie/classifier/pkg/dataset"
	"github.com/grexie/classifier/pkg/model"
	"github.com/jedib0t/go-pretty/v6/progress"
)

var ErrInvalidConfig = errors.New("search: invalid config")

// Config controls the genetic hyperparameter search.
type Config struct {
	PopulationSize int
	Generations    int
	RetainRate     float64
	MutationRate   float64
	EliteCount     int

	// InitialSpread and MutationSpread bound the random log-space shift
	// applied to the first population and to mutated children.
	InitialSpread  float64
	MutationSpread float64

	// ValidationRatio is the share of rows held out to score candidates.
	ValidationRatio float64
	Seed            uint64
	Fitness         FitnessFunc

	Progress progress.Writer
	Output   io.Writer
	CSV      io.Writer
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:  12,
		Generations:     5,
		RetainRate:      0.5,
		MutationRate:    0.3,
		EliteCount:      2,
		InitialSpread:   3,
		MutationSpread:  0.5,
		ValidationRatio: 0.2,
		Seed:            1,
		Fitness:         Accuracy,
	}
}

func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population size %d: %w", c.PopulationSize, ErrInvalidConfig)
	}
	if c.Generations < 1 {
		return fmt.Errorf("generations %d: %w", c.Generations, ErrInvalidConfig)
	}
	if c.EliteCount < 1 || c.EliteCount > c.PopulationSize {
		return fmt.Errorf("elite count %d: %w", c.EliteCount, ErrInvalidConfig)
	}
	if c.ValidationRatio <= 0 || c.ValidationRatio >= 1 {
		return fmt.Errorf("validation ratio %g: %w", c.ValidationRatio, ErrInvalidConfig)
	}
	return nil
}

// Summary describes one evaluated generation.
type Summary struct {
	Generation int
	Started    time.Time
	Duration   time.Duration

	Mean, Min, Max, StdDev float64
	Best                   Candidate
}

type Result struct {
	Best        Candidate
	Start       Candidate
	Generations []Summary
}

// Search evolves TrainParams around base and returns the candidate with the
// best validation fitness. d is shuffled with the configured seed and split
// into training and validation rows; every candidate trains from the same
// seed so fitness differences come from the parameters alone.
func Search(ctx context.Context, d dataset.Dataset, base model.TrainParams, cfg Config) (Result, error) {
	if cfg.Fitness == nil {
		cfg.Fitness = Accuracy
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := base.Validate(); err != nil {
		return Result{}, err
	}
	if err := d.Validate(); err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d))
	train, validation := dataset.Split(dataset.Shuffle(d, rng), cfg.ValidationRatio)
	if train.Len() == 0 || validation.Len() == 0 {
		return Result{}, fmt.Errorf("%d rows leave no training or validation split: %w", d.Len(), dataset.ErrInvalidDataset)
	}
	numClasses := d.NumClasses()

	var writer *csv.Writer
	if cfg.CSV != nil {
		writer = csv.NewWriter(cfg.CSV)
		defer writer.Flush()
		if err := writeCSVHeader(writer); err != nil {
			return Result{}, fmt.Errorf("error writing csv: %v", err)
		}
	}

	population := make([]Candidate, cfg.PopulationSize)
	population[0] = Candidate{Genome: newGenome(base), Params: base}
	for i := 1; i < cfg.PopulationSize; i++ {
		g := newGenome(base)
		randomize(rng, &g, cfg.InitialSpread)
		population[i] = Candidate{Genome: g, Params: g.Decode(base)}
	}

	var result Result
	for gen := range cfg.Generations {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		started := time.Now()

		var tracker *progress.Tracker
		if cfg.Progress != nil {
			tracker = &progress.Tracker{
				Message: fmt.Sprintf("Evaluating generation %d", gen),
				Total:   int64(len(population)),
				Units:   progress.UnitsDefault,
			}
			cfg.Progress.AppendTracker(tracker)
			tracker.Start()
		}

		evaluatePopulation(population, train, validation, numClasses, cfg, tracker)

		if tracker != nil {
			tracker.MarkAsDone()
		}
		if gen == 0 {
			result.Start = population[0]
		}

		sort.SliceStable(population, func(i, j int) bool {
			return population[i].Fitness > population[j].Fitness
		})

		summary := summarize(gen, started, population)
		result.Generations = append(result.Generations, summary)
		result.Best = population[0]

		if cfg.Output != nil {
			writeSummary(cfg.Output, summary, population)
		}
		if writer != nil {
			if err := writeCSVRow(writer, summary); err != nil {
				return result, fmt.Errorf("error writing csv: %v", err)
			}
		}

		if gen == cfg.Generations-1 {
			break
		}

		population = selection(rng, population, cfg.RetainRate, cfg.EliteCount)
		parents := len(population)
		for len(population) < cfg.PopulationSize {
			p1 := population[rng.IntN(parents)]
			p2 := population[rng.IntN(parents)]
			child := crossover(rng, p1.Genome, p2.Genome)
			mutate(rng, &child, cfg.MutationRate, cfg.MutationSpread)
			population = append(population, Candidate{Genome: child, Params: child.Decode(base)})
		}
	}

	return result, nil
}

func evaluatePopulation(population []Candidate, train, validation dataset.Dataset, numClasses int, cfg Config, tracker *progress.Tracker) {
	numWorkers := max(1, min(runtime.NumCPU()-1, len(population)))
	chunkSize := len(population) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(population)
		}
		wg.Add(1)
		go func(candidates []Candidate) {
			defer wg.Done()
			for j := range candidates {
				c := &candidates[j]
				if !c.evaluated {
					c.Fitness = evaluate(train, validation, numClasses, c.Params, cfg.Seed, cfg.Fitness)
					c.evaluated = true
				}
				if tracker != nil {
					tracker.Increment(1)
				}
			}
		}(population[start:end])
	}
	wg.Wait()
}
