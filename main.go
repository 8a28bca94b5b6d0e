package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/grexie/classifier/pkg/dataset"
	"github.com/grexie/classifier/pkg/db"
	"github.com/grexie/classifier/pkg/metrics"
	"github.com/grexie/classifier/pkg/model"
	"github.com/grexie/classifier/pkg/search"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"gonum.org/v1/gonum/stat"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func envBool(name string, def bool) bool {
	if v, ok := os.LookupEnv(name); ok {
		if b, err := strconv.ParseBool(v); err != nil {
			log.Fatalf("error parsing env.%s: %v", name, err)
		} else {
			return b
		}
	}
	return def
}

func envInt(name string, def int) int {
	if v, ok := os.LookupEnv(name); ok {
		if i, err := strconv.ParseInt(v, 10, 64); err != nil {
			log.Fatalf("error parsing env.%s: %v", name, err)
		} else {
			return int(i)
		}
	}
	return def
}

func envFloat64(name string, def float64) float64 {
	if v, ok := os.LookupEnv(name); ok {
		if f, err := strconv.ParseFloat(v, 64); err != nil {
			log.Fatalf("error parsing env.%s: %v", name, err)
		} else {
			return f
		}
	}
	return def
}

func newProgressWriter(trackers int) progress.Writer {
	pw := progress.NewWriter()
	pw.SetMessageLength(40)
	pw.SetNumTrackersExpected(trackers)
	pw.SetSortBy(progress.SortByPercentDsc)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(15)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%2.0f%%"
	go pw.Render()
	return pw
}

func stopProgressWriter(pw progress.Writer) {
	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(100 * time.Millisecond)
	}
}

// searchParams runs the genetic search on the training rows and returns the
// best parameters found.
func searchParams(ctx context.Context, train dataset.Dataset, params model.TrainParams, seed uint64) model.TrainParams {
	cfg := search.DefaultConfig()
	cfg.PopulationSize = envInt("CLASSIFIER_SEARCH_POPULATION", cfg.PopulationSize)
	cfg.Generations = envInt("CLASSIFIER_SEARCH_GENERATIONS", cfg.Generations)
	cfg.EliteCount = envInt("CLASSIFIER_SEARCH_ELITE", cfg.EliteCount)
	cfg.MutationRate = envFloat64("CLASSIFIER_SEARCH_MUTATION_RATE", cfg.MutationRate)
	cfg.ValidationRatio = envFloat64("CLASSIFIER_SEARCH_VALIDATION_RATIO", cfg.ValidationRatio)
	cfg.Seed = seed
	if envBool("CLASSIFIER_SEARCH_MACRO_F1", false) {
		cfg.Fitness = search.MacroF1
	}

	if path, ok := os.LookupEnv("CLASSIFIER_SEARCH_LOG"); ok {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			log.Fatalf("error opening %s: %v", path, err)
		}
		defer file.Close()
		cfg.CSV = file
	}

	pw := newProgressWriter(cfg.Generations)
	cfg.Progress = pw
	result, err := search.Search(ctx, train, params, cfg)
	stopProgressWriter(pw)
	if err != nil {
		log.Fatalf("search error: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Search")
	t.AppendHeader(table.Row{"GENERATION", "MEAN", "MIN", "MAX", "STDDEV", "BEST"})
	for _, s := range result.Generations {
		t.AppendRow(table.Row{
			s.Generation,
			fmt.Sprintf("%0.4f", s.Mean),
			fmt.Sprintf("%0.4f", s.Min),
			fmt.Sprintf("%0.4f", s.Max),
			fmt.Sprintf("%0.4f", s.StdDev),
			fmt.Sprintf("%0.4f", s.Best.Fitness),
		})
	}
	t.AppendFooter(table.Row{"START", "", "", "", "", fmt.Sprintf("%0.4f", result.Start.Fitness)})
	t.Render()

	result.Best.Params.Write(os.Stdout, "Search - Best Parameters")
	return result.Best.Params
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		env := "development"
		os.Setenv("ENV", env)
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	source := os.Getenv("CLASSIFIER_DATASET")
	testRatio := envFloat64("CLASSIFIER_TEST_RATIO", 0.2)
	seed := uint64(envInt("CLASSIFIER_SEED", int(time.Now().UnixNano()&0x7fffffff)))
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	params := model.NewTrainParamsFromDefaults()
	if path, ok := os.LookupEnv("CLASSIFIER_CONFIG"); ok {
		if p, err := model.LoadTrainParams(path); err != nil {
			log.Fatalf("error loading %s: %v", path, err)
		} else {
			params = p
		}
	}

	ctx := context.Background()

	var data dataset.Dataset
	if source == "" {
		source = "synthetic"
		data = dataset.Blobs(rng, [][]float64{{-1, -1}, {1, 1}, {-1, 2}}, 200, 0.4)
	} else {
		cachePath := filepath.Join(os.TempDir(), "classifier-cache.db")
		if p, ok := os.LookupEnv("CLASSIFIER_CACHE"); ok {
			cachePath = p
		}
		cache, err := dataset.OpenCache(cachePath)
		if err != nil {
			log.Fatalf("failed to open dataset cache: %v", err)
		}
		defer cache.Close()

		opts := dataset.DefaultCSVOptions()
		opts.LabelColumn = envInt("CLASSIFIER_LABEL_COLUMN", -1)
		opts.Header = envBool("CLASSIFIER_HEADER", false)

		if d, err := dataset.Load(ctx, source, dataset.NewFetcher(cache), opts); err != nil {
			log.Fatalf("failed to load dataset %s: %v", source, err)
		} else {
			data = dataset.Shuffle(d, rng)
		}
	}

	if data.Len() == 0 {
		log.Fatalf("dataset %s is empty", source)
	}

	train, test := dataset.Split(data, testRatio)
	if envBool("CLASSIFIER_BALANCE", false) {
		train = dataset.Balance(train, rng)
	}
	if envBool("CLASSIFIER_NORMALIZE", true) {
		scaler := dataset.FitScaler(train)
		train, test = scaler.Apply(train), scaler.Apply(test)
	}
	if envBool("CLASSIFIER_BIAS", true) {
		train, test = dataset.AppendBias(train), dataset.AppendBias(test)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Dataset")
	t.AppendRows([]table.Row{
		{"CLASSIFIER_DATASET", source},
		{"CLASSIFIER_TEST_RATIO", fmt.Sprintf("%0.02f", testRatio)},
		{"CLASSIFIER_SEED", fmt.Sprintf("%d", seed)},
		{"Features", fmt.Sprintf("%d", train.NumFeatures())},
		{"Classes", fmt.Sprintf("%d", data.NumClasses())},
		{"Train Samples", fmt.Sprintf("%d", train.Len())},
		{"Test Samples", fmt.Sprintf("%d", test.Len())},
	})
	t.Render()

	params.Write(os.Stdout, "Model Config")

	if envBool("CLASSIFIER_SEARCH", false) {
		params = searchParams(ctx, train, params, seed)
	}

	pw := newProgressWriter(1)
	c := model.NewClassifier(model.WithSeed(seed), model.WithProgress(pw))
	history, err := c.Fit(train.Features, train.Labels, params)
	stopProgressWriter(pw)

	if err != nil {
		log.Fatalf("training error: %v", err)
	}

	if envBool("CLASSIFIER_CHECK_GRADIENT", false) {
		n := min(train.Len(), params.BatchSize)
		if diff, err := model.CheckGradient(train.Features[:n], train.Labels[:n], c.Weights()); err != nil {
			log.Fatalf("gradient check error: %v", err)
		} else {
			log.Printf("gradient check: max abs difference %g", diff)
		}
	}

	if len(history) > 0 {
		mean, std := stat.MeanStdDev(history, nil)
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Loss")
		t.AppendHeader(table.Row{"FIRST", "LAST", "MEAN", "STDDEV"})
		t.AppendRow(table.Row{
			fmt.Sprintf("%.6f", history[0]),
			fmt.Sprintf("%.6f", history[len(history)-1]),
			fmt.Sprintf("%.6f", mean),
			fmt.Sprintf("%.6f", std),
		})
		t.Render()
	}

	if test.Len() == 0 {
		log.Printf("no test samples, skipping evaluation")
		return
	}

	predictions, err := c.Predict(test.Features)
	if err != nil {
		log.Fatalf("prediction error: %v", err)
	}

	report, err := metrics.NewReport(predictions, test.Labels, data.NumClasses())
	if err != nil {
		log.Fatalf("error computing metrics: %v", err)
	}
	report.Write(os.Stdout)

	positive := envInt("CLASSIFIER_POSITIVE_CLASS", data.NumClasses()-1)
	if positive >= 0 && positive < data.NumClasses() {
		binary, err := metrics.BinaryClassificationMetrics(metrics.OneVsRest(predictions, positive), metrics.OneVsRest(test.Labels, positive))
		if err != nil {
			log.Fatalf("error computing binary metrics: %v", err)
		}
		binary.Write(os.Stdout, fmt.Sprintf("Class %d vs Rest", positive))
	}

	if _, ok := os.LookupEnv("MONGO_URL"); ok {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		database, err := db.ConnectMongo(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer database.Client().Disconnect(context.Background())

		run := &db.Run{
			Dataset:     source,
			Params:      params,
			NumFeatures: c.NumFeatures(),
			NumClasses:  c.NumClasses(),
			TrainSize:   train.Len(),
			TestSize:    test.Len(),
			LossHistory: history,
			Accuracy:    report.Accuracy,
			F1Scores:    report.F1Scores,
		}
		if err := db.SaveRun(ctx, database, run); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("saved run %s", run.ID.Hex())
	}
}
