package search

import (
	"encoding/csv"
	"fmt"
)

func writeCSVHeader(writer *csv.Writer) error {
	header := []string{
		"Generation",
		"Started",
		"Duration (s)",

		"Fitness (Mean)", "Fitness (Min)", "Fitness (Max)", "Fitness (StdDev)",

		"Fitness (Best)",
		"CLASSIFIER_BATCH_SIZE (Best)",
		"CLASSIFIER_LEARNING_RATE (Best)",
		"CLASSIFIER_L2_PENALTY (Best)",
		"CLASSIFIER_EPOCHS (Best)",
	}

	if err := writer.Write(header); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}

func writeCSVRow(writer *csv.Writer, s Summary) error {
	row := []string{
		fmt.Sprintf("%d", s.Generation),
		s.Started.Format("2006-01-02T15:04:05"),
		fmt.Sprintf("%0.3f", s.Duration.Seconds()),

		fmt.Sprintf("%0.6f", s.Mean), fmt.Sprintf("%0.6f", s.Min), fmt.Sprintf("%0.6f", s.Max), fmt.Sprintf("%0.6f", s.StdDev),

		fmt.Sprintf("%0.6f", s.Best.Fitness),
		fmt.Sprintf("%d", s.Best.Params.BatchSize),
		fmt.Sprintf("%g", s.Best.Params.LearningRate),
		fmt.Sprintf("%g", s.Best.Params.L2Penalty),
		fmt.Sprintf("%d", s.Best.Params.Epochs),
	}

	if err := writer.Write(row); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}
