package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type CSVOptions struct {
	// LabelColumn is the index of the label column; negative values count
	// from the end, so -1 is the last column.
	LabelColumn int
	Header      bool
	Comma       rune
}

func DefaultCSVOptions() CSVOptions {
	return CSVOptions{LabelColumn: -1, Comma: ','}
}

// ReadCSV parses numeric rows with one integer class label column.
func ReadCSV(r io.Reader, opts CSVOptions) (Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true

	d := Dataset{}
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return Dataset{}, fmt.Errorf("error reading csv: %v", err)
		}
		line++
		if line == 1 && opts.Header {
			continue
		}

		labelColumn := opts.LabelColumn
		if labelColumn < 0 {
			labelColumn += len(record)
		}
		if labelColumn < 0 || labelColumn >= len(record) {
			return Dataset{}, fmt.Errorf("line %d: label column %d out of range: %w", line, opts.LabelColumn, ErrInvalidDataset)
		}

		features := make([]float64, 0, len(record)-1)
		for i, field := range record {
			field = strings.TrimSpace(field)
			if i == labelColumn {
				label, err := strconv.Atoi(field)
				if err != nil {
					return Dataset{}, fmt.Errorf("line %d: invalid label %q: %v", line, field, err)
				}
				d.Labels = append(d.Labels, label)
				continue
			}
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("line %d: invalid feature %q: %v", line, field, err)
			}
			features = append(features, value)
		}
		d.Features = append(d.Features, features)
	}

	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}
