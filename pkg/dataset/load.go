package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
)

// Load reads a CSV dataset from a local path or an http(s) URL.
func Load(ctx context.Context, source string, f *Fetcher, opts CSVOptions) (Dataset, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if f == nil {
			f = NewFetcher(nil)
		}
		body, err := f.Fetch(ctx, source)
		if err != nil {
			return Dataset{}, fmt.Errorf("failed to fetch %s: %v", source, err)
		}
		return ReadCSV(bytes.NewReader(body), opts)
	}

	file, err := os.Open(source)
	if err != nil {
		return Dataset{}, err
	}
	defer file.Close()

	return ReadCSV(file, opts)
}
