package dataset

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads dataset files over HTTP, consulting Cache first when it
// is set.
type Fetcher struct {
	client *resty.Client
	Cache  *Cache
}

func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		client: resty.New().
			SetTimeout(time.Minute).
			SetRetryCount(2).
			SetRetryWaitTime(200 * time.Millisecond),
		Cache: cache,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.Cache != nil {
		if body, ok, err := f.Cache.Get(url); err != nil {
			log.Printf("dataset cache read error for %s: %v", url, err)
		} else if ok {
			return body, nil
		}
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("api error: %s returned %s", url, resp.Status())
	}

	body := resp.Body()
	if f.Cache != nil {
		if err := f.Cache.Put(url, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}
