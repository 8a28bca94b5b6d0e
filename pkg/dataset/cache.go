package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const cachePrefix = "dataset-"

// Cache keeps fetched dataset bodies in a leveldb database keyed by URL.
type Cache struct {
	db     *leveldb.DB
	MaxAge time.Duration
}

type cacheEntry struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetchedAt"`
	Body      []byte    `json:"body"`
}

func OpenCache(path string) (*Cache, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached body for url. Entries older than MaxAge, when set,
// are reported as missing.
func (c *Cache) Get(url string) ([]byte, bool, error) {
	b, err := c.db.Get([]byte(cachePrefix+url), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, false, fmt.Errorf("error unmarshalling cache entry: %v", err)
	}
	if c.MaxAge > 0 && time.Since(entry.FetchedAt) > c.MaxAge {
		return nil, false, nil
	}
	return entry.Body, true, nil
}

func (c *Cache) Put(url string, body []byte) error {
	b, err := json.Marshal(cacheEntry{URL: url, FetchedAt: time.Now(), Body: body})
	if err != nil {
		return fmt.Errorf("error marshalling cache entry: %v", err)
	}
	if err := c.db.Put([]byte(cachePrefix+url), b, nil); err != nil {
		return fmt.Errorf("error storing cache entry: %v", err)
	}
	return nil
}

// URLs lists every cached URL.
func (c *Cache) URLs() ([]string, error) {
	iter := c.db.NewIterator(util.BytesPrefix([]byte(cachePrefix)), nil)
	defer iter.Release()

	out := []string{}
	for iter.Next() {
		out = append(out, string(iter.Key()[len(cachePrefix):]))
	}
	return out, iter.Error()
}
