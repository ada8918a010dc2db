package bench

import (
	"encoding/json"
	"math"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Cache stores parsed timing samples keyed by file path. An entry is only
// valid while the file's size and modification time are unchanged.
// A nil *Cache caches nothing.
type Cache struct {
	db *leveldb.DB
}

type cacheEntry struct {
	Size    int64     `json:"size"`
	ModTime int64     `json:"modtime"` // unix ns
	Samples []float64 `json:"samples"`
}

// OpenCache opens or creates the cache database in dir.
func OpenCache(dir string) (*Cache, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{NoSync: true})
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached samples of file if info still matches.
func (c *Cache) Get(file string, info os.FileInfo) ([]float64, bool) {
	if c == nil {
		return nil, false
	}
	enc, err := c.db.Get([]byte(file), nil)
	if err != nil {
		return nil, false
	}
	var e cacheEntry
	if err := json.Unmarshal(enc, &e); err != nil {
		return nil, false
	}
	if e.Size != info.Size() || e.ModTime != info.ModTime().UnixNano() {
		return nil, false
	}
	return e.Samples, true
}

// Put stores the samples of file. Samples that are not finite can't be
// encoded and are not cached.
func (c *Cache) Put(file string, info os.FileInfo, samples []float64) error {
	if c == nil {
		return nil
	}
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}
	enc, err := json.Marshal(&cacheEntry{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
		Samples: samples,
	})
	if err != nil {
		return err
	}
	return c.db.Put([]byte(file), enc, nil)
}
