// Package store provides the public facade over the arena-backed B+tree
// index and its Bloom filter guard: Open/Close lifecycle, point and range
// operations, cursors, and snapshot persistence.
package store

import (
	"time"

	"github.com/ssargent/bptreekv/pkg/arena"
	"github.com/ssargent/bptreekv/pkg/bloom"
	"github.com/ssargent/bptreekv/pkg/bptree"
	"github.com/ssargent/bptreekv/pkg/codec"
	"github.com/ssargent/bptreekv/pkg/config"
	"github.com/ssargent/bptreekv/pkg/metrics"
)

// Store is a single-writer/single-reader ordered key-value index. It is not
// safe for concurrent use from multiple goroutines without external
// synchronization.
type Store struct {
	cfg       *config.Config
	arena     *arena.Arena
	bloom     *bloom.Filter
	bloomOpts bloom.Options
	tree      *bptree.Tree
	metrics   *metrics.Collector
	open      bool

	puts    uint64
	gets    uint64
	deletes uint64
}

// Open creates a Store from cfg, loading an existing snapshot from
// cfg.SnapshotPath() if one is present.
func Open(cfg *config.Config) (*Store, error) {
	a, err := arena.New(cfg.ArenaSize)
	if err != nil {
		return nil, err
	}

	bloomOpts := bloom.Options{
		InitialBits:       cfg.BloomInitialBits,
		MaxBits:           cfg.BloomMaxBits,
		GrowthThreshold:   cfg.BloomGrowthThreshold,
		GrowthCheckStride: cfg.BloomGrowthCheckStride,
	}

	s := &Store{
		cfg:       cfg,
		arena:     a,
		bloom:     bloom.New(bloomOpts),
		bloomOpts: bloomOpts,
		tree:      bptree.New(cfg.NodeOrder),
		metrics:   metrics.NewCollector(),
		open:      true,
	}

	snap, err := readSnapshot(cfg.SnapshotPath())
	if err != nil {
		a.Close()
		return nil, err
	}
	if snap != nil {
		if err := s.restore(*snap); err != nil {
			a.Close()
			return nil, err
		}
	}

	return s, nil
}

// restore installs the snapshot's saved Bloom filter, then replays every
// entry through Put, which rebuilds the tree and re-adds each key to the
// installed filter. The replay is what makes the tree whole again; bits the
// replay sets again on top of the installed vector are simply redundant.
func (s *Store) restore(snap codec.Snapshot) error {
	s.bloom = bloom.LoadRawBits(s.bloomOpts, snap.BloomBits, snap.BloomRaw)

	for _, e := range snap.Entries {
		if err := s.Put(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Close writes a snapshot if the store was opened with a data directory
// configured, then releases the arena's backing memory.
func (s *Store) Close() error {
	if !s.open {
		return nil
	}

	if s.cfg.DataDir != "" {
		if err := s.Save(); err != nil {
			return err
		}
	}

	s.open = false
	return s.arena.Close()
}

// Put inserts or overwrites key with value, copying both into the arena so
// the tree holds stable, arena-backed slices rather than caller-owned
// memory.
func (s *Store) Put(key, value []byte) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("put", err == nil, time.Since(start)) }()

	if !s.open {
		return ErrNotOpen
	}
	if len(key) == 0 {
		return ErrInvalidKey
	}

	arenaKey, allocErr := s.arena.CopyBytes(key)
	if allocErr != nil {
		return ErrOutOfMemory
	}
	arenaVal, allocErr := s.arena.CopyBytes(value)
	if allocErr != nil {
		return ErrOutOfMemory
	}

	s.tree.Put(s.arena.Bytes(arenaKey), s.arena.Bytes(arenaVal))

	if s.bloom.Add(s.arena.Bytes(arenaKey)) {
		s.regrowBloom()
	}

	s.puts++
	return nil
}

// regrowBloom swaps in a larger Bloom filter and re-adds every live key —
// Grow clears the vector, so without a replay the filter would forget
// everything inserted before the resize.
func (s *Store) regrowBloom() {
	s.bloom.Grow()
	s.tree.ForEach(func(key, value []byte) bool {
		s.bloom.Add(key)
		return true
	})
}

// Get returns the value for key if it is present and live.
func (s *Store) Get(key []byte) (value []byte, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("get", err == nil, time.Since(start)) }()

	if !s.open {
		return nil, ErrNotOpen
	}
	s.gets++

	if !s.bloom.MaybeContains(key) {
		return nil, ErrNotFound
	}

	v, found := s.tree.Get(key)
	if !found {
		return nil, ErrNotFound
	}
	return v, nil
}

// Exists reports whether key is present and live, without returning its
// value.
func (s *Store) Exists(key []byte) (bool, error) {
	_, err := s.Get(key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete tombstones key. It returns ErrNotFound if key was not present and
// live.
func (s *Store) Delete(key []byte) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("delete", err == nil, time.Since(start)) }()

	if !s.open {
		return ErrNotOpen
	}
	s.deletes++

	if !s.tree.Delete(key) {
		return ErrNotFound
	}
	return nil
}

// ForEach walks every live entry in key order.
func (s *Store) ForEach(fn func(key, value []byte) bool) {
	s.tree.ForEach(fn)
}

// Range walks live entries with from <= key <= to, in key order.
func (s *Store) Range(from, to []byte, fn func(key, value []byte) bool) {
	s.tree.Range(from, to, fn)
}

// Cursor returns a new, unpositioned cursor over the store's current
// entries.
func (s *Store) Cursor() *bptree.Cursor {
	return bptree.NewCursor(s.tree)
}

// Metrics returns the Collector recording this store's operation counters
// and latencies.
func (s *Store) Metrics() *metrics.Collector {
	return s.metrics
}

// Save writes a full snapshot of the Bloom filter and every live entry to
// cfg.SnapshotPath(), atomically.
func (s *Store) Save() error {
	if !s.open {
		return ErrNotOpen
	}

	entries := make([]bptree.Entry, 0, s.tree.Count())
	s.tree.ForEach(func(key, value []byte) bool {
		entries = append(entries, bptree.Entry{Key: key, Value: value})
		return true
	})

	snap := codec.Snapshot{
		BloomBits: s.bloom.Bits(),
		BloomRaw:  s.bloom.RawBits(),
		Entries:   entries,
	}

	return writeSnapshotAtomic(s.cfg.SnapshotPath(), snap)
}

// Stats reports point-in-time counters for the store.
type Stats struct {
	Keys        int
	NodeCount   int
	Height      int
	ArenaUsed   int
	ArenaCap    int
	BloomBits   int
	BloomFill   float64
	PutCount    uint64
	GetCount    uint64
	DeleteCount uint64
}

// Stats returns a snapshot of the store's current size and usage metrics.
func (s *Store) Stats() Stats {
	return Stats{
		Keys:        s.tree.Count(),
		NodeCount:   s.tree.NodeCount(),
		Height:      s.tree.Height(),
		ArenaUsed:   s.arena.Used(),
		ArenaCap:    s.arena.Cap(),
		BloomBits:   s.bloom.Bits(),
		BloomFill:   s.bloom.FillRatio(),
		PutCount:    s.puts,
		GetCount:    s.gets,
		DeleteCount: s.deletes,
	}
}
