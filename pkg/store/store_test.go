package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bptreekv/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.ArenaSize = 8 << 20
	cfg.NodeOrder = 8
	return cfg
}

func TestStore_PutThenGetRoundTrips(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put([]byte("hello"), []byte("world")))

	v, err := s.Get([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), v)
}

func TestStore_GetMissingKeyReturnsNotFound(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get([]byte("missing"))
	assert.Equal(t, ErrNotFound, err)
}

func TestStore_PutRejectsEmptyKey(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	err = s.Put(nil, []byte("v"))
	assert.Equal(t, ErrInvalidKey, err)
}

func TestStore_DeleteThenGetReturnsNotFound(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	require.NoError(t, s.Delete([]byte("k")))

	_, err = s.Get([]byte("k"))
	assert.Equal(t, ErrNotFound, err)
}

func TestStore_DeleteMissingKeyReturnsNotFound(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, ErrNotFound, s.Delete([]byte("nope")))
}

func TestStore_ExistsReflectsLiveness(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	ok, err := s.Exists([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	ok, err = s.Exists([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete([]byte("k")))
	ok, err = s.Exists([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_OperationsFailAfterClose(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Put([]byte("k"), []byte("v"))
	assert.Equal(t, ErrNotOpen, err)

	_, err = s.Get([]byte("k"))
	assert.Equal(t, ErrNotOpen, err)
}

func TestStore_ForEachAndRangeWalkInOrder(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	for _, k := range []string{"d", "b", "c", "a", "e"} {
		require.NoError(t, s.Put([]byte(k), []byte(k)))
	}

	var all []string
	s.ForEach(func(k, v []byte) bool {
		all = append(all, string(k))
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, all)

	var ranged []string
	s.Range([]byte("b"), []byte("d"), func(k, v []byte) bool {
		ranged = append(ranged, string(k))
		return true
	})
	assert.Equal(t, []string{"b", "c", "d"}, ranged)
}

func TestStore_CursorWalksLiveEntries(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Put([]byte(k), []byte(k)))
	}
	require.NoError(t, s.Delete([]byte("b")))

	c := s.Cursor()
	require.True(t, c.First())
	assert.Equal(t, []byte("a"), c.Key())
	require.True(t, c.Next())
	assert.Equal(t, []byte("c"), c.Key())
	assert.False(t, c.Next())
}

func TestStore_SaveThenOpenRestoresEntries(t *testing.T) {
	cfg := testConfig(t)
	s, err := Open(cfg)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("key-%03d", i)
		require.NoError(t, s.Put([]byte(k), []byte(fmt.Sprintf("val-%d", i))))
	}
	require.NoError(t, s.Close())

	restored, err := Open(cfg)
	require.NoError(t, err)
	defer restored.Close()

	assert.Equal(t, 50, restored.Stats().Keys)
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("key-%03d", i)
		v, err := restored.Get([]byte(k))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("val-%d", i), string(v))
	}
}

func TestStore_SaveIsAtomicViaTempFileRename(t *testing.T) {
	cfg := testConfig(t)
	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(cfg.DataDir)
	require.NoError(t, err)

	var sawTemp bool
	var sawFinal bool
	for _, e := range entries {
		if e.Name() == filepath.Base(cfg.SnapshotPath()) {
			sawFinal = true
		}
		if filepath.Ext(e.Name()) == ".tmp" {
			sawTemp = true
		}
	}
	assert.True(t, sawFinal, "snapshot file must exist after Save")
	assert.False(t, sawTemp, "temp file must be renamed away, not left behind")
}

func TestStore_StatsReflectActivity(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Put([]byte("b"), []byte("2")))
	_, _ = s.Get([]byte("a"))
	_ = s.Delete([]byte("a"))

	stats := s.Stats()
	assert.Equal(t, 1, stats.Keys)
	assert.Equal(t, uint64(2), stats.PutCount)
	assert.Equal(t, uint64(1), stats.GetCount)
	assert.Equal(t, uint64(1), stats.DeleteCount)
	assert.Greater(t, stats.ArenaUsed, 0)
}

func TestStore_BloomFilterGrowsUnderHeavyLoad(t *testing.T) {
	cfg := testConfig(t)
	cfg.BloomInitialBits = 64
	cfg.BloomGrowthCheckStride = 1
	cfg.ArenaSize = 16 << 20
	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	initialBits := s.Stats().BloomBits
	for i := 0; i < 2000; i++ {
		require.NoError(t, s.Put([]byte(fmt.Sprintf("k%d", i)), []byte{byte(i)}))
	}

	assert.Greater(t, s.Stats().BloomBits, initialBits)

	for i := 0; i < 2000; i++ {
		k := fmt.Sprintf("k%d", i)
		_, err := s.Get([]byte(k))
		require.NoError(t, err, "key %s must survive bloom regrowth", k)
	}
}
