package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/bptreekv/pkg/codec"
)

// writeSnapshotAtomic encodes snap and publishes it to path by writing a
// ksuid-suffixed temporary file in the same directory, fsyncing it, and
// renaming it over path. A reader never observes a partially written
// snapshot: rename is atomic on the same filesystem, and the old file stays
// intact until the rename succeeds.
func writeSnapshotAtomic(path string, snap codec.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), ksuid.New().String()))

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	bw := bufio.NewWriterSize(f, 64*1024)
	if err := codec.Encode(bw, snap); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	return nil
}

// readSnapshot reads and decodes the snapshot stored at path. It returns
// (nil, nil) if no snapshot exists yet, matching the empty-store-on-first-
// Open case.
func readSnapshot(path string) (*codec.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	defer f.Close()

	snap, err := codec.Decode(bufio.NewReaderSize(f, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &snap, nil
}
