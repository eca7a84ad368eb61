package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ssargent/bptreekv/pkg/bptree"
)

// Magic identifies a snapshot file's format version.
const Magic uint32 = 0x54504253 // "SBPT" read little-endian

// ErrBadMagic is returned when a stream does not start with Magic.
var ErrBadMagic = fmt.Errorf("codec: bad snapshot magic")

// ErrTruncated is returned when a snapshot ends before its declared entry
// count or bloom section is fully read.
var ErrTruncated = fmt.Errorf("codec: snapshot truncated")

// Snapshot is the decoded form of a stored index: the Bloom filter's raw bit
// vector plus every live entry, in the order they were written.
type Snapshot struct {
	BloomBits int
	BloomRaw  []byte
	Entries   []bptree.Entry
}

// Encode writes a Snapshot to w as: 4-byte magic, entry count and Bloom bit
// count as 8-byte (size-sized) unsigned integers, the raw Bloom bit vector,
// then each live entry as 4-byte key length, 4-byte value length, key
// bytes, value bytes. Everything is little-endian.
func Encode(w io.Writer, snap Snapshot) error {
	bw := bufio.NewWriter(w)

	if err := writeUint32(bw, Magic); err != nil {
		return err
	}
	if err := writeUint64(bw, uint64(len(snap.Entries))); err != nil {
		return err
	}
	if err := writeUint64(bw, uint64(snap.BloomBits)); err != nil {
		return err
	}
	if _, err := bw.Write(snap.BloomRaw); err != nil {
		return err
	}

	for _, e := range snap.Entries {
		if err := writeUint32(bw, uint32(len(e.Key))); err != nil {
			return err
		}
		if err := writeUint32(bw, uint32(len(e.Value))); err != nil {
			return err
		}
		if _, err := bw.Write(e.Key); err != nil {
			return err
		}
		if _, err := bw.Write(e.Value); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Decode reads a Snapshot from r, validating the magic number before
// reading the Bloom vector and entry stream.
func Decode(r io.Reader) (Snapshot, error) {
	br := bufio.NewReader(r)

	magic, err := readUint32(br)
	if err != nil {
		return Snapshot{}, fmt.Errorf("codec: read magic: %w", err)
	}
	if magic != Magic {
		return Snapshot{}, ErrBadMagic
	}

	count, err := readUint64(br)
	if err != nil {
		return Snapshot{}, ErrTruncated
	}

	bloomBits, err := readUint64(br)
	if err != nil {
		return Snapshot{}, ErrTruncated
	}

	bloomRaw := make([]byte, bloomBits/8)
	if _, err := io.ReadFull(br, bloomRaw); err != nil {
		return Snapshot{}, ErrTruncated
	}

	snap := Snapshot{
		BloomBits: int(bloomBits),
		BloomRaw:  bloomRaw,
		Entries:   make([]bptree.Entry, 0, count),
	}

	for i := uint64(0); i < count; i++ {
		keyLen, err := readUint32(br)
		if err != nil {
			return Snapshot{}, ErrTruncated
		}
		valLen, err := readUint32(br)
		if err != nil {
			return Snapshot{}, ErrTruncated
		}

		key := make([]byte, keyLen)
		if _, err := io.ReadFull(br, key); err != nil {
			return Snapshot{}, ErrTruncated
		}
		val := make([]byte, valLen)
		if _, err := io.ReadFull(br, val); err != nil {
			return Snapshot{}, ErrTruncated
		}

		snap.Entries = append(snap.Entries, bptree.Entry{Key: key, Value: val})
	}

	return snap, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
