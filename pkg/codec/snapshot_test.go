package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bptreekv/pkg/bptree"
)

func TestSnapshot_EncodeDecodeRoundTrip(t *testing.T) {
	snap := Snapshot{
		BloomBits: 32,
		BloomRaw:  []byte{0x01, 0x02, 0x03, 0x04},
		Entries: []bptree.Entry{
			{Key: []byte("alpha"), Value: []byte("1")},
			{Key: []byte("beta"), Value: []byte("2")},
			{Key: []byte(""), Value: []byte("empty-key")},
			{Key: []byte("binary"), Value: []byte{0x00, 0xff, 0x10}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, snap.BloomBits, got.BloomBits)
	assert.Equal(t, snap.BloomRaw, got.BloomRaw)
	require.Len(t, got.Entries, len(snap.Entries))
	for i := range snap.Entries {
		assert.Equal(t, snap.Entries[i].Key, got.Entries[i].Key)
		assert.Equal(t, snap.Entries[i].Value, got.Entries[i].Value)
	}
}

func TestSnapshot_EmptyEntriesRoundTrip(t *testing.T) {
	snap := Snapshot{BloomBits: 8, BloomRaw: []byte{0xaa}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
	assert.Equal(t, snap.BloomRaw, got.BloomRaw)
}

func TestSnapshot_DecodeRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0})
	_, err := Decode(buf)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestSnapshot_DecodeRejectsTruncatedBloomSection(t *testing.T) {
	snap := Snapshot{BloomBits: 64, BloomRaw: make([]byte, 8)}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	raw := buf.Bytes()[:buf.Len()-4] // drop the last 4 bytes of the bloom vector
	_, err := Decode(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSnapshot_DecodeRejectsTruncatedStream(t *testing.T) {
	snap := Snapshot{Entries: []bptree.Entry{{Key: []byte("longer-key"), Value: []byte("longer-value")}}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	raw := buf.Bytes()[:buf.Len()-5]
	_, err := Decode(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrTruncated)
}
