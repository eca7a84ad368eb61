// Package codec implements the on-disk snapshot format for the key-value
// store: a whole-index serialization of the Bloom filter and every live
// B+tree entry, written and read atomically by the store package.
//
// # Snapshot Format
//
//	[Magic(4)][EntryCount(8)][BloomBits(8)][BloomRaw(BloomBits/8)]
//	then EntryCount times: [KeyLen(4)][ValueLen(4)][Key][Value]
//
// All integers are little-endian. EntryCount and BloomBits are 8-byte
// (size-sized) fields; key and value lengths are 4 bytes each. A magic
// mismatch or a stream that ends before its declared entry count or Bloom
// section is fully read is a load failure.
//
// Entries are written in leaf order, so loading a snapshot reproduces the
// index's original key ordering by replaying each entry through a normal
// put rather than reconstructing node structure directly.
package codec
