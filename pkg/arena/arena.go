// Package arena provides a bump allocator used to back B+tree entries and
// the key/value bytes they point at.
//
// Index nodes hold stable references into the arena, so memory returned by
// Alloc must never move for the lifetime of the Arena. Individual
// allocations cannot be freed; the whole pool is released together when the
// Arena is closed. This matches the store's single-writer, snapshot-based
// durability model: there is no compaction, so nothing ever needs to give
// memory back mid-life.
package arena

import "errors"

// ErrExhausted is returned when an allocation would exceed the arena's
// fixed capacity.
var ErrExhausted = errors.New("arena: pool exhausted")

// align is the byte alignment applied to every allocation.
const align = 8

// Ref is a stable, relocatable handle into an Arena's backing pool. Unlike a
// raw pointer, a Ref survives being copied into node key/entry arrays
// without pinning Go's GC to a specific address; Bytes resolves it back to a
// slice on demand (design note: arena + offset, not arena + pointer).
type Ref struct {
	offset uint32
	length uint32
}

// IsZero reports whether r is the zero Ref (used as "no value").
func (r Ref) IsZero() bool {
	return r.offset == 0 && r.length == 0
}

// Len returns the byte length the Ref was allocated with.
func (r Ref) Len() int {
	return int(r.length)
}

// Arena is a forward-only byte pool. A zero Arena is not usable; construct
// one with New.
type Arena struct {
	pool  []byte
	next  uint32
	close func() error
}

// New allocates a pool of the given size, preferring an anonymous memory
// mapping (see pool_unix.go) and falling back to a heap slice on platforms
// without one (see pool_fallback.go).
func New(size int) (*Arena, error) {
	if size <= 0 {
		size = 1
	}
	pool, closer, err := newPool(size)
	if err != nil {
		return nil, err
	}
	return &Arena{pool: pool, close: closer}, nil
}

// Alloc reserves size bytes, rounded up to an 8-byte boundary, and returns a
// stable Ref to them. The bytes are zeroed. Alloc never moves existing
// allocations, so Refs returned earlier remain valid.
func (a *Arena) Alloc(size int) (Ref, error) {
	if size < 0 {
		return Ref{}, errors.New("arena: negative size")
	}
	aligned := alignUp(size)
	if uint64(a.next)+uint64(aligned) > uint64(len(a.pool)) {
		return Ref{}, ErrExhausted
	}
	off := a.next
	a.next += uint32(aligned)
	return Ref{offset: off, length: uint32(size)}, nil
}

// CopyBytes allocates len(data) bytes and copies data into them, returning
// the Ref. It is the usual way keys and values enter the arena.
func (a *Arena) CopyBytes(data []byte) (Ref, error) {
	ref, err := a.Alloc(len(data))
	if err != nil {
		return Ref{}, err
	}
	copy(a.Bytes(ref), data)
	return ref, nil
}

// Bytes resolves ref to the live slice it refers to. The slice is valid
// until the Arena is closed; callers that need to outlive the next mutation
// must copy it.
func (a *Arena) Bytes(ref Ref) []byte {
	return a.pool[ref.offset : ref.offset+ref.length]
}

// Used returns the number of bytes handed out so far, including alignment
// padding.
func (a *Arena) Used() int {
	return int(a.next)
}

// Cap returns the arena's total capacity in bytes.
func (a *Arena) Cap() int {
	return len(a.pool)
}

// Close releases the backing pool. Every Ref issued by this Arena is
// invalid afterward.
func (a *Arena) Close() error {
	if a.close == nil {
		return nil
	}
	closer := a.close
	a.close = nil
	return closer()
}

func alignUp(n int) int {
	return (n + align - 1) &^ (align - 1)
}
