package clue

import (
	"iter"
	"sync/atomic"
)

// AppendBuffer is a fixed-capacity array that supports appends from many
// goroutines at once. A slot is claimed with an atomic increment of the size,
// so no two writers ever receive the same slot and no lock is taken.
//
// The buffer never grows while it is being filled. Appends past capacity are
// rejected, counted and dropped; callers size the buffer for the worst case.
// Reads are only valid once all writers have finished.
type AppendBuffer[T any] struct {
	data     []T
	size     atomic.Int64
	overflow atomic.Int64
}

// NewAppendBuffer returns an empty buffer with room for capacity elements.
func NewAppendBuffer[T any](capacity int) *AppendBuffer[T] {
	return &AppendBuffer[T]{data: make([]T, max(capacity, 0))}
}

// PushBackUnsafe appends v without synchronization and returns its slot, or
// -1 if the buffer is full. Only use it when no other goroutine is appending.
func (b *AppendBuffer[T]) PushBackUnsafe(v T) int {
	slot := b.size.Load()
	if slot >= int64(len(b.data)) {
		b.overflow.Add(1)
		return -1
	}
	b.data[slot] = v
	b.size.Store(slot + 1)
	return int(slot)
}

// PushBack appends v and returns its slot, or -1 if the buffer is full. It is
// safe to call from many goroutines concurrently. A rejected append leaves
// the stored elements untouched and is recorded in Overflowed.
func (b *AppendBuffer[T]) PushBack(v T) int {
	slot := b.size.Add(1) - 1
	if slot < int64(len(b.data)) {
		b.data[slot] = v
		return int(slot)
	}
	b.size.Add(-1)
	b.overflow.Add(1)
	return -1
}

// Reset empties the buffer but keeps its storage.
func (b *AppendBuffer[T]) Reset() {
	b.size.Store(0)
	b.overflow.Store(0)
}

// Reserve replaces the storage with a fresh array of the given capacity.
// Existing contents are discarded, so call it before filling.
func (b *AppendBuffer[T]) Reserve(capacity int) {
	b.data = make([]T, max(capacity, 0))
	b.size.Store(0)
	b.overflow.Store(0)
}

// Resize sets the logical length without touching storage. It is used when
// the buffer was filled out-of-band (for example through Data).
func (b *AppendBuffer[T]) Resize(size int) {
	b.size.Store(int64(min(max(size, 0), len(b.data))))
}

// ResizeWith adopts data as the backing store, replacing the previous one,
// and sets the logical length to size. The buffer takes ownership of data.
func (b *AppendBuffer[T]) ResizeWith(data []T, size int) {
	b.data = data
	b.overflow.Store(0)
	b.Resize(size)
}

// At returns the element in slot i. No bounds check against Len is made.
func (b *AppendBuffer[T]) At(i int) T { return b.data[i] }

// Set overwrites slot i. No bounds check against Len is made.
func (b *AppendBuffer[T]) Set(i int, v T) { b.data[i] = v }

// Data returns the whole backing array, including unused capacity.
func (b *AppendBuffer[T]) Data() []T { return b.data }

// Values returns the filled prefix of the backing array.
func (b *AppendBuffer[T]) Values() []T { return b.data[:b.Len()] }

// All iterates over the filled slots in order.
func (b *AppendBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range b.Values() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Len returns the number of stored elements.
func (b *AppendBuffer[T]) Len() int {
	// A concurrent rejected PushBack may briefly push size past capacity.
	return int(min(b.size.Load(), int64(len(b.data))))
}

// Cap returns the capacity.
func (b *AppendBuffer[T]) Cap() int { return len(b.data) }

// Empty reports whether nothing is stored.
func (b *AppendBuffer[T]) Empty() bool { return b.Len() == 0 }

// Full reports whether every slot is taken.
func (b *AppendBuffer[T]) Full() bool { return b.Len() == len(b.data) }

// Overflowed returns how many appends were rejected since the last Reset or
// Reserve.
func (b *AppendBuffer[T]) Overflowed() int { return int(b.overflow.Load()) }
