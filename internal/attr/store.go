package attr

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrReleased is returned when writing to a released store.
var ErrReleased = errors.New("attr: store has been released")

// Result reports how a write was stored.
type Result int

const (
	// Reallocated means a new array was registered, replacing any previous one.
	Reallocated Result = iota
	// Reused means the values were copied into the existing storage.
	Reused
)

// String returns the string representation of Result.
func (r Result) String() string {
	switch r {
	case Reallocated:
		return "Reallocated"
	case Reused:
		return "Reused"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Stats counts store writes by outcome.
type Stats struct {
	Reuses        int
	Reallocations int
}

// Store owns named attribute arrays and one index array.
type Store struct {
	step     gputypes.VertexStepMode
	arrays   map[string]*Array
	order    []string
	index    *IndexArray
	stats    Stats
	released bool
}

// NewStore creates an empty store whose arrays step per vertex or per
// instance according to step.
func NewStore(step gputypes.VertexStepMode) *Store {
	return &Store{
		step:   step,
		arrays: make(map[string]*Array),
	}
}

// SetOrUpdate stores data under name. If an array with the same total length
// and item size is registered, data is copied into it and the array keeps its
// identity. Otherwise the previous array is released and a new one takes
// ownership of data.
func (s *Store) SetOrUpdate(name string, data []float32, itemSize int) (Result, error) {
	if s.released {
		return Reallocated, ErrReleased
	}
	if itemSize < 1 || itemSize > 4 {
		return Reallocated, fmt.Errorf("attr: %s: invalid item size %d", name, itemSize)
	}
	if len(data)%itemSize != 0 {
		return Reallocated, fmt.Errorf("attr: %s: length %d is not a multiple of item size %d", name, len(data), itemSize)
	}

	if old, ok := s.arrays[name]; ok {
		if old.itemSize == itemSize && len(old.data) == len(data) {
			copy(old.data, data)
			old.MarkDirty()
			s.stats.Reuses++
			return Reused, nil
		}
		old.release()
	} else {
		s.order = append(s.order, name)
	}
	s.arrays[name] = newArray(name, data, itemSize, s.step)
	s.stats.Reallocations++
	return Reallocated, nil
}

// Allocate registers a zero-filled array of count items, reusing the existing
// storage when the size matches. Reused storage is zeroed.
func (s *Store) Allocate(name string, count, itemSize int) (Result, error) {
	if old, ok := s.arrays[name]; ok && !s.released && old.itemSize == itemSize && old.Count() == count {
		clear(old.data)
		old.MarkDirty()
		s.stats.Reuses++
		return Reused, nil
	}
	return s.SetOrUpdate(name, make([]float32, count*itemSize), itemSize)
}

// Array returns the array registered under name, or nil.
func (s *Store) Array(name string) *Array {
	return s.arrays[name]
}

// Names returns the registered names in registration order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Arrays returns the registered arrays in registration order.
func (s *Store) Arrays() []*Array {
	out := make([]*Array, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.arrays[name])
	}
	return out
}

// Remove releases and unregisters the array under name.
func (s *Store) Remove(name string) bool {
	a, ok := s.arrays[name]
	if !ok {
		return false
	}
	a.release()
	delete(s.arrays, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// SetIndices stores idx in the given format. The existing index array is
// reused when it holds the same number of indices in the same element width.
func (s *Store) SetIndices(idx []uint32, format gputypes.IndexFormat) (Result, error) {
	if s.released {
		return Reallocated, ErrReleased
	}
	if format != gputypes.IndexFormatUint16 && format != gputypes.IndexFormatUint32 {
		return Reallocated, fmt.Errorf("attr: invalid index format %v", format)
	}
	if s.index != nil {
		if s.index.format == format && s.index.Len() == len(idx) {
			s.index.copyFrom(idx)
			s.index.version++
			s.index.dirty = true
			s.stats.Reuses++
			return Reused, nil
		}
		s.index.release()
	}
	s.index = newIndexArray(idx, format)
	s.stats.Reallocations++
	return Reallocated, nil
}

// Index returns the index array, or nil if none was set.
func (s *Store) Index() *IndexArray { return s.index }

// Dirty returns the names of dirty arrays in registration order.
func (s *Store) Dirty() []string {
	var out []string
	for _, name := range s.order {
		if s.arrays[name].dirty {
			out = append(out, name)
		}
	}
	return out
}

// ClearDirty clears the dirty flag of every array and the index array.
func (s *Store) ClearDirty() {
	for _, a := range s.arrays {
		a.dirty = false
	}
	if s.index != nil {
		s.index.dirty = false
	}
}

// Stats returns write counters.
func (s *Store) Stats() Stats { return s.stats }

// Released reports whether Release was called.
func (s *Store) Released() bool { return s.released }

// Release drops every array. The store rejects further writes.
func (s *Store) Release() {
	for _, a := range s.arrays {
		a.release()
	}
	if s.index != nil {
		s.index.release()
	}
	s.arrays = map[string]*Array{}
	s.order = nil
	s.index = nil
	s.released = true
}
