package index

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// IDSet is a set of vector ids backed by a 32-bit roaring bitmap.
//
// The pre-filter execution path builds one from the metadata scan and
// hands it to SearchRestricted; compressed representation keeps even
// broad filters over large stores cheap to hold and merge.
//
// IDSet is not safe for concurrent mutation. Concurrent reads are fine.
type IDSet struct {
	rb *roaring.Bitmap
}

// NewIDSet creates an empty id set.
func NewIDSet() *IDSet {
	return &IDSet{rb: roaring.New()}
}

// Add inserts an id into the set.
func (s *IDSet) Add(id uint32) {
	s.rb.Add(id)
}

// Remove deletes an id from the set.
func (s *IDSet) Remove(id uint32) {
	s.rb.Remove(id)
}

// Contains reports whether the id is in the set.
func (s *IDSet) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// IsEmpty reports whether the set has no elements.
func (s *IDSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Len returns the number of ids in the set.
func (s *IDSet) Len() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *IDSet) Clone() *IDSet {
	return &IDSet{rb: s.rb.Clone()}
}

// Or merges other into the receiver.
func (s *IDSet) Or(other *IDSet) {
	s.rb.Or(other.rb)
}

// And intersects the receiver with other.
func (s *IDSet) And(other *IDSet) {
	s.rb.And(other.rb)
}

// All iterates the set in ascending id order.
func (s *IDSet) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
