package vocab

import (
	"errors"
	"math/rand"
)

// ErrNoEntries is returned when a sequence would be empty.
var ErrNoEntries = errors.New("vocab: no entries")

// Sequence is a non-empty, read-only ordered collection of entries.
//
// It may be permuted once at construction (shuffle) and is never mutated
// afterwards, so it is safe to share across goroutines without locking.
type Sequence struct {
	entries []Entry
}

// NewSequence copies entries into a sequence, optionally shuffling once.
// A nil rng falls back to the global source.
func NewSequence(entries []Entry, shuffle bool, rng *rand.Rand) (*Sequence, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	if shuffle {
		swap := func(i, j int) { cp[i], cp[j] = cp[j], cp[i] }
		if rng != nil {
			rng.Shuffle(len(cp), swap)
		} else {
			rand.Shuffle(len(cp), swap)
		}
	}
	return &Sequence{entries: cp}, nil
}

// Len returns the number of entries.
func (s *Sequence) Len() int { return len(s.entries) }

// At returns the entry at cursor i, wrapping modulo the sequence length.
func (s *Sequence) At(i int) Entry {
	return s.entries[i%len(s.entries)]
}
