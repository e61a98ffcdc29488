package vocab

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequenceRejectsEmpty(t *testing.T) {
	t.Parallel()
	_, err := NewSequence(nil, false, nil)
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestSequencePreservesOrderWithoutShuffle(t *testing.T) {
	t.Parallel()
	entries := []Entry{{Word: "一"}, {Word: "二"}, {Word: "三"}}
	seq, err := NewSequence(entries, false, nil)
	require.NoError(t, err)

	for i, want := range []string{"一", "二", "三"} {
		assert.Equal(t, want, seq.At(i).Word)
	}
	// Cursor wraps modulo length.
	assert.Equal(t, "一", seq.At(3).Word)
	assert.Equal(t, "二", seq.At(7).Word)
}

func TestSequenceShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	entries := make([]Entry, 16)
	for i := range entries {
		entries[i] = Entry{Word: string(rune('a' + i))}
	}

	a, err := NewSequence(entries, true, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := NewSequence(entries, true, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i), b.At(i))
	}
}

func TestSequenceDoesNotAliasInput(t *testing.T) {
	t.Parallel()
	entries := []Entry{{Word: "一"}, {Word: "二"}}
	seq, err := NewSequence(entries, false, nil)
	require.NoError(t, err)

	entries[0].Word = "mutated"
	assert.Equal(t, "一", seq.At(0).Word)
}
