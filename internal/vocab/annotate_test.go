package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateFillsMissingReadings(t *testing.T) {
	ann, err := NewAnnotator()
	require.NoError(t, err)

	in := []Entry{
		{Word: "猫"},
		{Word: "犬", Reading: "いぬ"},
	}
	out := ann.Annotate(in)
	require.Len(t, out, 2)

	assert.Equal(t, "ネコ", out[0].Reading)
	// Existing readings are never overwritten.
	assert.Equal(t, "いぬ", out[1].Reading)
	// Input is untouched.
	assert.Empty(t, in[0].Reading)
}

func TestAnnotateLeavesUnknownWordsAlone(t *testing.T) {
	ann, err := NewAnnotator()
	require.NoError(t, err)

	out := ann.Annotate([]Entry{{Word: "xyzzy"}})
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Reading)
}
