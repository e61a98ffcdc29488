package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logx "vocabpop/pkg/logx"
)

func TestOpenDisabled(t *testing.T) {
	t.Parallel()
	for _, driver := range []string{"", "none"} {
		st, err := Open(Config{Driver: driver}, logx.Nop())
		require.NoError(t, err)
		assert.Nil(t, st)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	_, err := Open(Config{Driver: "redis"}, logx.Nop())
	assert.Error(t, err)
}

func TestOpenFileRequiresPath(t *testing.T) {
	t.Parallel()
	_, err := Open(Config{Driver: "file"}, logx.Nop())
	assert.Error(t, err)
}

func sampleRecords(n int) []ShownRecord {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]ShownRecord, n)
	for i := range out {
		out[i] = ShownRecord{
			At:       base.Add(time.Duration(i) * time.Minute),
			Word:     string(rune('a' + i)),
			Title:    string(rune('a' + i)),
			Body:     "body",
			Trigger:  "interval",
			Position: i,
		}
	}
	return out
}

func testRoundtrip(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	for _, r := range sampleRecords(5) {
		require.NoError(t, st.AppendShown(ctx, r))
	}

	got, err := st.RecentShown(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Oldest-first, last three of five.
	assert.Equal(t, "c", got[0].Word)
	assert.Equal(t, "e", got[2].Word)
	assert.Equal(t, "interval", got[0].Trigger)
	assert.Equal(t, 4, got[2].Position)
}

func TestFileStoreRoundtrip(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{Driver: "file", Path: filepath.Join(t.TempDir(), "history.jsonl")}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()

	testRoundtrip(t, st)
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "history.db")}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()

	testRoundtrip(t, st)
}

func TestStoreAppendAfterClose(t *testing.T) {
	t.Parallel()
	stores := map[string]Config{
		"file":   {Driver: "file", Path: "history.jsonl"},
		"sqlite": {Driver: "sqlite", Path: "history.db"},
	}
	for name, cfg := range stores {
		name, cfg := name, cfg
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg.Path = filepath.Join(t.TempDir(), cfg.Path)
			st, err := Open(cfg, logx.Nop())
			require.NoError(t, err)

			require.NoError(t, st.Close())
			// Close is idempotent and a late append fails instead of panicking.
			assert.NoError(t, st.Close())
			assert.Error(t, st.AppendShown(context.Background(), sampleRecords(1)[0]))
		})
	}
}

func TestFileStoreRecentOnMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	st, err := Open(Config{Driver: "file", Path: filepath.Join(dir, "history.jsonl")}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()

	got, err := st.RecentShown(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
