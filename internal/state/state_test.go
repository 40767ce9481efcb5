package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.db.Close() })
	return m
}

func TestGetVolume_Default(t *testing.T) {
	m := openTestManager(t)

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v.Volume, 1e-9)
	assert.False(t, v.Muted)
}

func TestSaveAndGetVolume(t *testing.T) {
	m := openTestManager(t)

	require.NoError(t, saveVolume(m.db, VolumeState{Volume: 0.35, Muted: true}))
	v, err := getVolume(m.db)
	require.NoError(t, err)
	assert.InDelta(t, 0.35, v.Volume, 1e-9)
	assert.True(t, v.Muted)

	require.NoError(t, saveVolume(m.db, VolumeState{Volume: 0.8}))
	v, err = getVolume(m.db)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, v.Volume, 1e-9)
	assert.False(t, v.Muted)
}

func TestSaveVolume_PendingIsVisible(t *testing.T) {
	m := openTestManager(t)

	m.SaveVolume(0.2, false)
	m.SaveVolume(0.3, true)

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0.3, v.Volume, 1e-9)
	assert.True(t, v.Muted)
}

func TestSaveVolume_FlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	m, err := OpenDB(path)
	require.NoError(t, err)
	m.SaveVolume(0.6, true)
	require.NoError(t, m.Close())

	m, err = OpenDB(path)
	require.NoError(t, err)
	defer m.Close()

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v.Volume, 1e-9)
	assert.True(t, v.Muted)
}

func TestFlush_WritesPendingVolume(t *testing.T) {
	m := openTestManager(t)

	m.SaveVolume(0.2, false)
	require.NoError(t, m.Flush())
	assert.Nil(t, m.pending)

	v, err := getVolume(m.db)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, v.Volume, 1e-9)
	assert.False(t, v.Muted)

	require.NoError(t, m.Flush(), "nothing pending")
}

func TestHistory_Empty(t *testing.T) {
	m := openTestManager(t)

	entries, err := m.History(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordLoad_MostRecentFirst(t *testing.T) {
	m := openTestManager(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, m.RecordLoad(LoadEntry{
		Ref:      "https://example.com/a.mp3",
		Title:    "A",
		Artist:   "Someone",
		Format:   "MP3",
		Duration: 3*time.Minute + 5*time.Second,
		Size:     4_200_000,
		LoadedAt: base,
	}))
	require.NoError(t, m.RecordLoad(LoadEntry{
		Ref:      "/music/b.flac",
		Title:    "B",
		Format:   "FLAC",
		Duration: 90 * time.Second,
		Size:     12_000_000,
		LoadedAt: base.Add(time.Minute),
	}))

	entries, err := m.History(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "B", entries[0].Title)
	assert.Equal(t, "A", entries[1].Title)
	assert.Equal(t, "Someone", entries[1].Artist)
	assert.Equal(t, 3*time.Minute+5*time.Second, entries[1].Duration)
	assert.Equal(t, int64(4_200_000), entries[1].Size)
	assert.True(t, base.Equal(entries[1].LoadedAt))
}

func TestHistory_Limit(t *testing.T) {
	m := openTestManager(t)
	base := time.Now()

	for i := range 5 {
		require.NoError(t, m.RecordLoad(LoadEntry{
			Ref:      "x.wav",
			Title:    string(rune('a' + i)),
			LoadedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := m.History(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e", entries[0].Title)
	assert.Equal(t, "d", entries[1].Title)
}

func TestRecordLoad_TrimsOldEntries(t *testing.T) {
	m := openTestManager(t)
	base := time.Now()

	for i := range maxHistory + 10 {
		require.NoError(t, m.RecordLoad(LoadEntry{
			Ref:      "x.wav",
			Title:    "t",
			LoadedAt: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	var count int
	require.NoError(t, m.db.QueryRow(`SELECT COUNT(*) FROM load_history`).Scan(&count))
	assert.Equal(t, maxHistory, count)
}

func TestInitSchema_Idempotent(t *testing.T) {
	m := openTestManager(t)
	require.NoError(t, initSchema(m.db))
	require.NoError(t, initSchema(m.db))
}

func TestMock(t *testing.T) {
	m := NewMock()

	v, _ := m.GetVolume()
	assert.InDelta(t, 1.0, v.Volume, 1e-9)

	m.SaveVolume(0.5, true)
	v, _ = m.GetVolume()
	assert.True(t, v.Muted)
	assert.Equal(t, 1, m.VolumeSaves())

	require.NoError(t, m.RecordLoad(LoadEntry{Title: "first"}))
	require.NoError(t, m.RecordLoad(LoadEntry{Title: "second"}))
	h, _ := m.History(1)
	require.Len(t, h, 1)
	assert.Equal(t, "second", h[0].Title)

	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
}
