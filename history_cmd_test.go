package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/state"
)

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, nil))
	assert.Equal(t, "No sources loaded yet.\n", buf.String())
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	entries := []state.LoadEntry{
		{
			Ref:      "https://example.com/a.mp3",
			Title:    "Song",
			Artist:   "Band",
			Format:   "MP3",
			Duration: 3*time.Minute + 4*time.Second,
			Size:     4_200_000,
			LoadedAt: time.Now().Add(-2 * time.Hour),
		},
	}

	require.NoError(t, printHistory(&buf, entries))

	out := buf.String()
	assert.Contains(t, out, "WHEN")
	assert.Contains(t, out, "Band - Song")
	assert.Contains(t, out, "3:04")
	assert.Contains(t, out, "4.2 MB")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "https://example.com/a.mp3")
}
