package playerbar

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/wavelet/internal/audio"
	"github.com/llehouerou/wavelet/internal/audio/audiotest"
	"github.com/llehouerou/wavelet/internal/engine"
	"github.com/llehouerou/wavelet/internal/icons"
	"github.com/llehouerou/wavelet/internal/transport"
)

func playingState() State {
	return State{
		Phase:    transport.PhasePlaying,
		Title:    "Blue in Green",
		Artist:   "Miles Davis",
		Elapsed:  83 * time.Second,
		Duration: 238 * time.Second,
		Progress: 34.9,
		Volume:   0.8,
	}
}

// contentLine returns the line between the borders.
func contentLine(t *testing.T, out string) string {
	t.Helper()
	lines := strings.Split(out, "\n")
	if len(lines) != Height {
		t.Fatalf("expected %d lines, got %d", Height, len(lines))
	}
	return lines[1]
}

func TestRender_Playing(t *testing.T) {
	icons.Init("none")

	out := Render(playingState(), 100)

	assert.Contains(t, out, "Blue in Green")
	assert.Contains(t, out, "Miles Davis")
	assert.Contains(t, out, "1:23 / 3:58")
	assert.Contains(t, out, " 80%")
	assert.Contains(t, out, icons.Pause())
	line := contentLine(t, out)
	assert.Contains(t, line, filledBlock)
	assert.Contains(t, line, emptyBlock)
}

func TestRender_FitsWidth(t *testing.T) {
	icons.Init("none")

	for _, width := range []int{40, 60, 80, 120} {
		out := Render(playingState(), width)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), width, "width %d", width)
		}
		assert.Len(t, strings.Split(out, "\n"), Height, "width %d", width)
	}
}

func TestRender_NarrowDropsArtist(t *testing.T) {
	icons.Init("none")

	out := Render(playingState(), 60)
	assert.NotContains(t, out, "Miles Davis")
	assert.Contains(t, out, "1:23 / 3:58")
}

func TestRender_Muted(t *testing.T) {
	icons.Init("none")
	s := playingState()
	s.Muted = true

	out := Render(s, 100)
	assert.Contains(t, out, icons.Mute())
	assert.Contains(t, out, " 80%", "level kept while muted")
}

func TestRender_EndedShowsFullDuration(t *testing.T) {
	icons.Init("none")
	s := playingState()
	s.Phase = transport.PhaseEnded
	s.Elapsed = s.Duration
	s.Progress = 100

	out := Render(s, 100)
	assert.Contains(t, out, "3:58 / 3:58")
	assert.Contains(t, out, icons.Replay())
	assert.NotContains(t, contentLine(t, out), emptyBlock)
}

func TestRender_EmptyStates(t *testing.T) {
	icons.Init("none")

	assert.Contains(t, Render(State{}, 80), "No audio loaded")
	assert.Contains(t, Render(State{Loading: "⠋"}, 80), "Loading")
	assert.Contains(t, Render(State{Err: "Failed to load audio: 404"}, 80), "Failed to load audio: 404")
}

func TestButton(t *testing.T) {
	icons.Init("none")

	tests := []struct {
		phase transport.Phase
		want  string
	}{
		{transport.PhaseLoaded, icons.Play()},
		{transport.PhasePaused, icons.Play()},
		{transport.PhasePlaying, icons.Pause()},
		{transport.PhaseEnded, icons.Replay()},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Button(tt.phase))
		})
	}
}

func TestFilledCells(t *testing.T) {
	tests := []struct {
		progress float64
		width    int
		want     int
	}{
		{0, 10, 0},
		{50, 10, 5},
		{99, 10, 9},
		{100, 10, 10},
		{150, 10, 10},
		{-5, 10, 0},
		{50, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FilledCells(tt.progress, tt.width), "%v%% of %d", tt.progress, tt.width)
	}
}

func TestNewState(t *testing.T) {
	eng := engine.NewMock()
	c := transport.New(eng, nil, log.New(io.Discard))
	c.Load(audiotest.AssetWithInfo(10*time.Second, audio.Info{Title: "Tone", Artist: "Gen", Kind: audio.KindWAV}))
	c.SetVolume(0.5)
	c.Play()
	eng.Advance(4 * time.Second)

	s := NewState(c)

	assert.Equal(t, transport.PhasePlaying, s.Phase)
	assert.Equal(t, "Tone", s.Title)
	assert.Equal(t, "Gen", s.Artist)
	assert.Equal(t, "WAV", s.Format)
	assert.Equal(t, 4*time.Second, s.Elapsed)
	assert.Equal(t, 10*time.Second, s.Duration)
	assert.InDelta(t, 40.0, s.Progress, 1e-9)
	assert.InDelta(t, 0.5, s.Volume, 1e-9)
	assert.False(t, s.NoAudio)
}
