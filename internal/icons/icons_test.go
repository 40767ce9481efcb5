package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		expected Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "invalid", noneIcons},
		{"case sensitive - NERD defaults to none", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			assert.Equal(t, tt.expected, current)
		})
	}
	Init("none")
}

func TestIconSetsComplete(t *testing.T) {
	for name, set := range map[string]Icons{"nerd": nerdIcons, "unicode": unicodeIcons, "none": noneIcons} {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, set.Play)
			assert.NotEmpty(t, set.Pause)
			assert.NotEmpty(t, set.Replay)
			assert.NotEmpty(t, set.Volume)
			assert.NotEmpty(t, set.Mute)
			assert.NotEqual(t, set.Play, set.Pause)
			assert.NotEqual(t, set.Volume, set.Mute)
		})
	}
}

func TestFormatAudio(t *testing.T) {
	t.Cleanup(func() { Init("none") })

	Init("none")
	assert.Equal(t, "Song", FormatAudio("Song"))

	Init("unicode")
	assert.Equal(t, "🎵 Song", FormatAudio("Song"))
	assert.Equal(t, "▶", Play())
	assert.Equal(t, "🔇", Mute())
}
