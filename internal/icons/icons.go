package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Audio  string
	Play   string
	Pause  string
	Replay string
	Volume string
	Mute   string
	Error  string
}

var (
	nerdIcons = Icons{
		Audio:  "\uf001 ",     // nf-fa-music
		Play:   "\U000f040a", // nf-md-play
		Pause:  "\U000f03e4", // nf-md-pause
		Replay: "\U000f0459", // nf-md-replay
		Volume: "\U000f057e", // nf-md-volume_high
		Mute:   "\U000f0581", // nf-md-volume_off
		Error:  "\U000f0026", // nf-md-alert
	}

	unicodeIcons = Icons{
		Audio:  "🎵 ",
		Play:   "▶",
		Pause:  "⏸",
		Replay: "↺",
		Volume: "🔊",
		Mute:   "🔇",
		Error:  "⚠",
	}

	noneIcons = Icons{
		Audio:  "",
		Play:   ">",
		Pause:  "||",
		Replay: "<<",
		Volume: "vol",
		Mute:   "mute",
		Error:  "!",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// FormatAudio formats a track title with the appropriate icon.
func FormatAudio(name string) string {
	if current == noneIcons {
		return name
	}
	return current.Audio + name
}

// Play is shown on the transport button while not playing.
func Play() string { return current.Play }

// Pause is shown on the transport button while playing.
func Pause() string { return current.Pause }

// Replay is shown on the transport button once playback has ended.
func Replay() string { return current.Replay }

// Volume returns the unmuted volume icon.
func Volume() string { return current.Volume }

// Mute returns the muted volume icon.
func Mute() string { return current.Mute }

// Error marks a failed load.
func Error() string { return current.Error }
