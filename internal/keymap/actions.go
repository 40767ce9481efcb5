// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionReload Action = "reload"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionMute        Action = "mute"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionSeekStart   Action = "seek_start"
	ActionSeekEnd     Action = "seek_end"
	ActionSeekPercent Action = "seek_percent" // 0-9, jump to tenths
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
)
