// Package keymap defines the TUI key bindings and resolves keys to actions.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit                Action = "quit"
	ActionPlayPause           Action = "play_pause"
	ActionSeekForward         Action = "seek_forward"
	ActionSeekBack            Action = "seek_back"
	ActionCycleReciter        Action = "cycle_reciter"
	ActionTogglePlayerDisplay Action = "toggle_player_display"
	ActionToggleTheme         Action = "toggle_theme"

	// Next/previous verse or chapter, depending on the mode
	ActionNext Action = "next"
	ActionPrev Action = "prev"

	// Verse mode
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionRangeStart    Action = "range_start"
	ActionRangeEnd      Action = "range_end"
	ActionMemorize      Action = "memorize"
	ActionPauseLonger   Action = "pause_longer"
	ActionPauseShorter  Action = "pause_shorter"
	ActionToggleTafseer Action = "toggle_tafseer"
	ActionBookmark      Action = "bookmark"
)
