// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlayVerse   Op = "play verse"
	OpPlayChapter Op = "play chapter"
	OpReplay      Op = "replay verse"
	OpSeek        Op = "seek"
	OpToggle      Op = "toggle playback"

	// Reciter operations
	OpReciterSave    Op = "save reciter"
	OpReciterRestore Op = "restore reciter"

	// Catalogue operations
	OpChaptersLoad     Op = "load chapters"
	OpVersesLoad       Op = "load verses"
	OpTranslationsLoad Op = "load translations"
	OpTafseerLoad      Op = "load tafseer"

	// Stored data
	OpSettingsLoad   Op = "load settings"
	OpSettingsSave   Op = "save settings"
	OpBookmarkAdd    Op = "add bookmark"
	OpBookmarkRemove Op = "remove bookmark"
	OpCitySave       Op = "save city"

	// Initialization
	OpInitialize Op = "initialize application"
)

// PlaybackUnavailable is shown when a recitation cannot be fetched or decoded.
const PlaybackUnavailable = "Could not play the recitation. Please check your internet connection."

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
