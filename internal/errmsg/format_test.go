//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlayVerse,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlayVerse,
			err:      errors.New("connection refused"),
			expected: "Failed to play verse: connection refused",
		},
		{
			name:     "chapter playback",
			op:       OpPlayChapter,
			err:      errors.New("unexpected status: 404 Not Found"),
			expected: "Failed to play chapter: unexpected status: 404 Not Found",
		},
		{
			name:     "catalogue operation",
			op:       OpChaptersLoad,
			err:      errors.New("timeout"),
			expected: "Failed to load chapters: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTafseerLoad,
			context:  "2:255",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpTafseerLoad,
			context:  "2:255",
			err:      errors.New("not found"),
			expected: "Failed to load tafseer '2:255': not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpReciterSave,
			context:  "",
			err:      errors.New("database is locked"),
			expected: "Failed to save reciter: database is locked",
		},
		{
			name:     "bookmark with verse context",
			op:       OpBookmarkAdd,
			context:  "18:10",
			err:      errors.New("disk full"),
			expected: "Failed to add bookmark '18:10': disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlayVerse, OpPlayChapter, OpReplay, OpSeek, OpToggle,
		OpReciterSave, OpReciterRestore,
		OpChaptersLoad, OpVersesLoad, OpTranslationsLoad, OpTafseerLoad,
		OpSettingsLoad, OpSettingsSave, OpBookmarkAdd, OpBookmarkRemove, OpCitySave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
