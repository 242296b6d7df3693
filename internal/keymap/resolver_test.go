package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "quit", ContextGlobal},
		{ActionPlayPause, []string{" "}, "play/pause", ContextGlobal},
		{ActionNext, []string{"n", "down"}, "next verse", ContextVerse},
		{ActionMemorize, []string{"m"}, "memorize", ContextVerse},
	})

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"n", ActionNext},
		{"down", ActionNext},
		{"m", ActionMemorize},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if result := r.Resolve(tt.key); result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "quit", ContextGlobal},
		{ActionBookmark, []string{"b"}, "bookmark", ContextVerse},
	})

	tests := []struct {
		action   Action
		expected []string
	}{
		{ActionQuit, []string{"q", "ctrl+c"}},
		{ActionBookmark, []string{"b"}},
		{Action("unknown"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			result := r.KeysFor(tt.action)
			if tt.expected == nil {
				if result != nil {
					t.Errorf("KeysFor(%q) = %v, want nil", tt.action, result)
				}
				return
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("KeysFor(%q) = %v, want %v", tt.action, result, tt.expected)
			}
		})
	}
}

func TestResolver_DeduplicatesKeys(t *testing.T) {
	r := NewResolver(append(ByContext(ContextVerse), ByContext(ContextChapter)...))

	keys := r.KeysFor(ActionNext)

	if !slices.Equal(keys, []string{"n", "down", "j"}) {
		t.Errorf("KeysFor(ActionNext) = %v, want each key once", keys)
	}
}

func TestResolver_ModeBindings(t *testing.T) {
	verse := NewResolver(ForMode(ContextVerse))
	chapter := NewResolver(ForMode(ContextChapter))

	if a := verse.Resolve(" "); a != ActionPlayPause {
		t.Errorf("verse Resolve(' ') = %q, want %q", a, ActionPlayPause)
	}
	if a := verse.Resolve("r"); a != ActionCycleRepeat {
		t.Errorf("verse Resolve('r') = %q, want %q", a, ActionCycleRepeat)
	}
	if a := chapter.Resolve("r"); a != "" {
		t.Errorf("chapter Resolve('r') = %q, want unbound", a)
	}
	if a := chapter.Resolve("n"); a != ActionNext {
		t.Errorf("chapter Resolve('n') = %q, want %q", a, ActionNext)
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"with duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"empty slice", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := dedupe(tt.input); !slices.Equal(result, tt.expected) {
				t.Errorf("dedupe(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver(nil)

	if action := r.Resolve("q"); action != "" {
		t.Errorf("Resolve on empty resolver should return empty, got %q", action)
	}
	if keys := r.KeysFor(ActionQuit); keys != nil {
		t.Errorf("KeysFor on empty resolver should return nil, got %v", keys)
	}
}
