package keymap

import "strings"

// Contexts a binding applies in.
const (
	ContextGlobal  = "global"
	ContextVerse   = "verse"
	ContextChapter = "chapter"
)

// Binding maps keys to an action. Description is shown in help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains all key bindings.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c", "esc"}, "quit", ContextGlobal},
	{ActionPlayPause, []string{" "}, "play/pause", ContextGlobal},
	{ActionSeekBack, []string{"left", "h"}, "seek -5s", ContextGlobal},
	{ActionSeekForward, []string{"right", "l"}, "seek +5s", ContextGlobal},
	{ActionCycleReciter, []string{"c"}, "reciter", ContextGlobal},
	{ActionTogglePlayerDisplay, []string{"e"}, "expand", ContextGlobal},
	{ActionToggleTheme, []string{"d"}, "theme", ContextGlobal},

	{ActionNext, []string{"n", "down", "j"}, "next verse", ContextVerse},
	{ActionPrev, []string{"p", "up", "k"}, "previous verse", ContextVerse},
	{ActionCycleRepeat, []string{"r"}, "repeat", ContextVerse},
	{ActionRangeStart, []string{"["}, "range start", ContextVerse},
	{ActionRangeEnd, []string{"]"}, "range end", ContextVerse},
	{ActionMemorize, []string{"m"}, "memorize", ContextVerse},
	{ActionPauseLonger, []string{"+", "="}, "longer pause", ContextVerse},
	{ActionPauseShorter, []string{"-"}, "shorter pause", ContextVerse},
	{ActionToggleTafseer, []string{"t"}, "tafseer", ContextVerse},
	{ActionBookmark, []string{"b"}, "bookmark", ContextVerse},

	{ActionNext, []string{"n", "down", "j"}, "next chapter", ContextChapter},
	{ActionPrev, []string{"p", "up", "k"}, "previous chapter", ContextChapter},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForMode returns the global bindings followed by those of context.
func ForMode(context string) []Binding {
	return append(ByContext(ContextGlobal), ByContext(context)...)
}

// HelpLine renders bindings as "key desc · key desc", using the first key
// of each binding.
func HelpLine(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, displayKey(b.Keys[0])+" "+b.Description)
	}
	return strings.Join(parts, " · ")
}

func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return k
}
