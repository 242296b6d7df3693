// Package notify shows playback alerts as desktop notifications.
package notify

const (
	appName      = "QuranPulse"
	desktopEntry = "quranpulse"
)

// Severity ranks an alert.
type Severity int

const (
	SeverityInfo Severity = iota
	// SeverityError alerts stay on screen until dismissed or replaced.
	SeverityError
)

// Alert is a message for the user.
type Alert struct {
	Severity Severity
	Title    string
	Body     string
}

// Notifier keeps at most one alert on screen. Show replaces the alert
// already shown and Dismiss removes it.
type Notifier interface {
	Show(a Alert) error
	Dismiss() error
}

// discard drops alerts when no notification server is reachable.
type discard struct{}

func (discard) Show(Alert) error { return nil }
func (discard) Dismiss() error   { return nil }
