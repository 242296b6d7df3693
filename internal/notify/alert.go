package notify

import (
	"sync"

	"github.com/charmbracelet/log"
)

const errorTitle = "Error"

// Alerter turns playback alerts into notifications. Failures to notify are
// logged and otherwise ignored.
type Alerter struct {
	notifier Notifier
	logger   *log.Logger

	mu      sync.Mutex
	failing bool // an error alert is on screen
}

func NewAlerter(notifier Notifier, logger *log.Logger) *Alerter {
	if notifier == nil {
		notifier = discard{}
	}
	return &Alerter{notifier: notifier, logger: logger}
}

// Alert shows title and body. An "Error" title is shown as an error.
func (a *Alerter) Alert(title, body string) {
	alert := Alert{Title: title, Body: body}
	if title == errorTitle {
		alert.Severity = SeverityError
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.notifier.Show(alert); err != nil {
		a.warn("notification failed", "title", title, "err", err)
		return
	}
	a.failing = alert.Severity == SeverityError
}

// Dismiss clears an error alert still on screen. Info alerts are left to
// expire.
func (a *Alerter) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.failing {
		return
	}
	a.failing = false
	if err := a.notifier.Dismiss(); err != nil {
		a.warn("dismiss notification failed", "err", err)
	}
}

func (a *Alerter) warn(msg string, kv ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, kv...)
	}
}
