//go:build linux

package notify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	busDest  = "org.freedesktop.Notifications"
	busPath  = "/org/freedesktop/Notifications"
	busIface = "org.freedesktop.Notifications"
)

// Urgency hint values of the notification protocol.
const (
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

const (
	infoTimeoutMS  int32 = 6000
	errorTimeoutMS int32 = 0 // never expires
)

// bodyEscaper escapes the markup subset servers may interpret in bodies.
var bodyEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// busNotifier talks to the session notification server. It remembers the
// id it was handed so the next alert replaces it in place.
type busNotifier struct {
	obj caller

	mu    sync.Mutex
	shown uint32
}

// New connects to the session bus. Without one it returns an error along
// with a notifier that drops alerts.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return discard{}, fmt.Errorf("session bus: %w", err)
	}
	return &busNotifier{obj: conn.Object(busDest, busPath)}, nil
}

func (n *busNotifier) Show(a Alert) error {
	urgency, timeout := urgencyNormal, infoTimeoutMS
	hints := map[string]dbus.Variant{
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if a.Severity == SeverityError {
		urgency, timeout = urgencyCritical, errorTimeoutMS
		hints["category"] = dbus.MakeVariant("transfer.error")
	}
	hints["urgency"] = dbus.MakeVariant(urgency)

	n.mu.Lock()
	defer n.mu.Unlock()

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := n.obj.Call(busIface+".Notify", 0,
		appName, n.shown, "", a.Title, bodyEscaper.Replace(a.Body),
		[]string{}, hints, timeout)
	if call.Err != nil {
		return call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return err
	}
	n.shown = id
	return nil
}

func (n *busNotifier) Dismiss() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.shown == 0 {
		return nil
	}
	id := n.shown
	n.shown = 0
	return n.obj.Call(busIface+".CloseNotification", 0, id).Err
}
