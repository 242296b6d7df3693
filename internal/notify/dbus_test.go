//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type busCall struct {
	method string
	args   []any
}

// fakeBus answers Notify with sequential ids.
type fakeBus struct {
	calls  []busCall
	nextID uint32
	err    error
}

func (b *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	b.calls = append(b.calls, busCall{method: method, args: args})
	if b.err != nil {
		return &dbus.Call{Err: b.err}
	}
	if method != busIface+".Notify" {
		return &dbus.Call{}
	}
	id := args[1].(uint32)
	if id == 0 {
		b.nextID++
		id = b.nextID
	}
	return &dbus.Call{Body: []any{id}}
}

func TestBusNotifier_ShowMapsSeverity(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		urgency  byte
		timeout  int32
		category bool
	}{
		{"info expires", SeverityInfo, urgencyNormal, infoTimeoutMS, false},
		{"error stays", SeverityError, urgencyCritical, errorTimeoutMS, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &fakeBus{}
			n := &busNotifier{obj: bus}

			if err := n.Show(Alert{Severity: tt.severity, Title: "Error", Body: "x"}); err != nil {
				t.Fatalf("Show() error: %v", err)
			}

			args := bus.calls[0].args
			if args[0] != appName {
				t.Errorf("app_name = %v, want %s", args[0], appName)
			}
			hints := args[6].(map[string]dbus.Variant)
			if got := hints["urgency"].Value(); got != tt.urgency {
				t.Errorf("urgency = %v, want %d", got, tt.urgency)
			}
			if _, ok := hints["category"]; ok != tt.category {
				t.Errorf("category hint present = %v, want %v", ok, tt.category)
			}
			if args[7] != tt.timeout {
				t.Errorf("timeout = %v, want %d", args[7], tt.timeout)
			}
		})
	}
}

func TestBusNotifier_ShowReplacesPrevious(t *testing.T) {
	bus := &fakeBus{}
	n := &busNotifier{obj: bus}

	_ = n.Show(Alert{Severity: SeverityError, Title: "Error", Body: "first"})
	_ = n.Show(Alert{Title: "Bookmarked", Body: "2:255"})

	if got := bus.calls[0].args[1]; got != uint32(0) {
		t.Errorf("first replaces_id = %v, want 0", got)
	}
	if got := bus.calls[1].args[1]; got != uint32(1) {
		t.Errorf("second replaces_id = %v, want 1", got)
	}
}

func TestBusNotifier_EscapesBody(t *testing.T) {
	bus := &fakeBus{}
	n := &busNotifier{obj: bus}

	_ = n.Show(Alert{Title: "Error", Body: "a<b> & c"})

	if got := bus.calls[0].args[4]; got != "a&lt;b&gt; &amp; c" {
		t.Errorf("body = %q", got)
	}
}

func TestBusNotifier_Dismiss(t *testing.T) {
	bus := &fakeBus{}
	n := &busNotifier{obj: bus}

	if err := n.Dismiss(); err != nil || len(bus.calls) != 0 {
		t.Fatalf("Dismiss with nothing shown: err=%v calls=%d", err, len(bus.calls))
	}

	_ = n.Show(Alert{Severity: SeverityError, Title: "Error", Body: "boom"})
	if err := n.Dismiss(); err != nil {
		t.Fatalf("Dismiss() error: %v", err)
	}
	last := bus.calls[len(bus.calls)-1]
	if last.method != busIface+".CloseNotification" || last.args[0] != uint32(1) {
		t.Errorf("last call = %+v, want CloseNotification(1)", last)
	}

	_ = n.Show(Alert{Title: "Bookmarked", Body: "1:1"})
	if got := bus.calls[len(bus.calls)-1].args[1]; got != uint32(0) {
		t.Errorf("replaces_id after dismiss = %v, want 0", got)
	}
}

func TestBusNotifier_ShowError(t *testing.T) {
	bus := &fakeBus{err: errors.New("no server")}
	n := &busNotifier{obj: bus}

	if err := n.Show(Alert{Title: "Error"}); err == nil {
		t.Fatal("Show() error = nil, want bus error")
	}
	if n.shown != 0 {
		t.Errorf("shown = %d after failed Show, want 0", n.shown)
	}
}
