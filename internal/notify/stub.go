//go:build !linux

package notify

// New returns a notifier that drops alerts; desktop notifications need the
// freedesktop bus.
func New() (Notifier, error) {
	return discard{}, nil
}
