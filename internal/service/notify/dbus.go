package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	// dbusDestination is the freedesktop notification service.
	dbusDestination = "org.freedesktop.Notifications"
	// dbusPath is the object path of the notification service.
	dbusPath = "/org/freedesktop/Notifications"
	// dbusMethod is the method that shows a notification.
	dbusMethod = dbusDestination + ".Notify"
	// dbusDefaultTimeout lets the server choose the expiry.
	dbusDefaultTimeout = int32(-1)
)

// DBus delivers notifications over the session bus (org.freedesktop.Notifications).
type DBus struct {
	// connect opens the session bus, replaceable in tests.
	connect func() (*dbus.Conn, error)
}

// NewDBus creates a D-Bus notifier using a private session bus connection per call.
func NewDBus() *DBus {
	return &DBus{
		connect: func() (*dbus.Conn, error) {
			return dbus.ConnectSessionBus()
		},
	}
}

// Send displays n through the notification daemon.
func (d *DBus) Send(ctx context.Context, n Notification) error {
	conn, err := d.connect()
	if err != nil {
		return fmt.Errorf("%w: connect session bus: %w", ErrDeliveryFailed, err)
	}

	defer func() {
		_ = conn.Close()
	}()

	call := conn.Object(dbusDestination, dbusPath).CallWithContext(ctx, dbusMethod, 0,
		AppName,                   // app_name
		uint32(0),                 // replaces_id
		"",                        // app_icon
		n.Title,                   // summary
		n.Message,                 // body
		[]string{},                // actions
		map[string]dbus.Variant{}, // hints
		dbusDefaultTimeout,        // expire_timeout
	)
	if call.Err != nil {
		return fmt.Errorf("%w: dbus: %w", ErrDeliveryFailed, call.Err)
	}

	return nil
}
