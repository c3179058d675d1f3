package notify

import (
	"context"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"
)

// TestDBus_ConnectFailure marks a missing session bus as a delivery failure.
func TestDBus_ConnectFailure(t *testing.T) {
	t.Parallel()

	d := &DBus{
		connect: func() (*dbus.Conn, error) { return nil, errTestPlatform },
	}

	err := d.Send(context.Background(), Notification{Title: "Alarm", Message: "Alarm 10:30 is ringing!"})
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.ErrorIs(t, err, errTestPlatform)
}
