// Package systemd restarts the unit that consumes the tuned program.
package systemd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
)

// JobDone is the job result systemd reports for a successful restart.
const JobDone = "done"

// Manager handles systemd unit operations via D-Bus.
type Manager struct {
	conn *dbus.Conn
}

// NewManager connects to the user bus when user is set, the system bus otherwise.
func NewManager(ctx context.Context, user bool) (*Manager, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	if user {
		conn, err = dbus.NewUserConnectionContext(ctx)
	} else {
		conn, err = dbus.NewSystemConnectionContext(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return &Manager{conn: conn}, nil
}

// RestartUnit restarts a unit in replace mode and waits for the job to finish.
func (m *Manager) RestartUnit(ctx context.Context, unit string) error {
	done := make(chan string, 1)
	if _, err := m.conn.RestartUnitContext(ctx, unit, "replace", done); err != nil {
		return fmt.Errorf("failed to restart %s: %w", unit, err)
	}

	select {
	case result := <-done:
		if result != JobDone {
			return fmt.Errorf("restart of %s finished with result %q", unit, result)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("restart of %s: %w", unit, ctx.Err())
	}
}

// UnitState retrieves the ActiveState property of a unit.
func (m *Manager) UnitState(ctx context.Context, unit string) (string, error) {
	prop, err := m.conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", err
	}
	if state, ok := prop.Value.Value().(string); ok {
		return state, nil
	}
	return prop.Value.String(), nil
}

// Close cleanly closes the D-Bus connection.
func (m *Manager) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}
