package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/toast"
)

// toastExpiredMsg fires once per toast when its display time is over.
type toastExpiredMsg struct {
	id int
}

// notify queues a toast and the footer status. The expiry timer is
// scheduled by Update once the current message has been handled.
func (m *Model) notify(kind toast.Kind, message string) {
	id := m.toasts.Add(message, kind)
	m.pendingToasts = append(m.pendingToasts, id)
	m.status = message
}

// scheduleToastExpiry returns one tick per toast added since the last call.
func (m *Model) scheduleToastExpiry() tea.Cmd {
	if len(m.pendingToasts) == 0 {
		return nil
	}
	d := m.toasts.Duration()
	cmds := make([]tea.Cmd, 0, len(m.pendingToasts))
	for _, id := range m.pendingToasts {
		id := id
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	m.pendingToasts = m.pendingToasts[:0]
	return tea.Batch(cmds...)
}

// handleToastExpired drops the toast whose timer fired and sweeps any other
// toast that has outlived the display time, e.g. one whose tick was lost
// while the program was suspended.
func (m *Model) handleToastExpired(msg toastExpiredMsg) {
	m.toasts.Remove(msg.id)
	if n := m.toasts.Expire(m.now()); n > 0 {
		appLog.Debug("expired stale toasts", "count", n)
	}
}

// visibleToasts returns the newest toasts, oldest first.
func (m *Model) visibleToasts() []toast.Toast {
	active := m.toasts.Active()
	if len(active) > MaxVisibleToasts {
		active = active[len(active)-MaxVisibleToasts:]
	}
	return active
}
