package bubbletea

import (
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/evalconsole"
)

// Toast timing.
const (
	ToastDuration = 3 * time.Second
	FlipDuration  = 2 * time.Second
)

// maxToasts bounds how many toasts are shown at once; the oldest is dropped.
const maxToasts = 5

// Toast is a transient notification.
type Toast struct {
	ID       int
	Message  string
	Severity evalconsole.Severity
}

// ToastStack holds visible toasts, oldest first.
type ToastStack struct {
	items  []Toast
	nextID int
}

// Push adds a toast and returns it with its assigned ID.
func (s *ToastStack) Push(message string, severity evalconsole.Severity) Toast {
	s.nextID++
	t := Toast{ID: s.nextID, Message: message, Severity: severity}
	s.items = append(s.items, t)
	if len(s.items) > maxToasts {
		s.items = s.items[len(s.items)-maxToasts:]
	}
	return t
}

// Dismiss removes the toast with id. It reports whether one was removed.
func (s *ToastStack) Dismiss(id int) bool {
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the visible toasts, oldest first.
func (s *ToastStack) Items() []Toast {
	return slices.Clone(s.items)
}

// Len returns the number of visible toasts.
func (s *ToastStack) Len() int {
	return len(s.items)
}

// toastMsg carries a notification into the model.
type toastMsg struct {
	message  string
	severity evalconsole.Severity
}

// toastExpiredMsg dismisses a toast after ToastDuration.
type toastExpiredMsg struct{ id int }

func expireToast(id int) tea.Cmd {
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Compile-time interface verification.
var _ evalconsole.Notifier = (*ToastNotifier)(nil)

// ToastNotifier delivers Console notifications to the model over a channel.
// Notify may be called from any goroutine.
type ToastNotifier struct {
	ch       chan toastMsg
	done     chan struct{}
	stopOnce sync.Once
}

// NewToastNotifier creates a ToastNotifier.
func NewToastNotifier() *ToastNotifier {
	return &ToastNotifier{
		ch:   make(chan toastMsg, 64),
		done: make(chan struct{}),
	}
}

// Notify implements evalconsole.Notifier. It blocks while the buffer is
// full and returns immediately after Close.
func (n *ToastNotifier) Notify(message string, severity evalconsole.Severity) {
	select {
	case n.ch <- toastMsg{message: message, severity: severity}:
	case <-n.done:
	}
}

// Close stops delivery. Pending and later notifications are dropped.
func (n *ToastNotifier) Close() {
	n.stopOnce.Do(func() { close(n.done) })
}

// listen waits for the next notification.
func (n *ToastNotifier) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-n.ch:
			return t
		case <-n.done:
			return nil
		}
	}
}
