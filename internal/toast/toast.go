// Package toast keeps the queue of short-lived notifications shown above the
// footer.
package toast

import (
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Kind classifies a toast for styling.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Toast is one notification.
type Toast struct {
	ID        int
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Queue holds active toasts in creation order. Ids are strictly increasing
// for the lifetime of the queue.
type Queue struct {
	mu       sync.Mutex
	items    []Toast
	nextID   int
	duration time.Duration
	now      func() time.Time
}

// Option configures a Queue.
type Option func(*Queue)

// WithDuration overrides DefaultDuration. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.duration = d
		}
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		if now != nil {
			q.now = now
		}
	}
}

// NewQueue returns an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{duration: DefaultDuration, now: time.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Duration returns how long each toast lives.
func (q *Queue) Duration() time.Duration { return q.duration }

// Add appends a toast and returns its id.
func (q *Queue) Add(message string, kind Kind) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.items = append(q.items, Toast{
		ID:        q.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: q.now(),
	})
	return q.nextID
}

func (q *Queue) Success(message string) int { return q.Add(message, Success) }
func (q *Queue) Error(message string) int   { return q.Add(message, Error) }
func (q *Queue) Warning(message string) int { return q.Add(message, Warning) }
func (q *Queue) Info(message string) int    { return q.Add(message, Info) }

// Remove drops the toast with id. It reports whether one was removed.
func (q *Queue) Remove(id int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Expire drops every toast older than the queue duration at now and returns
// how many were removed.
func (q *Queue) Expire(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Sub(t.CreatedAt) < q.duration {
			kept = append(kept, t)
		}
	}
	removed := len(q.items) - len(kept)
	q.items = kept
	return removed
}

// Active returns a copy of the visible toasts, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

// Latest returns the newest toast.
func (q *Queue) Latest() (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Toast{}, false
	}
	return q.items[len(q.items)-1], true
}

// Len returns the number of visible toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
