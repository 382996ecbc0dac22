// Package session implements the edit session: a text buffer, a bounded
// linear undo history and the operations the editor applies to them.
//
// A Session is single-writer. Every operation runs to completion before the
// next starts, and the buffer always equals the history entry under the
// cursor once an operation returns.
package session

import (
	"strings"

	"github.com/treykane/text-utils/internal/history"
	"github.com/treykane/text-utils/internal/stats"
	"github.com/treykane/text-utils/internal/transform"
)

// HistoryStatus describes the undo history for presentation.
type HistoryStatus struct {
	CanUndo bool
	CanRedo bool
	Length  int
	Index   int
}

// Option customizes a Session.
type Option func(*Session)

// WithCapacity sets the number of snapshots retained for undo.
func WithCapacity(n int) Option {
	return func(s *Session) { s.capacity = n }
}

// WithWordsPerMinute sets the reading speed used by Stats.
func WithWordsPerMinute(wpm int) Option {
	return func(s *Session) { s.wpm = wpm }
}

// Session owns the buffer and its history.
type Session struct {
	buffer   string
	hist     *history.Ring
	capacity int
	wpm      int
}

// New starts a session whose history holds only initial.
func New(initial string, opts ...Option) *Session {
	s := &Session{
		buffer:   initial,
		capacity: history.DefaultCapacity,
		wpm:      stats.DefaultWordsPerMinute,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hist = history.New(s.capacity, initial)
	return s
}

// Text returns the current buffer.
func (s *Session) Text() string { return s.buffer }

// IsEmpty reports whether the buffer holds only white space.
func (s *Session) IsEmpty() bool { return strings.TrimSpace(s.buffer) == "" }

// SetText replaces the buffer. A changed value is committed to history;
// the result reports whether a commit happened.
func (s *Session) SetText(text string) bool {
	if text == s.buffer {
		return false
	}
	s.buffer = text
	s.hist.Commit(text)
	return true
}

// Apply runs a total transformation over the buffer.
func (s *Session) Apply(f transform.Func) bool {
	return s.SetText(f(s.buffer))
}

// ApplyFallible runs a transformation that may reject the buffer. On error
// neither the buffer nor the history changes.
func (s *Session) ApplyFallible(f transform.FallibleFunc) error {
	out, err := f(s.buffer)
	if err != nil {
		return err
	}
	s.SetText(out)
	return nil
}

// Clear empties the buffer as a regular, undoable change.
func (s *Session) Clear() bool { return s.Apply(transform.Clear) }

// CountOccurrences counts non-overlapping literal matches of find.
func (s *Session) CountOccurrences(find string) int {
	return countLiteral(s.buffer, find)
}

// FindAndReplace replaces every literal occurrence of find and returns how
// many were replaced. The count and the replacement come from the same
// snapshot of the buffer. An empty find is a no-op.
func (s *Session) FindAndReplace(find, replace string) int {
	snapshot := s.buffer
	n := countLiteral(snapshot, find)
	if n == 0 {
		return 0
	}
	s.SetText(strings.ReplaceAll(snapshot, find, replace))
	return n
}

// ReplaceFirst replaces the first literal occurrence of find and reports
// whether the buffer changed. Replacing a match with itself changes
// nothing and commits nothing.
func (s *Session) ReplaceFirst(find, replace string) bool {
	if find == "" || !strings.Contains(s.buffer, find) {
		return false
	}
	return s.SetText(strings.Replace(s.buffer, find, replace, 1))
}

func countLiteral(text, find string) int {
	if find == "" {
		return 0
	}
	return strings.Count(text, find)
}

// Undo steps back one snapshot.
func (s *Session) Undo() bool {
	text, ok := s.hist.Undo()
	if ok {
		s.buffer = text
	}
	return ok
}

// Redo steps forward one snapshot.
func (s *Session) Redo() bool {
	text, ok := s.hist.Redo()
	if ok {
		s.buffer = text
	}
	return ok
}

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// History summarizes the undo state.
func (s *Session) History() HistoryStatus {
	return HistoryStatus{
		CanUndo: s.hist.CanUndo(),
		CanRedo: s.hist.CanRedo(),
		Length:  s.hist.Len(),
		Index:   s.hist.Cursor(),
	}
}

// Previous returns the snapshot just before the current one.
func (s *Session) Previous() (string, bool) {
	if !s.hist.CanUndo() {
		return "", false
	}
	return s.hist.At(s.hist.Cursor() - 1), true
}

// Stats computes statistics for the current buffer.
func (s *Session) Stats() stats.Statistics {
	return stats.Compute(s.buffer, s.wpm)
}
