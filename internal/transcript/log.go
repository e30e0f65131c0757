// Package transcript holds an append-only conversation log. Lines are plain
// prefixed strings ("User: ...", "Assistant: ..."); the log never rewrites
// or reorders what was appended.
package transcript

import "sync"

type Log struct {
	mu    sync.Mutex
	lines []string
}

func New() *Log {
	return &Log{}
}

// NewSeeded builds a log pre-populated with stored lines, for rehydrating
// a server-side session. The input slice is copied.
func NewSeeded(lines []string) *Log {
	l := &Log{lines: make([]string, len(lines))}
	copy(l.lines, lines)
	return l
}

// Append adds lines to the end of the log in the order given.
func (l *Log) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, lines...)
}

// Lines returns the full view, oldest first. The returned slice is a copy;
// mutating it does not affect the log.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns the window view: the most recent n lines, oldest first. When
// the log is shorter than n the whole log is returned. Always non-nil so an
// empty window serializes as [] rather than null.
func (l *Log) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n < 0 {
		n = 0
	}
	start := len(l.lines) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}
