// Package console renders the chat widget in a terminal. It implements
// widget.Surface, so the controller that would drive a browser widget drives
// a scrollback here instead.
package console

import (
	"fmt"
	"io"
	"sync"

	"shopassist/internal/widget"
)

const typingNotice = "assistant is typing..."

// eraseLine rewinds the cursor and clears the typing notice in place.
const eraseLine = "\r\x1b[2K"

// Surface writes widget output to w. pageProducts maps catalog ids to the
// labels shown when a recommendation is flagged; ids the page doesn't carry
// are dropped, the same way a missing DOM node would be.
type Surface struct {
	mu           sync.Mutex
	w            io.Writer
	pageProducts map[string]string
	typing       bool
}

func New(w io.Writer, pageProducts map[string]string) *Surface {
	return &Surface{w: w, pageProducts: pageProducts}
}

func (s *Surface) AppendLine(sender widget.Sender, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eraseTypingLocked()

	label := "you"
	if sender == widget.SenderBot {
		label = "assistant"
	}
	fmt.Fprintf(s.w, "%s> %s\n", label, text)
}

func (s *Surface) ShowTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.typing {
		return
	}
	s.typing = true
	fmt.Fprint(s.w, typingNotice)
}

func (s *Surface) HideTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eraseTypingLocked()
}

// ClearInput is a no-op: terminal input is consumed line by line, so there
// is never a pending input box to empty.
func (s *Surface) ClearInput() {}

func (s *Surface) FlagProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label, ok := s.pageProducts[id]
	if !ok {
		return
	}
	s.eraseTypingLocked()
	fmt.Fprintf(s.w, "  * recommended: %s [%s]\n", label, id)
}

func (s *Surface) SetMinimized(minimized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eraseTypingLocked()

	if minimized {
		fmt.Fprintln(s.w, "(widget minimized)")
	} else {
		fmt.Fprintln(s.w, "(widget restored)")
	}
}

func (s *Surface) eraseTypingLocked() {
	if !s.typing {
		return
	}
	s.typing = false
	fmt.Fprint(s.w, eraseLine)
}
