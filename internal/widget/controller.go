package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"shopassist/internal/models"
)

// ErrBusy is returned by Send while a previous send is still in flight.
// The widget rejects overlapping sends rather than queueing them.
var ErrBusy = errors.New("widget: send already in flight")

// DefaultGreeting opens every conversation when the widget mounts.
const DefaultGreeting = "Hi! I'm your shopping assistant. How can I help you today?"

// MessageSender is satisfied by chatbot.Client: one call, one record, no error.
type MessageSender interface {
	Send(ctx context.Context, message string) models.ChatResponse
}

// Controller owns the widget's behavior for one conversation: the send
// sequence, the typing placeholder, product flagging and the minimize state.
// All rendering goes through the Surface it was constructed with.
type Controller struct {
	surface  Surface
	sender   MessageSender
	log      logrus.FieldLogger
	greeting string

	mu        sync.Mutex
	inFlight  bool
	minimized bool
}

type ControllerOption func(*Controller)

func WithGreeting(greeting string) ControllerOption {
	return func(c *Controller) { c.greeting = greeting }
}

func WithControllerLogger(log logrus.FieldLogger) ControllerOption {
	return func(c *Controller) { c.log = log }
}

// New mounts the widget: the greeting is appended as the bot's first line.
func New(surface Surface, sender MessageSender, opts ...ControllerOption) *Controller {
	c := &Controller{
		surface:  surface,
		sender:   sender,
		log:      logrus.StandardLogger(),
		greeting: DefaultGreeting,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.surface.AppendLine(SenderBot, c.greeting)
	return c
}

// Send runs the full send sequence for one user message: append the user
// line, clear the input, show the typing placeholder, exchange with the
// assistant, hide the placeholder, append the reply. Blank input is ignored.
// A second Send while one is in flight returns ErrBusy without touching the
// surface. Panics out of the surface or sender are contained; the widget
// degrades to the apology line instead of crashing the page.
func (c *Controller) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("panic", fmt.Sprint(r)).Error("widget send sequence panicked")
			c.recoverSurface()
		}
	}()

	c.surface.AppendLine(SenderUser, text)
	c.surface.ClearInput()
	c.surface.ShowTyping()

	resp := c.sender.Send(ctx, text)

	c.surface.HideTyping()

	reply := resp.Response
	if !resp.Success || reply == "" {
		reply = models.FallbackMessage
	}
	c.surface.AppendLine(SenderBot, reply)

	if len(resp.RecommendedProducts) > 0 {
		c.surface.AppendLine(SenderBot, recommendationSummary(resp.RecommendedProducts))
		for _, id := range resp.RecommendedProducts {
			c.surface.FlagProduct(id)
		}
	}

	return nil
}

// ToggleMinimize flips the minimize state and forwards it to the surface.
func (c *Controller) ToggleMinimize() {
	c.mu.Lock()
	c.minimized = !c.minimized
	minimized := c.minimized
	c.mu.Unlock()

	c.surface.SetMinimized(minimized)
}

func (c *Controller) Minimized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minimized
}

// recoverSurface makes a best-effort attempt to leave the widget usable
// after a panic. The surface may be the thing that panicked, so each call
// is individually shielded.
func (c *Controller) recoverSurface() {
	func() {
		defer func() { recover() }()
		c.surface.HideTyping()
	}()
	func() {
		defer func() { recover() }()
		c.surface.AppendLine(SenderBot, models.FallbackMessage)
	}()
}

// recommendationSummary names the flagged ids so the shopper can find them
// even when the page has nothing to highlight.
func recommendationSummary(ids []string) string {
	if len(ids) == 1 {
		return "I've highlighted 1 recommended product on the page: " + ids[0]
	}
	return fmt.Sprintf("I've highlighted %d recommended products on the page: %s", len(ids), strings.Join(ids, ", "))
}
