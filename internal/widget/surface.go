// Package widget drives the chat widget's presentation flow. It knows the
// order things happen in (user line, typing placeholder, reply, product
// flags) but nothing about how they are drawn; rendering is delegated to a
// Surface implementation.
package widget

// Sender labels who a transcript line is attributed to on screen.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Surface is the capability set a rendering target must provide. A surface
// may be a DOM binding, a terminal, or a test fake; the controller calls it
// and never inspects it.
type Surface interface {
	// AppendLine adds one message line attributed to sender.
	AppendLine(sender Sender, text string)

	// ShowTyping displays the transient "assistant is typing" placeholder;
	// HideTyping removes it. Calls are balanced by the controller.
	ShowTyping()
	HideTyping()

	// ClearInput empties the message input box.
	ClearInput()

	// FlagProduct marks the on-page item with the given catalog id as
	// recommended. Unknown ids are the surface's problem to ignore.
	FlagProduct(id string)

	// SetMinimized collapses or restores the widget chrome. Minimizing has
	// no effect on message flow.
	SetMinimized(minimized bool)
}
