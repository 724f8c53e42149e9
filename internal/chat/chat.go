// Package chat holds the transport-neutral events the bot receives and the
// responses it sends back.
package chat

// Event is an inbound update tagged with the sender's identity.
type Event interface {
	Sender() int64
}

type TextEvent struct {
	SenderID int64
	Text     string
}

func (e TextEvent) Sender() int64 { return e.SenderID }

// ContactEvent is a phone number shared through the contact button.
type ContactEvent struct {
	SenderID    int64
	PhoneNumber string
}

func (e ContactEvent) Sender() int64 { return e.SenderID }

// CallbackEvent is a press on an inline menu button.
type CallbackEvent struct {
	SenderID int64
	Data     string
}

func (e CallbackEvent) Sender() int64 { return e.SenderID }

// Response is one outbound message.
type Response interface {
	Message() string
}

type PlainMessage struct {
	Text string
}

func (m PlainMessage) Message() string { return m.Text }

// ChoiceMessage offers a fixed list of reply buttons; pressing one sends its label back as text.
type ChoiceMessage struct {
	Text    string
	Choices []string
}

func (m ChoiceMessage) Message() string { return m.Text }

// ContactRequestMessage asks the user to share their phone number.
type ContactRequestMessage struct {
	Text        string
	ButtonLabel string
}

func (m ContactRequestMessage) Message() string { return m.Text }

type MenuItem struct {
	Label  string
	Action string
}

// MenuMessage carries inline buttons whose Action comes back as a CallbackEvent.
type MenuMessage struct {
	Text  string
	Items []MenuItem
}

func (m MenuMessage) Message() string { return m.Text }

// AlertMessage is shown as a popup answer to a callback rather than sent to the chat.
type AlertMessage struct {
	Text string
}

func (m AlertMessage) Message() string { return m.Text }
