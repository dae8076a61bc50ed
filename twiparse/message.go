package twiparse

// Message describes a chat message received by a bot. The parser only reads
// from it.
type Message interface {
	// Content returns the text body of the message.
	Content() string
	// AuthorID returns the identity of the sender.
	AuthorID() string
	// AuthorIsBot returns true if the sender is an automated account.
	AuthorIsBot() bool
	// SelfID returns the identity of the account that received the message.
	// An empty SelfID means the receiving account is unknown, so the message
	// is never treated as sent from self.
	SelfID() string
}

// TextMessage is a simple Message for callers that don't have their own
// message type.
type TextMessage struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Bot    bool   `json:"bot,omitempty"`
	Self   string `json:"self,omitempty"`
}

var _ Message = TextMessage{}

func (m TextMessage) Content() string   { return m.Text }
func (m TextMessage) AuthorID() string  { return m.Author }
func (m TextMessage) AuthorIsBot() bool { return m.Bot }
func (m TextMessage) SelfID() string    { return m.Self }
