package bus

// InboundMessage is the normalized form of a chat message received from any
// transport channel. The router and handlers treat it as read-only.
type InboundMessage struct {
	Channel   string            `json:"channel"`
	SenderID  string            `json:"sender_id"`
	ChatID    string            `json:"chat_id"`
	Content   string            `json:"content"`
	MessageID string            `json:"message_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Document is an outbound file attachment.
type Document struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type,omitempty"`
	Data     []byte `json:"data"`
}

// Location is an outbound geographic point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OutboundMessage is a send request addressed to one transport channel.
// Content is always set for text replies; the optional payload fields select
// richer send operations on channels that support them.
type OutboundMessage struct {
	Channel string `json:"channel"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`

	PhotoURL      string    `json:"photo_url,omitempty"`
	Document      *Document `json:"document,omitempty"`
	Location      *Location `json:"location,omitempty"`
	EditMessageID string    `json:"edit_message_id,omitempty"`
}
