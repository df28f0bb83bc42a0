package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageKind discriminates inbound server messages.
type MessageKind string

const (
	KindConnected MessageKind = "Connected"
	KindStatus    MessageKind = "Status"
	KindGrid      MessageKind = "Grid"
	KindError     MessageKind = "Error"
)

// Message is one inbound server push. Connected carries no content; the other
// kinds carry human-readable text or raw pattern text. Unknown kinds survive
// decoding so routing can skip them without failing the whole frame.
type Message struct {
	Kind    MessageKind `json:"kind"`
	Content string      `json:"content,omitempty"`
}

// Connected returns the connection-established message.
func Connected() Message { return Message{Kind: KindConnected} }

// Status returns a status-text message.
func Status(text string) Message { return Message{Kind: KindStatus, Content: text} }

// Grid returns a rendered-grid message.
func Grid(pattern string) Message { return Message{Kind: KindGrid, Content: pattern} }

// ErrorMessage returns an error-text message.
func ErrorMessage(text string) Message { return Message{Kind: KindError, Content: text} }

// DecodeFrame parses one wire frame into its ordered message batch. A frame is
// always a JSON array, even when it carries a single message.
func DecodeFrame(data []byte) ([]Message, error) {
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return msgs, nil
}

// EncodeFrame serializes an ordered message batch into one wire frame.
func EncodeFrame(msgs []Message) ([]byte, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	return json.Marshal(msgs)
}
