package entity

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

// Update is the subset of a Telegram webhook update the bot reads. Text stays a pointer
// so a missing text field can be told apart from an empty message.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an inbound chat message.
type Message struct {
	MessageID int64   `json:"message_id"`
	Text      *string `json:"text"`
	Chat      *Chat   `json:"chat"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID ChatID `json:"id"`
}

// ChatID is kept opaque: Telegram sends an integer, but any scalar is passed back verbatim.
type ChatID string

// UnmarshalJSON accepts a JSON number or string.
func (c *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ChatID(s)
	default:
		*c = ChatID(data)
	}
	return nil
}

// String returns the identifier as sent to the bot API.
func (c ChatID) String() string { return string(c) }
