package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// UpdateKind identifies which message variant a Telegram update carried.
type UpdateKind int

const (
	KindNone UpdateKind = iota
	KindMessage
	KindEditedMessage
	KindChannelPost
	KindEditedChannelPost
)

func (k UpdateKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEditedMessage:
		return "edited_message"
	case KindChannelPost:
		return "channel_post"
	case KindEditedChannelPost:
		return "edited_channel_post"
	default:
		return "none"
	}
}

// Update is the webhook body Telegram delivers. At most one of the message
// fields is set.
type Update struct {
	UpdateID          int64    `json:"update_id"`
	Message           *Message `json:"message,omitempty"`
	EditedMessage     *Message `json:"edited_message,omitempty"`
	ChannelPost       *Message `json:"channel_post,omitempty"`
	EditedChannelPost *Message `json:"edited_channel_post,omitempty"`
}

// Message is a Telegram message or channel post.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

// InboundUpdate is a decoded delivery reduced to the one message of interest.
type InboundUpdate struct {
	UpdateID int64
	Kind     UpdateKind
	Message  *Message
}

// Select picks the first present message variant in the order message,
// edited_message, channel_post, edited_channel_post.
func (u Update) Select() InboundUpdate {
	in := InboundUpdate{UpdateID: u.UpdateID}
	switch {
	case u.Message != nil:
		in.Kind, in.Message = KindMessage, u.Message
	case u.EditedMessage != nil:
		in.Kind, in.Message = KindEditedMessage, u.EditedMessage
	case u.ChannelPost != nil:
		in.Kind, in.Message = KindChannelPost, u.ChannelPost
	case u.EditedChannelPost != nil:
		in.Kind, in.Message = KindEditedChannelPost, u.EditedChannelPost
	}
	return in
}

// DecodeUpdate reads a JSON update and selects its message. Unknown fields
// are ignored; Telegram adds new ones regularly.
func DecodeUpdate(r io.Reader) (InboundUpdate, error) {
	var u Update
	if err := json.NewDecoder(r).Decode(&u); err != nil {
		return InboundUpdate{}, fmt.Errorf("decode update: %w", err)
	}
	return u.Select(), nil
}
