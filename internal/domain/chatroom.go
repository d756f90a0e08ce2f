package domain

import "time"

// Chatroom is a named container grouping an ordered set of messages.
type Chatroom struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	LastMessage string    `json:"lastMessage,omitempty"`
	// MessageCount tracks how many messages belong to the room. It is
	// incremented once per appended message, so after a full send cycle it
	// equals the number of stored messages for the room.
	MessageCount int `json:"messageCount"`
}
