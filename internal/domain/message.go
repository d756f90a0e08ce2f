package domain

import "time"

// Message senders. Fixed at creation, never mutated.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is a single user- or assistant-authored entry belonging to exactly
// one chatroom. Messages are append-only and insertion-ordered; they are never
// edited or reordered after creation.
type Message struct {
	ID         string `json:"id"`
	ChatroomID string `json:"chatroomId"`
	Sender     string `json:"sender"` // "user" or "ai"
	Text       string `json:"text"`
	// Image is an optional inline-encoded payload (data URL). Text may be
	// empty when only an image is attached.
	Image     string    `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
