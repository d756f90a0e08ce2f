package store

import (
	"context"
	"errors"

	"github.com/nimaarv/chatspark/internal/domain"
)

// Logical collection keys. These are the only two keys the conversation
// manager ever reads or writes.
const (
	KeyChatrooms = "chatrooms"
	KeyMessages  = "messages"
)

// ErrWriteFailed wraps any failure to durably persist a collection. The
// in-memory state of the conversation manager stays authoritative for the
// session regardless of the persistence outcome.
var ErrWriteFailed = errors.New("store write failed")

// Store is a passive write-through mirror of the two conversation
// collections. Load is called once, at manager construction; Save is called
// synchronously after every in-memory mutation of the corresponding
// collection, with no batching or debounce. A Store holds no authoritative
// copy of anything.
type Store interface {
	LoadChatrooms(ctx context.Context) ([]domain.Chatroom, error)
	SaveChatrooms(ctx context.Context, rooms []domain.Chatroom) error
	LoadMessages(ctx context.Context) ([]domain.Message, error)
	SaveMessages(ctx context.Context, msgs []domain.Message) error
}
