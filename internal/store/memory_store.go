package store

import (
	"context"
	"sync"

	"github.com/nimaarv/chatspark/internal/domain"
)

// MemoryStore is an in-process Store used by tests. FailWrites makes every
// save report ErrWriteFailed so callers' degraded-persistence paths can be
// exercised.
type MemoryStore struct {
	mu         sync.Mutex
	chatrooms  []domain.Chatroom
	messages   []domain.Message
	saveCount  int
	FailWrites bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) LoadChatrooms(ctx context.Context) ([]domain.Chatroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Chatroom(nil), s.chatrooms...), nil
}

func (s *MemoryStore) SaveChatrooms(ctx context.Context, rooms []domain.Chatroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return ErrWriteFailed
	}
	s.chatrooms = append([]domain.Chatroom(nil), rooms...)
	s.saveCount++
	return nil
}

func (s *MemoryStore) LoadMessages(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages...), nil
}

func (s *MemoryStore) SaveMessages(ctx context.Context, msgs []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return ErrWriteFailed
	}
	s.messages = append([]domain.Message(nil), msgs...)
	s.saveCount++
	return nil
}

// SaveCount reports how many successful saves happened across both keys.
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCount
}

// PersistedChatrooms returns the last saved chatroom collection.
func (s *MemoryStore) PersistedChatrooms() []domain.Chatroom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Chatroom(nil), s.chatrooms...)
}

// PersistedMessages returns the last saved message collection.
func (s *MemoryStore) PersistedMessages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages...)
}
