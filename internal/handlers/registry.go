package handlers

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/nimaarv/chatspark/internal/services"
	"github.com/nimaarv/chatspark/internal/services/conversation"
	"github.com/nimaarv/chatspark/internal/store"
	"github.com/nimaarv/chatspark/internal/ws"
)

// ManagerRegistry lazily builds one conversation manager per authenticated
// user and keeps it for the lifetime of the session. Each manager gets a
// user-scoped store mirror and pushes its notifications and typing changes
// through the websocket hub.
type ManagerRegistry struct {
	mu       sync.Mutex
	db       *gorm.DB
	cfg      conversation.Config
	hub      *ws.Hub
	logger   services.Logger
	managers map[uint]*conversation.Manager
}

func NewManagerRegistry(db *gorm.DB, cfg conversation.Config, hub *ws.Hub, logger services.Logger) *ManagerRegistry {
	return &ManagerRegistry{
		db:       db,
		cfg:      cfg,
		hub:      hub,
		logger:   logger,
		managers: make(map[uint]*conversation.Manager),
	}
}

// Get returns the user's manager, constructing it on first use.
func (r *ManagerRegistry) Get(ctx context.Context, userID uint) (*conversation.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mgr, ok := r.managers[userID]; ok {
		return mgr, nil
	}

	mgr, err := conversation.NewManager(
		ctx,
		r.cfg,
		store.NewGormStore(r.db, userID),
		r.hub.UserNotifier(userID),
		r.logger,
	)
	if err != nil {
		return nil, err
	}
	mgr.SetTypingListener(r.hub.TypingListener(userID))
	r.managers[userID] = mgr
	return mgr, nil
}

// Release cancels the user's pending replies and forgets the manager.
// Called on logout.
func (r *ManagerRegistry) Release(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mgr, ok := r.managers[userID]; ok {
		mgr.Close()
		delete(r.managers, userID)
	}
}

// Close shuts down every live manager. Called on server shutdown.
func (r *ManagerRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, mgr := range r.managers {
		mgr.Close()
		delete(r.managers, userID)
	}
}
