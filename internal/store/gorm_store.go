package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nimaarv/chatspark/internal/domain"
)

// record is one serialized collection. Rows are scoped per user so every
// account gets its own pair of "chatrooms"/"messages" mirrors, the same way
// the browser original scoped its storage per profile.
type record struct {
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	Key       string `gorm:"primaryKey;size:32"`
	Value     []byte `gorm:"not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (record) TableName() string { return "store_records" }

// Migrate creates the backing table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&record{})
}

type gormStore struct {
	db     *gorm.DB
	userID uint
}

// NewGormStore returns a Store mirroring collections into sqlite for one user.
func NewGormStore(db *gorm.DB, userID uint) Store {
	return &gormStore{db: db, userID: userID}
}

func (s *gormStore) LoadChatrooms(ctx context.Context) ([]domain.Chatroom, error) {
	var rooms []domain.Chatroom
	if err := s.load(ctx, KeyChatrooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *gormStore) SaveChatrooms(ctx context.Context, rooms []domain.Chatroom) error {
	return s.save(ctx, KeyChatrooms, rooms)
}

func (s *gormStore) LoadMessages(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := s.load(ctx, KeyMessages, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *gormStore) SaveMessages(ctx context.Context, msgs []domain.Message) error {
	return s.save(ctx, KeyMessages, msgs)
}

// load reads one collection. A missing row is not an error: the manager
// starts with an empty collection on first run.
func (s *gormStore) load(ctx context.Context, key string, out any) error {
	var rec record
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", s.userID, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("[Store] database error loading %q for user %d: %v", key, s.userID, err)
		return fmt.Errorf("loading %q: %w", key, err)
	}
	if err := json.Unmarshal(rec.Value, out); err != nil {
		log.Printf("[Store] corrupt %q record for user %d: %v", key, s.userID, err)
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	return nil
}

// save replaces the whole serialized collection for the key.
func (s *gormStore) save(ctx context.Context, key string, collection any) error {
	value, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, ErrWriteFailed)
	}
	rec := record{UserID: s.userID, Key: key, Value: value}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		log.Printf("[Store] database error saving %q for user %d: %v", key, s.userID, err)
		return fmt.Errorf("saving %q: %w", key, ErrWriteFailed)
	}
	return nil
}
