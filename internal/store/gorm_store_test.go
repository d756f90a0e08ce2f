package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nimaarv/chatspark/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestGormStoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	st := NewGormStore(db, 1)

	rooms := []domain.Chatroom{
		{ID: "r1", Title: "first", CreatedAt: time.Now().UTC(), MessageCount: 2, LastMessage: "hi"},
		{ID: "r2", Title: "second", CreatedAt: time.Now().UTC()},
	}
	msgs := []domain.Message{
		{ID: "m1", ChatroomID: "r1", Sender: domain.SenderUser, Text: "hi", Timestamp: time.Now().UTC()},
		{ID: "m2", ChatroomID: "r1", Sender: domain.SenderAI, Text: "hello!", Timestamp: time.Now().UTC()},
	}

	require.NoError(t, st.SaveChatrooms(ctx, rooms))
	require.NoError(t, st.SaveMessages(ctx, msgs))

	gotRooms, err := st.LoadChatrooms(ctx)
	require.NoError(t, err)
	require.Len(t, gotRooms, 2)
	assert.Equal(t, "first", gotRooms[0].Title)
	assert.Equal(t, 2, gotRooms[0].MessageCount)

	gotMsgs, err := st.LoadMessages(ctx)
	require.NoError(t, err)
	require.Len(t, gotMsgs, 2)
	assert.Equal(t, domain.SenderAI, gotMsgs[1].Sender)
}

func TestGormStoreOverwritesOnSave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	st := NewGormStore(db, 1)

	require.NoError(t, st.SaveChatrooms(ctx, []domain.Chatroom{{ID: "r1", Title: "v1"}}))
	require.NoError(t, st.SaveChatrooms(ctx, []domain.Chatroom{{ID: "r1", Title: "v2"}}))

	rooms, err := st.LoadChatrooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "v2", rooms[0].Title)
}

func TestGormStoreEmptyOnFirstLoad(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	st := NewGormStore(db, 1)

	rooms, err := st.LoadChatrooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	msgs, err := st.LoadMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestGormStoreScopesPerUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := NewGormStore(db, 1)
	bob := NewGormStore(db, 2)

	require.NoError(t, alice.SaveChatrooms(ctx, []domain.Chatroom{{ID: "r1", Title: "alice's room"}}))

	rooms, err := bob.LoadChatrooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	rooms, err = alice.LoadChatrooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
}
