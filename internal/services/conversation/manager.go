package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nimaarv/chatspark/internal/domain"
	"github.com/nimaarv/chatspark/internal/store"
)

// replyTask is one scheduled simulated reply. Tasks are keyed by the owning
// chatroom so deleting a room cancels everything still pending for it.
type replyTask struct {
	id         string
	chatroomID string
	userText   string
	timer      *time.Timer
}

// Manager owns the chatroom and message collections for one user. It is the
// single writer for both: every mutation happens under its lock and is
// mirrored synchronously into the Store. The Store holds no authoritative
// copy; in-memory state wins for the lifetime of the session.
type Manager struct {
	mu        sync.Mutex
	cfg       Config
	store     store.Store
	notifier  Notifier
	simulator *ReplySimulator
	logger    Logger

	now   func() time.Time
	newID func() string

	chatrooms []domain.Chatroom
	messages  []domain.Message

	selected    string
	cursor      Cursor
	hasMore     bool
	searchQuery string

	pending     map[string]*replyTask
	typingCount map[string]int
	onTyping    TypingListener
	closed      bool
}

// NewManager loads both collections from the store (exactly once) and returns
// a ready manager. A nil notifier or logger is replaced with a no-op.
func NewManager(ctx context.Context, cfg Config, st store.Store, notifier Notifier, logger Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, newInvalidArgumentError("new_manager", err.Error())
	}
	if st == nil {
		return nil, newInvalidArgumentError("new_manager", "store is required")
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if logger == nil {
		logger = noopLogger{}
	}

	rooms, err := st.LoadChatrooms(ctx)
	if err != nil {
		return nil, newStoreError("new_manager", "could not load chatrooms", err)
	}
	msgs, err := st.LoadMessages(ctx)
	if err != nil {
		return nil, newStoreError("new_manager", "could not load messages", err)
	}

	return &Manager{
		cfg:         cfg,
		store:       st,
		notifier:    notifier,
		simulator:   NewReplySimulator(),
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
		chatrooms:   rooms,
		messages:    msgs,
		cursor:      Cursor{Page: 1, PageSize: cfg.PageSize},
		pending:     make(map[string]*replyTask),
		typingCount: make(map[string]int),
	}, nil
}

// SetTypingListener registers the observer for typing-flag transitions.
func (m *Manager) SetTypingListener(fn TypingListener) {
	m.mu.Lock()
	m.onTyping = fn
	m.mu.Unlock()
}

// CreateChatroom constructs a new room with a fresh identifier and zero
// message count, appends it and persists the collection.
func (m *Manager) CreateChatroom(ctx context.Context, title string) (domain.Chatroom, error) {
	if strings.TrimSpace(title) == "" {
		m.notifier.Error("Chatroom title cannot be empty")
		return domain.Chatroom{}, newInvalidArgumentError("create_chatroom", "title cannot be empty")
	}

	m.mu.Lock()
	room := domain.Chatroom{
		ID:        m.newID(),
		Title:     title,
		CreatedAt: m.now(),
	}
	m.chatrooms = append(m.chatrooms, room)
	m.persistChatrooms(ctx)
	m.mu.Unlock()

	m.logger.Info("chatroom created", "chatroom_id", room.ID)
	m.notifier.Success("Chatroom created successfully!")
	return room, nil
}

// DeleteChatroom removes the room, cascades to its messages, cancels any
// pending simulated reply for it and clears the selection if it was selected.
func (m *Manager) DeleteChatroom(ctx context.Context, id string) error {
	m.mu.Lock()
	idx := m.roomIndex(id)
	if idx < 0 {
		m.mu.Unlock()
		m.notifier.Error("Chatroom not found")
		return newNotFoundError("delete_chatroom", id)
	}

	m.chatrooms = append(m.chatrooms[:idx], m.chatrooms[idx+1:]...)

	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ChatroomID != id {
			kept = append(kept, msg)
		}
	}
	m.messages = kept

	for taskID, task := range m.pending {
		if task.chatroomID == id {
			task.timer.Stop()
			delete(m.pending, taskID)
		}
	}
	typingCleared := m.typingCount[id] > 0
	delete(m.typingCount, id)

	if m.selected == id {
		m.selected = ""
		m.hasMore = false
	}

	m.persistChatrooms(ctx)
	m.persistMessages(ctx)
	notify := m.onTyping
	m.mu.Unlock()

	if typingCleared && notify != nil {
		notify(id, false)
	}
	m.logger.Info("chatroom deleted", "chatroom_id", id)
	m.notifier.Success("Chatroom deleted successfully!")
	return nil
}

// SendMessage appends a user message to the selected chatroom, persists it,
// and schedules the simulated reply after a randomized delay. The call
// returns as soon as the user half of the cycle is durable; the reply half
// runs later on its own schedule.
func (m *Manager) SendMessage(ctx context.Context, text, image string) (domain.Message, error) {
	m.mu.Lock()
	if m.selected == "" {
		m.mu.Unlock()
		return domain.Message{}, newInvalidArgumentError("send_message", ErrNoChatroomSelected.Error())
	}
	roomID := m.selected

	msg := domain.Message{
		ID:         m.newID(),
		ChatroomID: roomID,
		Sender:     domain.SenderUser,
		Text:       text,
		Image:      image,
		Timestamp:  m.now(),
	}
	m.messages = append(m.messages, msg)
	m.persistMessages(ctx)

	if idx := m.roomIndex(roomID); idx >= 0 {
		m.chatrooms[idx].LastMessage = text
		m.chatrooms[idx].MessageCount++
	}
	m.persistChatrooms(ctx)

	m.typingCount[roomID]++
	typingStarted := m.typingCount[roomID] == 1

	task := &replyTask{
		id:         m.newID(),
		chatroomID: roomID,
		userText:   text,
	}
	delay := m.simulator.delay(m.cfg.MinReplyDelay, m.cfg.MaxReplyDelay)
	task.timer = time.AfterFunc(delay, func() { m.completeReply(task.id) })
	m.pending[task.id] = task

	notify := m.onTyping
	m.mu.Unlock()

	if typingStarted && notify != nil {
		notify(roomID, true)
	}
	m.notifier.Success("Message sent!")
	return msg, nil
}

// completeReply is the deferred half of a send cycle. It re-reads live state
// under the lock, so replies land on whatever the collections look like at
// fire time, and it drops silently when the room is gone.
func (m *Manager) completeReply(taskID string) {
	ctx := context.Background()

	m.mu.Lock()
	task, ok := m.pending[taskID]
	if !ok || m.closed {
		m.mu.Unlock()
		return
	}
	delete(m.pending, taskID)

	roomID := task.chatroomID
	if m.typingCount[roomID] > 0 {
		m.typingCount[roomID]--
	}
	typingStopped := m.typingCount[roomID] == 0
	notify := m.onTyping

	idx := m.roomIndex(roomID)
	if idx < 0 {
		// Room deleted while the reply was pending.
		m.mu.Unlock()
		if typingStopped && notify != nil {
			notify(roomID, false)
		}
		return
	}

	reply := domain.Message{
		ID:         m.newID(),
		ChatroomID: roomID,
		Sender:     domain.SenderAI,
		Text:       m.simulator.Generate(task.userText),
		Timestamp:  m.now(),
	}
	m.messages = append(m.messages, reply)
	m.persistMessages(ctx)

	m.chatrooms[idx].MessageCount++
	m.persistChatrooms(ctx)
	m.mu.Unlock()

	if typingStopped && notify != nil {
		notify(roomID, false)
	}
	m.logger.Debug("simulated reply delivered", "chatroom_id", roomID)
}

// LoadMessages selects the chatroom, positions the cursor on page and returns
// the visible window of its history, newest messages first exposed.
func (m *Manager) LoadMessages(chatroomID string, page int) ([]domain.Message, bool, error) {
	if page < 1 {
		page = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.roomIndex(chatroomID) < 0 {
		return nil, false, newNotFoundError("load_messages", chatroomID)
	}

	m.selected = chatroomID
	m.cursor = Cursor{Page: page, PageSize: m.cfg.PageSize}
	return m.visibleLocked(), m.hasMore, nil
}

// LoadMoreMessages advances the cursor one page. When nothing is selected or
// no more history exists it returns the current window unchanged.
func (m *Manager) LoadMoreMessages() ([]domain.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == "" || !m.hasMore {
		if m.selected == "" {
			return nil, false
		}
		return m.visibleLocked(), m.hasMore
	}
	m.cursor.Page++
	return m.visibleLocked(), m.hasMore
}

// visibleLocked slices the selected room's history down to the cursor's
// window (the most recent VisibleCount messages) and refreshes hasMore.
// Callers must hold the lock.
func (m *Manager) visibleLocked() []domain.Message {
	var roomMsgs []domain.Message
	for _, msg := range m.messages {
		if msg.ChatroomID == m.selected {
			roomMsgs = append(roomMsgs, msg)
		}
	}
	total := len(roomMsgs)
	m.hasMore = m.cursor.HasMore(total)
	visible := m.cursor.VisibleCount(total)
	return append([]domain.Message(nil), roomMsgs[total-visible:]...)
}

// SetSearchQuery stores the chatroom title filter. It affects only the view
// returned by Chatrooms, never message storage or pagination state.
func (m *Manager) SetSearchQuery(query string) {
	m.mu.Lock()
	m.searchQuery = query
	m.mu.Unlock()
}

// Chatrooms returns the rooms whose titles contain the search query,
// case-insensitively. An empty query returns every room.
func (m *Manager) Chatrooms() []domain.Chatroom {
	m.mu.Lock()
	defer m.mu.Unlock()

	query := strings.ToLower(m.searchQuery)
	rooms := make([]domain.Chatroom, 0, len(m.chatrooms))
	for _, room := range m.chatrooms {
		if query == "" || strings.Contains(strings.ToLower(room.Title), query) {
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// Chatroom returns one room by id.
func (m *Manager) Chatroom(id string) (domain.Chatroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx := m.roomIndex(id); idx >= 0 {
		return m.chatrooms[idx], nil
	}
	return domain.Chatroom{}, newNotFoundError("get_chatroom", id)
}

// CurrentChatroom reports the selected room id, empty when none.
func (m *Manager) CurrentChatroom() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// IsTyping reports whether a simulated reply is pending for the selected room.
func (m *Manager) IsTyping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected != "" && m.typingCount[m.selected] > 0
}

// HasMoreMessages reports whether older history exists beyond the cursor.
func (m *Manager) HasMoreMessages() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasMore
}

// SearchQuery returns the stored chatroom filter.
func (m *Manager) SearchQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchQuery
}

// Close cancels every pending simulated reply. Used on logout and shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for taskID, task := range m.pending {
		task.timer.Stop()
		delete(m.pending, taskID)
	}
	m.typingCount = make(map[string]int)
}

func (m *Manager) roomIndex(id string) int {
	for i := range m.chatrooms {
		if m.chatrooms[i].ID == id {
			return i
		}
	}
	return -1
}

// persistChatrooms mirrors the chatroom collection into the store. A failed
// write is reported but never blocks the in-memory operation.
func (m *Manager) persistChatrooms(ctx context.Context) {
	if err := m.store.SaveChatrooms(ctx, m.chatrooms); err != nil {
		m.logger.Error("failed to persist chatrooms", "error", err)
		m.notifier.Error("Your changes could not be saved")
	}
}

func (m *Manager) persistMessages(ctx context.Context) {
	if err := m.store.SaveMessages(ctx, m.messages); err != nil {
		m.logger.Error("failed to persist messages", "error", err)
		m.notifier.Error("Your changes could not be saved")
	}
}
