package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"officeHub/internal/logger"
	"officeHub/internal/models/message"
	repo "officeHub/internal/repository"
	"officeHub/internal/repository/collection"

	"go.uber.org/zap"
)

type MessageStore struct {
	messages *collection.Collection[message.Message]
	writeMtx *sync.Mutex
	opts     options
}

func NewMessageStore(slot repo.Slot, opts ...Option) *MessageStore {
	return &MessageStore{
		messages: collection.New[message.Message](repo.SlotMessages, slot),
		writeMtx: &sync.Mutex{},
		opts:     newOptions(opts),
	}
}

func (s *MessageStore) Load(ctx context.Context, seed []message.Message) error {
	if err := s.messages.Load(ctx, seed); err != nil {
		return fmt.Errorf("загрузка сообщений: %w", err)
	}
	return nil
}

// AddMessage не проверяет роль отправителя: право на объявления проверяет вызывающий код.
func (s *MessageStore) AddMessage(ctx context.Context, senderID, content string, isAnnouncement bool) (message.Message, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	id, err := s.opts.newID()
	if err != nil {
		return message.Message{}, fmt.Errorf("генерация id: %w", err)
	}

	m := message.Message{
		ID:             id,
		SenderID:       senderID,
		Content:        content,
		Timestamp:      s.opts.now(),
		IsRead:         false,
		IsAnnouncement: isAnnouncement,
	}
	if err := validate(m); err != nil {
		return message.Message{}, err
	}
	if err := s.messages.Insert(ctx, m); err != nil {
		return message.Message{}, mutationError(ResourceMessage, m.ID, err)
	}

	logger.Info("Store: Сообщение отправлено",
		zap.String("message_id", m.ID),
		zap.String("sender_id", senderID),
		zap.Bool("announcement", isAnnouncement),
	)
	return m, nil
}

// MarkAsRead необратим; уже прочитанное сообщение не перезаписывается.
func (s *MessageStore) MarkAsRead(ctx context.Context, id string) error {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	m, ok := s.messages.Get(id)
	if !ok {
		logger.Info("Store: Сообщение не найдено", zap.String("target_id", id))
		return NewNotFound(ResourceMessage, id)
	}
	if m.IsRead {
		return nil
	}

	_, err := s.messages.Update(ctx, id, func(m *message.Message) error {
		m.IsRead = true
		return nil
	})
	if err != nil {
		return mutationError(ResourceMessage, id, err)
	}
	return nil
}

// MarkAllAsRead возвращает число сообщений, отмеченных прочитанными.
func (s *MessageStore) MarkAllAsRead(ctx context.Context) (int, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	changed, err := s.messages.UpdateAll(ctx, func(m *message.Message) bool {
		if m.IsRead {
			return false
		}
		m.IsRead = true
		return true
	})
	if err != nil {
		return 0, NewPersistenceError(ResourceMessage, err)
	}

	logger.Info("Store: Все сообщения прочитаны", zap.Int("marked", changed))
	return changed, nil
}

func (s *MessageStore) RemoveMessage(ctx context.Context, id string) error {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	if err := s.messages.Delete(ctx, id); err != nil {
		return mutationError(ResourceMessage, id, err)
	}
	logger.Info("Store: Сообщение удалено", zap.String("message_id", id))
	return nil
}

func (s *MessageStore) GetMessageByID(id string) (message.Message, bool) {
	return s.messages.Get(id)
}

func (s *MessageStore) GetUnreadCount() int {
	return s.messages.Count(func(m message.Message) bool { return !m.IsRead })
}

func (s *MessageStore) GetMessagesBySender(senderID string) []message.Message {
	return s.messages.Filter(func(m message.Message) bool { return m.SenderID == senderID })
}

func (s *MessageStore) GetAnnouncements() []message.Message {
	return s.messages.Filter(func(m message.Message) bool { return m.IsAnnouncement })
}

// ListMessages - в порядке добавления.
func (s *MessageStore) ListMessages() []message.Message {
	return s.messages.List()
}

// Chronological - по возрастанию времени; при равном времени сохраняется порядок добавления.
func (s *MessageStore) Chronological() []message.Message {
	messages := s.messages.List()
	slices.SortStableFunc(messages, func(a, b message.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return messages
}
