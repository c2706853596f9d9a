package yaarchive

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

type messageKey struct {
	chatID    int64
	messageID int64
}

// MemoryArchive is an in-memory IArchiveRepo, used for testing or when
// persistence is not required.
type MemoryArchive struct {
	mutex    sync.RWMutex
	messages map[messageKey]StoredMessage
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{
		messages: make(map[messageKey]StoredMessage),
	}
}

func (m *MemoryArchive) Store(_ context.Context, msg *StoredMessage) yaerrors.Error {
	if err := msg.validate(); err != nil {
		return err.Wrap("[MEMORY] failed to store")
	}

	stored := *msg
	stored.Entities = cloneEntities(msg.Entities)

	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.messages[messageKey{chatID: msg.ChatID, messageID: msg.MessageID}] = stored

	return nil
}

func (m *MemoryArchive) Load(_ context.Context, chatID, messageID int64) (*StoredMessage, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stored, ok := m.messages[messageKey{chatID: chatID, messageID: messageID}]
	if !ok {
		return nil, notFound(chatID, messageID).Wrap("[MEMORY] failed to load")
	}

	stored.Entities = cloneEntities(stored.Entities)

	return &stored, nil
}

func (m *MemoryArchive) List(_ context.Context, chatID int64) ([]StoredMessage, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]StoredMessage, 0)

	for key, stored := range m.messages {
		if key.chatID == chatID {
			stored.Entities = cloneEntities(stored.Entities)
			result = append(result, stored)
		}
	}

	slices.SortFunc(result, func(a, b StoredMessage) int {
		return cmp.Compare(a.MessageID, b.MessageID)
	})

	return result, nil
}

func (m *MemoryArchive) Delete(_ context.Context, chatID, messageID int64) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := messageKey{chatID: chatID, messageID: messageID}

	if _, ok := m.messages[key]; !ok {
		return notFound(chatID, messageID).Wrap("[MEMORY] failed to delete")
	}

	delete(m.messages, key)

	return nil
}
