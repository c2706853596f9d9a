// Package yaarchive stores messages together with their entities.
//
// Entities are validated by resolving them against the text before anything is
// persisted, so every message loaded from an archive resolves.
//
// Example usage:
//
//	archive, err := yaarchive.NewGormArchive(poolDB)
//	if err != nil {
//	    log.Fatalf("archive: %v", err)
//	}
//
//	_ = archive.Store(ctx, &yaarchive.StoredMessage{ChatID: 1, MessageID: 2, Text: text, Entities: entities})
//
//	msg, _ := archive.Load(ctx, 1, 2)
//	resolved, _ := msg.Resolve()
package yaarchive

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// IArchiveRepo is implemented by every archive back-end.
type IArchiveRepo interface {
	// Store inserts or replaces a message. Messages whose entities do not resolve are
	// rejected with yaentity.ErrInvalidOffset.
	//
	// Example usage:
	//
	//   err := archive.Store(ctx, &yaarchive.StoredMessage{ChatID: 1, MessageID: 2, Text: "hi"})
	Store(ctx context.Context, msg *StoredMessage) yaerrors.Error

	// Load returns a stored message or ErrMessageNotFound.
	Load(ctx context.Context, chatID, messageID int64) (*StoredMessage, yaerrors.Error)

	// List returns the messages of a chat ordered by message id.
	List(ctx context.Context, chatID int64) ([]StoredMessage, yaerrors.Error)

	// Delete removes a stored message. A missing message yields ErrMessageNotFound.
	Delete(ctx context.Context, chatID, messageID int64) yaerrors.Error
}

// StoredMessage is a message kept in an archive.
type StoredMessage struct {
	ChatID    int64
	MessageID int64
	Text      string
	Entities  []yaentity.Entity
	CreatedAt time.Time
}

// Message returns the text and entities of the stored message.
func (m *StoredMessage) Message() yaentity.Message {
	return yaentity.Message{
		Text:     m.Text,
		Entities: m.Entities,
	}
}

// Resolve resolves the stored entities against the stored text.
func (m *StoredMessage) Resolve() ([]yaentity.ResolvedEntity, yaerrors.Error) {
	resolved, err := yaentity.Resolve(m.Text, m.Entities)
	if err != nil {
		return nil, err.Wrap(fmt.Sprintf("resolve archived message %d:%d", m.ChatID, m.MessageID))
	}

	return resolved, nil
}

func (m *StoredMessage) validate() yaerrors.Error {
	if m.MessageID <= 0 {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidMessageID,
			fmt.Sprintf("validate archived message %d:%d", m.ChatID, m.MessageID),
		)
	}

	if _, err := m.Resolve(); err != nil {
		return err.Wrap("validate archived message")
	}

	return nil
}

func notFound(chatID, messageID int64) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusNotFound,
		ErrMessageNotFound,
		fmt.Sprintf("load archived message %d:%d", chatID, messageID),
	)
}

func cloneEntities(entities []yaentity.Entity) []yaentity.Entity {
	if entities == nil {
		return nil
	}

	clone := make([]yaentity.Entity, len(entities))

	for i, e := range entities {
		if e.Kind.User != nil {
			user := *e.Kind.User
			e.Kind.User = &user
		}

		clone[i] = e
	}

	return clone
}
