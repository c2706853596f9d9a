package yaarchive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaencoding"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArchivedMessage is the database model of a stored message. Entities are kept as a
// MessagePack blob.
type ArchivedMessage struct {
	ChatID    int64     `gorm:"primaryKey;autoIncrement:false"`
	MessageID int64     `gorm:"primaryKey;autoIncrement:false"`
	Text      string    `gorm:"type:text"`
	Entities  []byte    `gorm:"type:blob"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const (
	FieldChatID    = "chat_id"
	FieldMessageID = "message_id"
	FieldText      = "text"
	FieldEntities  = "entities"
	FieldUpdatedAt = "updated_at"
)

// GormArchive is the IArchiveRepo backed by a GORM database.
type GormArchive struct {
	poolDB *gorm.DB
}

// NewGormArchive runs the migrations for ArchivedMessage and returns the archive.
func NewGormArchive(poolDB *gorm.DB) (*GormArchive, yaerrors.Error) {
	if err := poolDB.AutoMigrate(&ArchivedMessage{}); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToMigrate),
			"[GORM] failed to make auto migrate",
		)
	}

	return &GormArchive{poolDB: poolDB}, nil
}

func (g *GormArchive) Store(ctx context.Context, msg *StoredMessage) yaerrors.Error {
	if err := msg.validate(); err != nil {
		return err.Wrap("[GORM] failed to store")
	}

	blob, yaErr := yaencoding.EncodeEntities(msg.Entities)
	if yaErr != nil {
		return yaErr.Wrap("[GORM] failed to store")
	}

	row := ArchivedMessage{
		ChatID:    msg.ChatID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
		Entities:  blob,
		CreatedAt: msg.CreatedAt,
	}

	if err := g.poolDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: FieldChatID}, {Name: FieldMessageID}},
			DoUpdates: clause.AssignmentColumns([]string{FieldText, FieldEntities, FieldUpdatedAt}),
		}).
		Create(&row).Error; err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToStore),
			fmt.Sprintf("[GORM] failed to store %d:%d", msg.ChatID, msg.MessageID),
		)
	}

	return nil
}

func (g *GormArchive) Load(ctx context.Context, chatID, messageID int64) (*StoredMessage, yaerrors.Error) {
	var row ArchivedMessage

	err := g.poolDB.WithContext(ctx).
		Where(FieldChatID+" = ? AND "+FieldMessageID+" = ?", chatID, messageID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(chatID, messageID).Wrap("[GORM] failed to load")
	}

	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToLoad),
			fmt.Sprintf("[GORM] failed to load %d:%d", chatID, messageID),
		)
	}

	return fromRow(&row)
}

func (g *GormArchive) List(ctx context.Context, chatID int64) ([]StoredMessage, yaerrors.Error) {
	var rows []ArchivedMessage

	if err := g.poolDB.WithContext(ctx).
		Where(FieldChatID+" = ?", chatID).
		Order(FieldMessageID).
		Find(&rows).Error; err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToLoad),
			fmt.Sprintf("[GORM] failed to list chat %d", chatID),
		)
	}

	result := make([]StoredMessage, 0, len(rows))

	for i := range rows {
		msg, err := fromRow(&rows[i])
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("[GORM] failed to list chat %d", chatID))
		}

		result = append(result, *msg)
	}

	return result, nil
}

func (g *GormArchive) Delete(ctx context.Context, chatID, messageID int64) yaerrors.Error {
	result := g.poolDB.WithContext(ctx).
		Where(FieldChatID+" = ? AND "+FieldMessageID+" = ?", chatID, messageID).
		Delete(&ArchivedMessage{})
	if result.Error != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(result.Error, ErrFailedToDelete),
			fmt.Sprintf("[GORM] failed to delete %d:%d", chatID, messageID),
		)
	}

	if result.RowsAffected == 0 {
		return notFound(chatID, messageID).Wrap("[GORM] failed to delete")
	}

	return nil
}

func fromRow(row *ArchivedMessage) (*StoredMessage, yaerrors.Error) {
	entities, err := yaencoding.DecodeEntities(row.Entities)
	if err != nil {
		return nil, err.Wrap(fmt.Sprintf("[GORM] failed to decode %d:%d", row.ChatID, row.MessageID))
	}

	return &StoredMessage{
		ChatID:    row.ChatID,
		MessageID: row.MessageID,
		Text:      row.Text,
		Entities:  entities,
		CreatedAt: row.CreatedAt,
	}, nil
}
