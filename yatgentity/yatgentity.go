// Package yatgentity converts entities between the gotd MTProto types and yaentity.
//
// Example usage:
//
//	msg := update.Message.(*tg.Message)
//
//	resolved, err := yatgentity.ResolveTG(msg.Message, msg.Entities)
//	if err != nil {
//	    return err.Wrap("resolve incoming message")
//	}
package yatgentity

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/gotd/td/tg"
)

// FromTG converts MTProto entities. Entities that have no yaentity counterpart
// (unknown, bank card, input mentions) fail with ErrUnsupportedEntity.
func FromTG(entities []tg.MessageEntityClass) ([]yaentity.Entity, yaerrors.Error) {
	result := make([]yaentity.Entity, 0, len(entities))

	for i, entity := range entities {
		converted, err := fromTG(entity)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("convert entity %d", i))
		}

		result = append(result, converted)
	}

	return result, nil
}

// ToTG converts entities into their MTProto form.
func ToTG(entities []yaentity.Entity) ([]tg.MessageEntityClass, yaerrors.Error) {
	result := make([]tg.MessageEntityClass, 0, len(entities))

	for i := range entities {
		converted, err := toTG(&entities[i])
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("convert entity %d", i))
		}

		result = append(result, converted)
	}

	return result, nil
}

// ResolveTG converts MTProto entities and resolves them against text.
// The resolved entities point into a freshly converted slice owned by the result.
func ResolveTG(text string, entities []tg.MessageEntityClass) ([]yaentity.ResolvedEntity, yaerrors.Error) {
	converted, err := FromTG(entities)
	if err != nil {
		return nil, err.Wrap("resolve telegram entities")
	}

	resolved, err := yaentity.Resolve(text, converted)
	if err != nil {
		return nil, err.Wrap("resolve telegram entities")
	}

	return resolved, nil
}

func fromTG(entity tg.MessageEntityClass) (yaentity.Entity, yaerrors.Error) {
	if isNil(entity) {
		return yaentity.Entity{}, yaerrors.FromError(
			http.StatusBadRequest,
			ErrUnsupportedEntity,
			"convert nil entity",
		)
	}

	offset, length := entity.GetOffset(), entity.GetLength()
	if offset < 0 || length < 0 {
		return yaentity.Entity{}, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			yaentity.ErrInvalidOffset,
			fmt.Sprintf("convert %s: offset %d, length %d", entity.TypeName(), offset, length),
		)
	}

	var kind yaentity.Kind

	switch e := entity.(type) {
	case *tg.MessageEntityMention:
		kind = yaentity.NewKind(yaentity.KindMention)
	case *tg.MessageEntityHashtag:
		kind = yaentity.NewKind(yaentity.KindHashtag)
	case *tg.MessageEntityCashtag:
		kind = yaentity.NewKind(yaentity.KindCashtag)
	case *tg.MessageEntityBotCommand:
		kind = yaentity.NewKind(yaentity.KindBotCommand)
	case *tg.MessageEntityURL:
		kind = yaentity.NewKind(yaentity.KindURL)
	case *tg.MessageEntityEmail:
		kind = yaentity.NewKind(yaentity.KindEmail)
	case *tg.MessageEntityPhone:
		kind = yaentity.NewKind(yaentity.KindPhoneNumber)
	case *tg.MessageEntityBold:
		kind = yaentity.NewKind(yaentity.KindBold)
	case *tg.MessageEntityItalic:
		kind = yaentity.NewKind(yaentity.KindItalic)
	case *tg.MessageEntityUnderline:
		kind = yaentity.NewKind(yaentity.KindUnderline)
	case *tg.MessageEntityStrike:
		kind = yaentity.NewKind(yaentity.KindStrikethrough)
	case *tg.MessageEntitySpoiler:
		kind = yaentity.NewKind(yaentity.KindSpoiler)
	case *tg.MessageEntityBlockquote:
		kind = yaentity.NewKind(yaentity.KindBlockquote)
	case *tg.MessageEntityCode:
		kind = yaentity.NewKind(yaentity.KindCode)
	case *tg.MessageEntityPre:
		kind = yaentity.PreKind(e.Language)
	case *tg.MessageEntityTextURL:
		kind = yaentity.TextLinkKind(e.URL)
	case *tg.MessageEntityMentionName:
		kind = yaentity.TextMentionKind(yaentity.User{ID: e.UserID})
	case *tg.MessageEntityCustomEmoji:
		kind = yaentity.CustomEmojiKind(strconv.FormatInt(e.DocumentID, 10))
	default:
		return yaentity.Entity{}, yaerrors.FromError(
			http.StatusBadRequest,
			ErrUnsupportedEntity,
			"convert "+entity.TypeName(),
		)
	}

	return yaentity.New(kind, uint32(offset), uint32(length)), nil //nolint:gosec // Checked above
}

func toTG(entity *yaentity.Entity) (tg.MessageEntityClass, yaerrors.Error) {
	offset, length := int(entity.Offset), int(entity.Length)

	//nolint:exhaustive // Unknown kinds are reported below
	switch entity.Kind.Type {
	case yaentity.KindMention:
		return &tg.MessageEntityMention{Offset: offset, Length: length}, nil
	case yaentity.KindHashtag:
		return &tg.MessageEntityHashtag{Offset: offset, Length: length}, nil
	case yaentity.KindCashtag:
		return &tg.MessageEntityCashtag{Offset: offset, Length: length}, nil
	case yaentity.KindBotCommand:
		return &tg.MessageEntityBotCommand{Offset: offset, Length: length}, nil
	case yaentity.KindURL:
		return &tg.MessageEntityURL{Offset: offset, Length: length}, nil
	case yaentity.KindEmail:
		return &tg.MessageEntityEmail{Offset: offset, Length: length}, nil
	case yaentity.KindPhoneNumber:
		return &tg.MessageEntityPhone{Offset: offset, Length: length}, nil
	case yaentity.KindBold:
		return &tg.MessageEntityBold{Offset: offset, Length: length}, nil
	case yaentity.KindItalic:
		return &tg.MessageEntityItalic{Offset: offset, Length: length}, nil
	case yaentity.KindUnderline:
		return &tg.MessageEntityUnderline{Offset: offset, Length: length}, nil
	case yaentity.KindStrikethrough:
		return &tg.MessageEntityStrike{Offset: offset, Length: length}, nil
	case yaentity.KindSpoiler:
		return &tg.MessageEntitySpoiler{Offset: offset, Length: length}, nil
	case yaentity.KindBlockquote:
		return &tg.MessageEntityBlockquote{Offset: offset, Length: length}, nil
	case yaentity.KindCode:
		return &tg.MessageEntityCode{Offset: offset, Length: length}, nil
	case yaentity.KindPre:
		return &tg.MessageEntityPre{Offset: offset, Length: length, Language: entity.Kind.Language}, nil
	case yaentity.KindTextLink:
		return &tg.MessageEntityTextURL{Offset: offset, Length: length, URL: entity.Kind.URL}, nil
	case yaentity.KindTextMention:
		if entity.Kind.User == nil {
			return nil, yaerrors.FromError(
				http.StatusBadRequest,
				yaentity.ErrMissingPayload,
				"convert text_mention: field \"user\"",
			)
		}

		return &tg.MessageEntityMentionName{Offset: offset, Length: length, UserID: entity.Kind.User.ID}, nil
	case yaentity.KindCustomEmoji:
		id, err := strconv.ParseInt(entity.Kind.CustomEmojiID, 10, 64)
		if err != nil {
			return nil, yaerrors.FromError(
				http.StatusBadRequest,
				err,
				fmt.Sprintf("convert custom_emoji: id %q", entity.Kind.CustomEmojiID),
			)
		}

		return &tg.MessageEntityCustomEmoji{Offset: offset, Length: length, DocumentID: id}, nil
	default:
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			yaentity.ErrUnknownKind,
			fmt.Sprintf("convert kind %d", entity.Kind.Type),
		)
	}
}

// isNil reports a nil interface as well as a typed nil pointer inside it.
func isNil(entity tg.MessageEntityClass) bool {
	if entity == nil {
		return true
	}

	value := reflect.ValueOf(entity)

	return value.Kind() == reflect.Pointer && value.IsNil()
}
