// Package yaentity models Telegram message entities and resolves their UTF-16 based
// offsets into UTF-8 byte ranges over Go strings.
//
// Telegram counts entity offsets and lengths in UTF-16 code units, while a Go string
// is indexed by UTF-8 bytes. Resolve converts every entity of a message in one pass:
//
//	text := "быба"
//	entities := []yaentity.Entity{yaentity.Bold(1, 1)}
//
//	resolved, err := yaentity.Resolve(text, entities)
//	if err != nil {
//	    // handle malformed offsets
//	}
//
//	fmt.Println(resolved[0].Text(), resolved[0].Range()) // ы [2, 4)
package yaentity

import (
	"strconv"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// Entity is one formatting or metadata annotation of a message.
// Offset and Length are counted in UTF-16 code units as on the wire.
type Entity struct {
	Kind   Kind   `msgpack:"kind"`
	Offset uint32 `msgpack:"offset"`
	Length uint32 `msgpack:"length"`
}

// Message is a text together with its entities, e.g. the text/entities or
// caption/caption_entities pair of a Telegram message.
type Message struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities,omitempty"`
}

// Resolve resolves the message entities against the message text.
// The result borrows both m.Text and m.Entities.
func (m *Message) Resolve() ([]ResolvedEntity, yaerrors.Error) {
	return Resolve(m.Text, m.Entities)
}

// New creates an entity of any kind.
func New(kind Kind, offset, length uint32) Entity {
	return Entity{
		Kind:   kind,
		Offset: offset,
		Length: length,
	}
}

// Bold creates an entity representing a bold text.
func Bold(offset, length uint32) Entity {
	return New(NewKind(KindBold), offset, length)
}

// Italic creates an entity representing an italic text.
func Italic(offset, length uint32) Entity {
	return New(NewKind(KindItalic), offset, length)
}

// Underline creates an entity representing an underlined text.
func Underline(offset, length uint32) Entity {
	return New(NewKind(KindUnderline), offset, length)
}

// Strikethrough creates an entity representing a strikethrough text.
func Strikethrough(offset, length uint32) Entity {
	return New(NewKind(KindStrikethrough), offset, length)
}

// Spoiler creates an entity representing a spoiler text.
func Spoiler(offset, length uint32) Entity {
	return New(NewKind(KindSpoiler), offset, length)
}

// Code creates an entity representing a monowidth text.
func Code(offset, length uint32) Entity {
	return New(NewKind(KindCode), offset, length)
}

// Pre creates an entity representing a monowidth block. language may be empty.
func Pre(language string, offset, length uint32) Entity {
	return New(PreKind(language), offset, length)
}

// Blockquote creates an entity representing a block quotation.
func Blockquote(offset, length uint32) Entity {
	return New(NewKind(KindBlockquote), offset, length)
}

// TextLink creates an entity representing a clickable text URL.
// The URL is not validated.
func TextLink(url string, offset, length uint32) Entity {
	return New(TextLinkKind(url), offset, length)
}

// TextMention creates an entity mentioning a user without a username.
//
// If you don't have a complete User, use TextMentionID instead.
func TextMention(user User, offset, length uint32) Entity {
	return New(TextMentionKind(user), offset, length)
}

// TextMentionID creates a text link of the form tg://user?id=<userID>
// that mentions the user.
func TextMentionID(userID int64, offset, length uint32) Entity {
	return TextLink(UserURL(userID), offset, length)
}

// CustomEmoji creates an entity rendering a custom emoji sticker.
func CustomEmoji(id string, offset, length uint32) Entity {
	return New(CustomEmojiKind(id), offset, length)
}

// Mention marks an @username mention.
func Mention(offset, length uint32) Entity {
	return New(NewKind(KindMention), offset, length)
}

// Hashtag marks a #hashtag.
func Hashtag(offset, length uint32) Entity {
	return New(NewKind(KindHashtag), offset, length)
}

// Cashtag marks a $USD cashtag.
func Cashtag(offset, length uint32) Entity {
	return New(NewKind(KindCashtag), offset, length)
}

// BotCommand marks a /command, optionally with @botname.
func BotCommand(offset, length uint32) Entity {
	return New(NewKind(KindBotCommand), offset, length)
}

// URL marks a plain URL detected in the text.
func URL(offset, length uint32) Entity {
	return New(NewKind(KindURL), offset, length)
}

// Email marks an email address.
func Email(offset, length uint32) Entity {
	return New(NewKind(KindEmail), offset, length)
}

// PhoneNumber marks a phone number.
func PhoneNumber(offset, length uint32) Entity {
	return New(NewKind(KindPhoneNumber), offset, length)
}

// UserURL returns the tg://user link of a user.
func UserURL(userID int64) string {
	return "tg://user?id=" + strconv.FormatInt(userID, 10)
}

// WithKind returns a copy of e with the kind replaced.
func (e Entity) WithKind(kind Kind) Entity {
	e.Kind = kind

	return e
}

// WithOffset returns a copy of e with the offset replaced.
func (e Entity) WithOffset(offset uint32) Entity {
	e.Offset = offset

	return e
}

// WithLength returns a copy of e with the length replaced.
func (e Entity) WithLength(length uint32) Entity {
	e.Length = length

	return e
}

// End returns the UTF-16 position right after the entity.
func (e Entity) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// Equal compares entities including the kind payload.
func (e Entity) Equal(other Entity) bool {
	return e.Offset == other.Offset && e.Length == other.Length && e.Kind.Equal(other.Kind)
}
