package yaentity

import (
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// KindType selects the kind of a message entity. The zero value is not a valid kind.
type KindType uint8

const (
	KindUnknown KindType = iota
	KindMention
	KindHashtag
	KindCashtag
	KindBotCommand
	KindURL
	KindEmail
	KindPhoneNumber
	KindBold
	KindItalic
	KindCode
	KindPre
	KindTextLink
	KindTextMention
	KindUnderline
	KindStrikethrough
	KindSpoiler
	KindBlockquote
	KindCustomEmoji

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:       "unknown",
	KindMention:       "mention",
	KindHashtag:       "hashtag",
	KindCashtag:       "cashtag",
	KindBotCommand:    "bot_command",
	KindURL:           "url",
	KindEmail:         "email",
	KindPhoneNumber:   "phone_number",
	KindBold:          "bold",
	KindItalic:        "italic",
	KindCode:          "code",
	KindPre:           "pre",
	KindTextLink:      "text_link",
	KindTextMention:   "text_mention",
	KindUnderline:     "underline",
	KindStrikethrough: "strikethrough",
	KindSpoiler:       "spoiler",
	KindBlockquote:    "blockquote",
	KindCustomEmoji:   "custom_emoji",
}

var kindsByName = func() map[string]KindType {
	m := make(map[string]KindType, len(kindNames)-1)

	for k := KindUnknown + 1; k < kindCount; k++ {
		m[kindNames[k]] = k
	}

	return m
}()

// ParseKindType returns the kind with the given wire name, e.g. "text_link".
func ParseKindType(name string) (KindType, yaerrors.Error) {
	if k, ok := kindsByName[name]; ok {
		return k, nil
	}

	return KindUnknown, yaerrors.FromError(
		http.StatusBadRequest,
		ErrUnknownKind,
		fmt.Sprintf("parse kind %q", name),
	)
}

// Valid reports whether k is one of the known kinds.
func (k KindType) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// String returns the wire name of the kind.
func (k KindType) String() string {
	if k >= kindCount {
		return kindNames[KindUnknown]
	}

	return kindNames[k]
}

func (k KindType) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrUnknownKind,
			fmt.Sprintf("marshal kind %d", k),
		)
	}

	return []byte(k.String()), nil
}

func (k *KindType) UnmarshalText(text []byte) error {
	parsed, err := ParseKindType(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// User is the part of a Telegram user record carried by text_mention entities.
type User struct {
	ID           int64  `json:"id"                      msgpack:"id"`
	IsBot        bool   `json:"is_bot"                  msgpack:"is_bot"`
	FirstName    string `json:"first_name"              msgpack:"first_name"`
	LastName     string `json:"last_name,omitempty"     msgpack:"last_name,omitempty"`
	Username     string `json:"username,omitempty"      msgpack:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty" msgpack:"language_code,omitempty"`
}

// Kind is the kind of an entity together with its payload.
// Only the payload field belonging to Type is meaningful:
//
//   - KindPre: Language (may be empty)
//   - KindTextLink: URL
//   - KindTextMention: User
//   - KindCustomEmoji: CustomEmojiID
type Kind struct {
	Type          KindType `msgpack:"type"`
	Language      string   `msgpack:"language,omitempty"`
	URL           string   `msgpack:"url,omitempty"`
	User          *User    `msgpack:"user,omitempty"`
	CustomEmojiID string   `msgpack:"custom_emoji_id,omitempty"`
}

// NewKind returns a kind without payload.
func NewKind(t KindType) Kind {
	return Kind{Type: t}
}

func PreKind(language string) Kind {
	return Kind{Type: KindPre, Language: language}
}

func TextLinkKind(url string) Kind {
	return Kind{Type: KindTextLink, URL: url}
}

func TextMentionKind(user User) Kind {
	return Kind{Type: KindTextMention, User: &user}
}

func CustomEmojiKind(id string) Kind {
	return Kind{Type: KindCustomEmoji, CustomEmojiID: id}
}

// Equal compares kinds including payload. Users are compared by value.
func (k Kind) Equal(other Kind) bool {
	if k.Type != other.Type {
		return false
	}

	switch k.Type {
	case KindPre:
		return k.Language == other.Language
	case KindTextLink:
		return k.URL == other.URL
	case KindTextMention:
		if k.User == nil || other.User == nil {
			return k.User == other.User
		}

		return *k.User == *other.User
	case KindCustomEmoji:
		return k.CustomEmojiID == other.CustomEmojiID
	default:
		return true
	}
}

func (k Kind) String() string {
	return k.Type.String()
}

// validate checks that kinds which require a payload carry it.
func (k Kind) validate() yaerrors.Error {
	if !k.Type.Valid() {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrUnknownKind,
			fmt.Sprintf("validate kind %d", k.Type),
		)
	}

	var missing string

	//nolint:exhaustive // Only kinds with a mandatory payload are checked
	switch k.Type {
	case KindTextLink:
		if k.URL == "" {
			missing = "url"
		}
	case KindTextMention:
		if k.User == nil {
			missing = "user"
		}
	case KindCustomEmoji:
		if k.CustomEmojiID == "" {
			missing = "custom_emoji_id"
		}
	}

	if missing != "" {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrMissingPayload,
			fmt.Sprintf("validate %s: field %q", k.Type, missing),
		)
	}

	return nil
}
