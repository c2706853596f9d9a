package yaentity

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// wireEntity is the Bot API shape of an entity: a flat object whose "type" field
// selects the kind and whose sibling fields carry the kind payload.
type wireEntity struct {
	Type          string `json:"type"`
	Offset        uint32 `json:"offset"`
	Length        uint32 `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

func toWire(e *Entity) (wireEntity, yaerrors.Error) {
	if err := e.Kind.validate(); err != nil {
		return wireEntity{}, err
	}

	wire := wireEntity{
		Type:   e.Kind.Type.String(),
		Offset: e.Offset,
		Length: e.Length,
	}

	//nolint:exhaustive // Kinds without payload need nothing else
	switch e.Kind.Type {
	case KindPre:
		wire.Language = e.Kind.Language
	case KindTextLink:
		wire.URL = e.Kind.URL
	case KindTextMention:
		wire.User = e.Kind.User
	case KindCustomEmoji:
		wire.CustomEmojiID = e.Kind.CustomEmojiID
	}

	return wire, nil
}

func fromWire(wire *wireEntity) (Entity, yaerrors.Error) {
	kindType, err := ParseKindType(wire.Type)
	if err != nil {
		return Entity{}, err
	}

	kind := NewKind(kindType)

	//nolint:exhaustive // Kinds without payload need nothing else
	switch kindType {
	case KindPre:
		kind.Language = wire.Language
	case KindTextLink:
		kind.URL = wire.URL
	case KindTextMention:
		kind.User = wire.User
	case KindCustomEmoji:
		kind.CustomEmojiID = wire.CustomEmojiID
	}

	if err := kind.validate(); err != nil {
		return Entity{}, err
	}

	return New(kind, wire.Offset, wire.Length), nil
}

// MarshalJSON encodes the entity in the Bot API shape, e.g.
// {"type":"pre","offset":1,"length":2,"language":"go"}.
func (e Entity) MarshalJSON() ([]byte, error) {
	wire, err := toWire(&e)
	if err != nil {
		return nil, err.Wrap("marshal entity")
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes an entity from the Bot API shape.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var wire wireEntity

	if err := json.Unmarshal(data, &wire); err != nil {
		return yaerrors.FromError(http.StatusBadRequest, err, "unmarshal entity")
	}

	entity, err := fromWire(&wire)
	if err != nil {
		return err.Wrap("unmarshal entity")
	}

	*e = entity

	return nil
}

type wireResolvedEntity struct {
	wireEntity

	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// MarshalJSON encodes the entity it was resolved from plus its byte range and text:
// {"type":"bold","offset":1,"length":1,"start":2,"end":4,"text":"ы"}.
func (r ResolvedEntity) MarshalJSON() ([]byte, error) {
	wire, err := toWire(r.entity)
	if err != nil {
		return nil, err.Wrap(fmt.Sprintf("marshal resolved entity %s", r.byteRange))
	}

	return json.Marshal(wireResolvedEntity{
		wireEntity: wire,
		Start:      r.byteRange.Start,
		End:        r.byteRange.End,
		Text:       r.Text(),
	})
}
