package yaentity

import "strings"

// Builder assembles a message piece by piece and computes entity offsets for you,
// so the produced entities always resolve against the produced text.
//
// Example usage:
//
//	msg := yaentity.NewBuilder().
//	    Text("Deploy ").
//	    Entity(yaentity.NewKind(yaentity.KindBold), "finished").
//	    Text(" in ").
//	    Entity(yaentity.NewKind(yaentity.KindCode), "42s").
//	    Build()
type Builder struct {
	text     strings.Builder
	length   uint32
	entities []Entity
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Text appends plain text.
func (b *Builder) Text(s string) *Builder {
	b.text.WriteString(s)
	b.length += UTF16Len(s)

	return b
}

// Entity appends s covered by an entity of the given kind.
func (b *Builder) Entity(kind Kind, s string) *Builder {
	length := UTF16Len(s)

	b.entities = append(b.entities, New(kind, b.length, length))

	b.text.WriteString(s)
	b.length += length

	return b
}

// Nested appends the content of inner covered by an entity of the given kind.
// The outer entity comes first, followed by the entities of inner shifted into place.
func (b *Builder) Nested(kind Kind, inner *Builder) *Builder {
	b.entities = append(b.entities, New(kind, b.length, inner.length))

	for _, e := range inner.entities {
		b.entities = append(b.entities, e.WithOffset(e.Offset+b.length))
	}

	b.text.WriteString(inner.text.String())
	b.length += inner.length

	return b
}

// Len returns the length of the text built so far in UTF-16 code units.
func (b *Builder) Len() uint32 {
	return b.length
}

// Build returns the message. The builder may be reused afterwards; later
// appends do not affect already built messages.
func (b *Builder) Build() Message {
	entities := make([]Entity, len(b.entities))
	copy(entities, b.entities)

	return Message{
		Text:     b.text.String(),
		Entities: entities,
	}
}
