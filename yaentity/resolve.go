package yaentity

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// Range is a half-open UTF-8 byte range [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Overlaps reports whether r and other share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// ResolvedEntity is an Entity whose offsets were converted to UTF-8 byte offsets.
//
// It is a view: it keeps the original message string and a pointer to the entity in
// the slice passed to Resolve, so the caller must not modify that slice while the
// resolved entities are in use.
type ResolvedEntity struct {
	message   string
	byteRange Range
	entity    *Entity
}

// Kind returns the kind of the underlying entity.
func (r ResolvedEntity) Kind() *Kind {
	return &r.entity.Kind
}

// Entity returns the entity the view was resolved from.
func (r ResolvedEntity) Entity() *Entity {
	return r.entity
}

// Text returns the part of the message covered by the entity.
func (r ResolvedEntity) Text() string {
	return r.message[r.byteRange.Start:r.byteRange.End]
}

// Range returns the UTF-8 byte range of the entity within the message.
func (r ResolvedEntity) Range() Range {
	return r.byteRange
}

// Start returns the byte offset of the start of the entity.
func (r ResolvedEntity) Start() int {
	return r.byteRange.Start
}

// End returns the byte offset right after the entity.
func (r ResolvedEntity) End() int {
	return r.byteRange.End
}

// Len returns the length of the entity in bytes.
func (r ResolvedEntity) Len() int {
	return r.byteRange.Len()
}

// MessageText returns the full text of the message.
func (r ResolvedEntity) MessageText() string {
	return r.message
}

// cutPoint is a UTF-16 position waiting to be translated, together with the slot
// the translated byte offset goes to: 2*i for the start of entity i, 2*i+1 for its end.
type cutPoint struct {
	utf16 uint64
	slot  int
}

func (c cutPoint) describe() string {
	edge := "start"
	if c.slot%2 == 1 {
		edge = "end"
	}

	return fmt.Sprintf("entity %d %s at utf-16 offset %d", c.slot/2, edge, c.utf16)
}

// Resolve converts the UTF-16 offsets of entities into UTF-8 byte ranges over text.
//
// The i-th result belongs to the i-th entity. Overlapping and nested entities are
// resolved independently. The text is walked once, whatever the number of entities.
//
// An offset that points inside a surrogate pair or past the end of the text fails the
// whole call with ErrInvalidOffset (code 422); no partial result is returned.
//
// Example usage:
//
//	resolved, err := yaentity.Resolve("b i b", []yaentity.Entity{
//	    yaentity.Bold(0, 2),
//	    yaentity.Bold(2, 3),
//	    yaentity.Italic(2, 1),
//	})
//	// resolved texts: "b ", "i b", "i"
func Resolve(text string, entities []Entity) ([]ResolvedEntity, yaerrors.Error) {
	if len(entities) == 0 {
		return []ResolvedEntity{}, nil
	}

	bounds := make([]int, 2*len(entities))
	pending := make([]cutPoint, 0, len(bounds))

	for i := range entities {
		pending = append(pending,
			cutPoint{utf16: uint64(entities[i].Offset), slot: 2 * i},
			cutPoint{utf16: entities[i].End(), slot: 2*i + 1},
		)
	}

	// Decreasing order: the smallest pending position is always at the tail.
	slices.SortFunc(pending, func(a, b cutPoint) int {
		return cmp.Compare(b.utf16, a.utf16)
	})

	var (
		lenUTF8  int
		lenUTF16 uint64
	)

	patch := func() yaerrors.Error {
		for len(pending) > 0 {
			last := pending[len(pending)-1]

			if last.utf16 > lenUTF16 {
				return nil
			}

			if last.utf16 < lenUTF16 {
				return yaerrors.FromError(
					http.StatusUnprocessableEntity,
					ErrInvalidOffset,
					fmt.Sprintf("resolve entities: %s splits a surrogate pair", last.describe()),
				)
			}

			bounds[last.slot] = lenUTF8
			pending = pending[:len(pending)-1]
		}

		return nil
	}

	for lenUTF8 < len(text) && len(pending) > 0 {
		if err := patch(); err != nil {
			return nil, err
		}

		r, size := utf8.DecodeRuneInString(text[lenUTF8:])

		lenUTF8 += size
		lenUTF16 += uint64(utf16.RuneLen(r))
	}

	// Positions equal to the length of the whole text.
	if err := patch(); err != nil {
		return nil, err
	}

	if len(pending) > 0 {
		last := pending[len(pending)-1]

		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrInvalidOffset,
			fmt.Sprintf(
				"resolve entities: %s is past the end of the text (%d utf-16 code units)",
				last.describe(),
				lenUTF16,
			),
		)
	}

	resolved := make([]ResolvedEntity, len(entities))

	for i := range entities {
		resolved[i] = ResolvedEntity{
			message: text,
			byteRange: Range{
				Start: bounds[2*i],
				End:   bounds[2*i+1],
			},
			entity: &entities[i],
		}
	}

	return resolved, nil
}

// MustResolve is like Resolve but panics on invalid offsets.
// Use it only for entities the program produced itself.
func MustResolve(text string, entities []Entity) []ResolvedEntity {
	resolved, err := Resolve(text, entities)
	if err != nil {
		panic(err)
	}

	return resolved
}
