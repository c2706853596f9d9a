package yatgmessageencoding

import (
	"cmp"
	"slices"
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// markup is the part of an encoding that differs between markup languages.
type markup interface {
	// open returns the opening markup of kind and false if the kind has none.
	open(kind *yaentity.Kind) (string, bool)
	close(kind *yaentity.Kind) string
	escape(out *strings.Builder, text string)
}

type span struct {
	entity yaentity.ResolvedEntity
	index  int
}

type encoding struct {
	name   string
	markup markup
	kinds  yaentity.KindSet
}

func (e *encoding) Name() string {
	return e.name
}

// Unparse resolves the entities and walks the text once, opening and closing markup at
// entity boundaries. Entities are kept properly nested: when an inner entity outlives the
// one it was opened in, it is closed and reopened around the outer closing markup.
func (e *encoding) Unparse(text string, entities []yaentity.Entity) (string, yaerrors.Error) {
	resolved, err := yaentity.Resolve(text, entities)
	if err != nil {
		return "", err.Wrap("unparse " + e.name)
	}

	spans := make([]span, 0, len(resolved))
	boundaries := make([]int, 0, len(resolved)*2+1)

	for i, r := range resolved {
		if !e.kinds.Has(r.Kind().Type) {
			continue
		}

		if _, ok := e.markup.open(r.Kind()); !ok {
			continue
		}

		spans = append(spans, span{entity: r, index: i})
		boundaries = append(boundaries, r.Start(), r.End())
	}

	slices.SortFunc(spans, func(a, b span) int {
		return cmp.Or(
			cmp.Compare(a.entity.Start(), b.entity.Start()),
			cmp.Compare(b.entity.End(), a.entity.End()),
			cmp.Compare(a.index, b.index),
		)
	})

	slices.Sort(boundaries)
	boundaries = slices.Compact(boundaries)

	var (
		out    strings.Builder
		stack  []span
		cursor int
		next   int
	)

	out.Grow(len(text) + len(text)/4)

	for _, pos := range boundaries {
		e.markup.escape(&out, text[cursor:pos])
		cursor = pos

		stack = e.closeAt(&out, stack, pos)

		for next < len(spans) && spans[next].entity.Start() == pos {
			s := spans[next]
			next++

			e.writeOpen(&out, s)

			if s.entity.Range().IsEmpty() {
				out.WriteString(e.markup.close(s.entity.Kind()))

				continue
			}

			stack = append(stack, s)
		}
	}

	e.markup.escape(&out, text[cursor:])

	return out.String(), nil
}

// closeAt closes every span of the stack that ends at pos and reopens the spans
// that were opened after them but end later.
func (e *encoding) closeAt(out *strings.Builder, stack []span, pos int) []span {
	lowest := slices.IndexFunc(stack, func(s span) bool {
		return s.entity.End() == pos
	})
	if lowest < 0 {
		return stack
	}

	var reopen []span

	for i := len(stack) - 1; i >= lowest; i-- {
		out.WriteString(e.markup.close(stack[i].entity.Kind()))
	}

	for _, s := range stack[lowest:] {
		if s.entity.End() != pos {
			reopen = append(reopen, s)
		}
	}

	stack = stack[:lowest]

	for _, s := range reopen {
		e.writeOpen(out, s)
		stack = append(stack, s)
	}

	return stack
}

func (e *encoding) writeOpen(out *strings.Builder, s span) {
	open, _ := e.markup.open(s.entity.Kind())
	out.WriteString(open)
}
