package yaentity

import (
	"fmt"
	"math/bits"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// KindSet is a set of kinds packed into a bitmask, bit i standing for KindType(i).
type KindSet uint32

const (
	kindSetSeparator = ","
	kindSetAll       = "all"
	kindSetFormat    = "formatting"
)

// AllKinds contains every known kind.
const AllKinds = KindSet(1<<kindCount-1) &^ KindSet(1<<KindUnknown)

// FormattingKinds contains the kinds that change how text looks, as opposed to
// the kinds Telegram detects automatically (mentions, hashtags, URLs, ...).
var FormattingKinds = NewKindSet(
	KindBold,
	KindItalic,
	KindUnderline,
	KindStrikethrough,
	KindSpoiler,
	KindCode,
	KindPre,
	KindTextLink,
	KindTextMention,
	KindBlockquote,
	KindCustomEmoji,
)

// NewKindSet packs kinds into a set. Invalid kinds are ignored.
func NewKindSet(kinds ...KindType) KindSet {
	var set KindSet

	return set.With(kinds...)
}

// With returns a copy of s with kinds added.
func (s KindSet) With(kinds ...KindType) KindSet {
	for _, k := range kinds {
		if k.Valid() {
			s |= 1 << k
		}
	}

	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k KindType) bool {
	return k.Valid() && s&(1<<k) != 0
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	return bits.OnesCount32(uint32(s & AllKinds))
}

// Kinds unpacks the set in ascending kind order.
func (s KindSet) Kinds() []KindType {
	if s&AllKinds == 0 {
		return nil
	}

	kinds := make([]KindType, 0, s.Len())

	for k := KindUnknown + 1; k < kindCount; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

// String returns the comma separated wire names, e.g. "bold,italic".
func (s KindSet) String() string {
	if s&AllKinds == AllKinds {
		return kindSetAll
	}

	kinds := s.Kinds()
	names := make([]string, len(kinds))

	for i, k := range kinds {
		names[i] = k.String()
	}

	return strings.Join(names, kindSetSeparator)
}

// ParseKindSet parses a comma separated list of kind names.
// "all" and "formatting" stand for AllKinds and FormattingKinds.
func ParseKindSet(text string) (KindSet, yaerrors.Error) {
	var set KindSet

	for part := range strings.SplitSeq(text, kindSetSeparator) {
		name := strings.ToLower(strings.TrimSpace(part))

		switch name {
		case "":
			continue
		case kindSetAll:
			set |= AllKinds
		case kindSetFormat:
			set |= FormattingKinds
		default:
			k, err := ParseKindType(name)
			if err != nil {
				return 0, yaerrors.FromError(
					http.StatusBadRequest,
					ErrUnknownKind,
					fmt.Sprintf("parse kind set %q: unknown kind %q", text, name),
				)
			}

			set = set.With(k)
		}
	}

	return set, nil
}

func (s KindSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *KindSet) UnmarshalText(text []byte) error {
	set, err := ParseKindSet(string(text))
	if err != nil {
		return err
	}

	*s = set

	return nil
}
