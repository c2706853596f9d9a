package yatgmessageencoding

import (
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
)

type markdownMarkup struct{}

// NewMarkdownEncoding returns an encoding producing the YaCodeDev markdown dialect:
//
//	**bold** __italic__ ++underline++ ~~strike~~ ||spoiler|| &&quote&& `code`
//	```go
//	pre
//	```
//	[link](https://example.com) [😀](5368324170671202286)
//
// Delimiter characters in the text are escaped with a backslash.
func NewMarkdownEncoding(opts ...Option) MessageEncoding {
	o := newOptions(opts)

	return &encoding{
		name:   Markdown,
		markup: markdownMarkup{},
		kinds:  o.kinds,
	}
}

func (markdownMarkup) open(kind *yaentity.Kind) (string, bool) {
	d, ok := getDelimiterForKind(kind.Type)
	if !ok {
		return "", false
	}

	if d == preDelim {
		return d.String() + kind.Language + lineBreak, true
	}

	return d.String(), true
}

func (markdownMarkup) close(kind *yaentity.Kind) string {
	d, _ := getDelimiterForKind(kind.Type)

	switch d {
	case preDelim:
		return lineBreak + d.String()
	case linkStartDelim:
		return linkMiddleDelim.String() + escapeLinkTarget(linkTarget(kind)) + linkEndDelim.String()
	default:
		return d.String()
	}
}

func (markdownMarkup) escape(out *strings.Builder, text string) {
	for i := range len(text) {
		if _, ok := charsToEscape[rune(text[i])]; ok {
			out.WriteString(escapeDelim.String())
		}

		out.WriteByte(text[i])
	}
}

func linkTarget(kind *yaentity.Kind) string {
	//nolint:exhaustive // Only link-like kinds reach here
	switch kind.Type {
	case yaentity.KindTextMention:
		if kind.User == nil {
			return yaentity.UserURL(0)
		}

		return yaentity.UserURL(kind.User.ID)
	case yaentity.KindCustomEmoji:
		return kind.CustomEmojiID
	default:
		return kind.URL
	}
}

func escapeLinkTarget(target string) string {
	if !strings.ContainsAny(target, linkEndDelim.String()+escapeDelim.String()) {
		return target
	}

	var b strings.Builder

	for _, r := range target {
		if r == ')' || r == '\\' {
			b.WriteString(escapeDelim.String())
		}

		b.WriteRune(r)
	}

	return b.String()
}
