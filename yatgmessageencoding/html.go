package yatgmessageencoding

import (
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"golang.org/x/net/html"
)

type htmlMarkup struct{}

// NewHTMLEncoding returns an encoding producing Telegram HTML, e.g.
// <b>bold <i>italic</i></b> <a href="https://example.com">link</a>.
func NewHTMLEncoding(opts ...Option) MessageEncoding {
	o := newOptions(opts)

	return &encoding{
		name:   HTML,
		markup: htmlMarkup{},
		kinds:  o.kinds,
	}
}

var htmlTags = map[yaentity.KindType]string{
	yaentity.KindBold:          "b",
	yaentity.KindItalic:        "i",
	yaentity.KindUnderline:     "u",
	yaentity.KindStrikethrough: "s",
	yaentity.KindSpoiler:       "tg-spoiler",
	yaentity.KindCode:          "code",
	yaentity.KindBlockquote:    "blockquote",
	yaentity.KindTextLink:      "a",
	yaentity.KindTextMention:   "a",
	yaentity.KindCustomEmoji:   "tg-emoji",
	yaentity.KindPre:           "pre",
}

func (htmlMarkup) open(kind *yaentity.Kind) (string, bool) {
	tag, ok := htmlTags[kind.Type]
	if !ok {
		return "", false
	}

	//nolint:exhaustive // Tags without attributes are handled below
	switch kind.Type {
	case yaentity.KindPre:
		if kind.Language != "" {
			return `<pre><code class="language-` + html.EscapeString(kind.Language) + `">`, true
		}
	case yaentity.KindTextLink:
		return `<a href="` + html.EscapeString(kind.URL) + `">`, true
	case yaentity.KindTextMention:
		var id int64
		if kind.User != nil {
			id = kind.User.ID
		}

		return `<a href="` + yaentity.UserURL(id) + `">`, true
	case yaentity.KindCustomEmoji:
		return `<tg-emoji emoji-id="` + html.EscapeString(kind.CustomEmojiID) + `">`, true
	}

	return "<" + tag + ">", true
}

func (htmlMarkup) close(kind *yaentity.Kind) string {
	if kind.Type == yaentity.KindPre && kind.Language != "" {
		return "</code></pre>"
	}

	return "</" + htmlTags[kind.Type] + ">"
}

func (htmlMarkup) escape(out *strings.Builder, text string) {
	out.WriteString(html.EscapeString(text))
}
