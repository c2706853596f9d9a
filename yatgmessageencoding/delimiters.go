package yatgmessageencoding

import "github.com/YaCodeDev/GoYaTgEntities/yaentity"

const lineBreak = "\n"

type delimiter string

const (
	preDelim        delimiter = "```"
	boldDelim       delimiter = "**"
	italicDelim     delimiter = "__"
	underlineDelim  delimiter = "++"
	strikeDelim     delimiter = "~~"
	spoilerDelim    delimiter = "||"
	quoteDelim      delimiter = "&&"
	codeDelim       delimiter = "`"
	linkStartDelim  delimiter = "["
	linkMiddleDelim delimiter = "]("
	linkEndDelim    delimiter = ")"
	escapeDelim     delimiter = "\\"
)

var allDelimiters = []delimiter{
	preDelim,
	boldDelim,
	italicDelim,
	underlineDelim,
	strikeDelim,
	spoilerDelim,
	quoteDelim,
	codeDelim,
	linkStartDelim,
	linkMiddleDelim,
	linkEndDelim,
	escapeDelim,
}

var charsToEscape = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(allDelimiters))

	for _, d := range allDelimiters {
		for _, r := range d.String() {
			m[r] = struct{}{}
		}
	}

	return m
}()

var delimitersByKind = map[yaentity.KindType]delimiter{
	yaentity.KindBold:          boldDelim,
	yaentity.KindItalic:        italicDelim,
	yaentity.KindUnderline:     underlineDelim,
	yaentity.KindStrikethrough: strikeDelim,
	yaentity.KindSpoiler:       spoilerDelim,
	yaentity.KindBlockquote:    quoteDelim,
	yaentity.KindCode:          codeDelim,
	yaentity.KindPre:           preDelim,
	yaentity.KindTextLink:      linkStartDelim,
	yaentity.KindTextMention:   linkStartDelim,
	yaentity.KindCustomEmoji:   linkStartDelim,
}

func (d delimiter) String() string {
	return string(d)
}

func getDelimiterForKind(kind yaentity.KindType) (delimiter, bool) {
	d, ok := delimitersByKind[kind]

	return d, ok
}
