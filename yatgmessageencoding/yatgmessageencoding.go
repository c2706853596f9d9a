// Package yatgmessageencoding renders messages with entities into Telegram markup.
package yatgmessageencoding

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

const (
	HTML     = "html"
	Markdown = "markdown"
)

// MessageEncoding renders a text and its entities into a markup language.
type MessageEncoding interface {
	// Unparse takes the text and its associated message entities, and produces the formatted text.
	// According to Telegram specifications, entity offsets are in UTF-16 code units.
	//
	// Example usage:
	//	md := yatgmessageencoding.NewMarkdownEncoding()
	//	text := "This is bold text"
	//	entities := []yaentity.Entity{yaentity.Bold(8, 4)}
	//	unparsed, err := md.Unparse(text, entities) // This is **bold** text
	Unparse(text string, entities []yaentity.Entity) (string, yaerrors.Error)

	// Name returns the name the encoding is selected by in ByName.
	Name() string
}

type options struct {
	kinds yaentity.KindSet
}

// Option configures an encoding.
type Option func(*options)

// WithKinds restricts markup to the given kinds. Entities of other kinds are
// rendered as plain text.
func WithKinds(kinds yaentity.KindSet) Option {
	return func(o *options) {
		o.kinds = kinds
	}
}

func newOptions(opts []Option) options {
	o := options{kinds: yaentity.AllKinds}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ByName returns the encoding with the given name, "html" or "markdown".
func ByName(name string, opts ...Option) (MessageEncoding, yaerrors.Error) {
	switch strings.ToLower(name) {
	case HTML:
		return NewHTMLEncoding(opts...), nil
	case Markdown:
		return NewMarkdownEncoding(opts...), nil
	default:
		return nil, yaerrors.FromError(
			http.StatusNotFound,
			ErrUnknownEncoding,
			fmt.Sprintf("select encoding %q", name),
		)
	}
}
