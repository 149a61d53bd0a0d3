package route

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
)

// ErrMalformedItem is returned for raw sequence input that is not an Item,
// an Identifier or a well-formed literal string.
var ErrMalformedItem = errors.New("route: malformed sequence item")

// Item is one requested step: a segment identifier, options for the presenter
// and an optional payload handed to the segment's loader.
type Item struct {
	ID      Identifier
	Options Options
	Data    any
}

// NewItem builds an Item with a copy of opts.
func NewItem(id Identifier, opts Options) Item {
	return Item{ID: id, Options: opts.Clone()}
}

// WithData returns a copy of the item carrying data.
func (i Item) WithData(data any) Item {
	i.Options = i.Options.Clone()
	i.Data = data
	return i
}

// Equal compares items structurally.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID &&
		i.Options.Equal(other.Options) &&
		reflect.DeepEqual(i.Data, other.Data)
}

// literalEscaper percent-encodes the characters that delimit literals.
var literalEscaper = strings.NewReplacer(
	"%", "%25", ";", "%3B", "=", "%3D", "/", "%2F",
	" ", "%20", "\t", "%09", "\n", "%0A", "\r", "%0D",
)

// String renders the item in literal form. Keys are sorted; Data is not rendered.
// Delimiters and whitespace in the name, keys and values are percent-encoded,
// so Parse(String()) gives back an equal item.
func (i Item) String() string {
	var b strings.Builder
	b.WriteString(literalEscaper.Replace(i.ID.Name()))
	for _, k := range i.Options.Keys() {
		b.WriteByte(';')
		b.WriteString(literalEscaper.Replace(k))
		if v := i.Options[k]; v != "" {
			b.WriteByte('=')
			b.WriteString(literalEscaper.Replace(v))
		}
	}
	return b.String()
}

// Transform converts one raw value into an Item. It accepts an Item, a non-nil
// *Item, an Identifier or a literal string. Anything else yields false.
func Transform(raw any) (Item, bool) {
	switch v := raw.(type) {
	case Item:
		if v.ID.IsZero() {
			return Item{}, false
		}
		v.Options = v.Options.Clone()
		return v, true
	case *Item:
		if v == nil {
			return Item{}, false
		}
		return Transform(*v)
	case Identifier:
		if v.IsZero() {
			return Item{}, false
		}
		return Item{ID: v, Options: Options{}}, true
	case string:
		return parseItem(v)
	default:
		return Item{}, false
	}
}

// parseItem handles "name;key=value;flag".
func parseItem(literal string) (Item, bool) {
	parts := strings.Split(literal, ";")
	name, ok := unescape(parts[0])
	if !ok || name == "" {
		return Item{}, false
	}

	opts := Options{}
	for _, clause := range parts[1:] {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(clause, "=")
		key, ok := unescape(rawKey)
		if !ok || key == "" {
			return Item{}, false
		}
		value, ok := unescape(rawValue)
		if !ok {
			return Item{}, false
		}
		opts[key] = value
	}

	return Item{ID: ID(name), Options: opts}, true
}

// unescape trims s and decodes percent escapes.
func unescape(s string) (string, bool) {
	out, err := url.PathUnescape(strings.TrimSpace(s))
	return out, err == nil
}
