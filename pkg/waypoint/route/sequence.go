package route

import (
	"fmt"
	"strings"
)

// ParseError reports which raw value broke sequence construction.
type ParseError struct {
	Index int
	Value any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("route: item %d (%#v) is not a valid sequence item", e.Index, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedItem
}

// Sequence is an ordered, immutable list of items. The zero value is empty.
type Sequence struct {
	items []Item
}

// NewSequence transforms every raw value into an Item. A single malformed value
// rejects the whole sequence so later items never shift position.
func NewSequence(raw ...any) (Sequence, error) {
	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		item, ok := Transform(r)
		if !ok {
			return Sequence{}, &ParseError{Index: i, Value: r}
		}
		items = append(items, item)
	}
	return Sequence{items: items}, nil
}

// MustSequence is NewSequence for literals known to be valid. It panics otherwise.
func MustSequence(raw ...any) Sequence {
	seq, err := NewSequence(raw...)
	if err != nil {
		panic(err)
	}
	return seq
}

// Parse reads a sequence from a single literal whose items are separated by
// whitespace or "/", e.g. "home/detail;id=3".
func Parse(literal string) (Sequence, error) {
	fields := strings.FieldsFunc(literal, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\t' || r == '\n'
	})
	raw := make([]any, len(fields))
	for i, f := range fields {
		raw[i] = f
	}
	return NewSequence(raw...)
}

// FromItems builds a sequence from already-typed items.
func FromItems(items ...Item) Sequence {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Options = it.Options.Clone()
		out[i] = it
	}
	return Sequence{items: out}
}

// Len returns the number of items.
func (s Sequence) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the sequence has no items.
func (s Sequence) IsEmpty() bool {
	return len(s.items) == 0
}

// At returns the item at index i.
func (s Sequence) At(i int) Item {
	return s.items[i]
}

// Items returns a copy of the items.
func (s Sequence) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Identifiers returns the segment identifiers in order.
func (s Sequence) Identifiers() []Identifier {
	ids := make([]Identifier, len(s.items))
	for i, it := range s.items {
		ids[i] = it.ID
	}
	return ids
}

// Append returns a new sequence of s followed by other.
func (s Sequence) Append(other Sequence) Sequence {
	items := make([]Item, 0, len(s.items)+len(other.items))
	items = append(items, s.items...)
	items = append(items, other.items...)
	return Sequence{items: items}
}

// DropLast returns s without its last item. Dropping from an empty sequence
// returns an empty sequence.
func (s Sequence) DropLast() Sequence {
	if len(s.items) == 0 {
		return Sequence{}
	}
	return Sequence{items: s.items[: len(s.items)-1 : len(s.items)-1]}
}

// Equal compares sequences structurally.
func (s Sequence) Equal(other Sequence) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if !s.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// String renders the sequence as "/"-separated item literals.
func (s Sequence) String() string {
	parts := make([]string, len(s.items))
	for i, it := range s.items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "/")
}
