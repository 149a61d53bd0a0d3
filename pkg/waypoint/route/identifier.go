// Package route describes what should be shown: identifiers, sequence items and
// the sequences a router reconciles against.
//
// Sequences can be written as literals. Each item is a base name optionally
// followed by ";"-separated clauses, either key=value or a bare flag:
//
//	seq, err := route.NewSequence("home", "detail;id=42;animated=false", route.ID("settings"))
//
// A bare flag is stored as an empty string, so "detail;fullscreen" yields
// Options{"fullscreen": ""}.
package route

// Identifier names a segment or a presenter. Equality is by name.
type Identifier struct {
	name string
}

// ID returns the Identifier for name.
func ID(name string) Identifier {
	return Identifier{name: name}
}

// Name returns the identifier's name.
func (i Identifier) Name() string {
	return i.name
}

// IsZero reports whether the identifier has no name.
func (i Identifier) IsZero() bool {
	return i.name == ""
}

func (i Identifier) String() string {
	return i.name
}

// IDs converts names to identifiers.
func IDs(names ...string) []Identifier {
	ids := make([]Identifier, len(names))
	for i, n := range names {
		ids[i] = ID(n)
	}
	return ids
}
