package route

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Options are free-form per-item settings read by presenters.
// Insertion order is irrelevant.
type Options map[string]string

// Has reports whether key is present, including as a bare flag.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the value for key, or def when it is absent.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

// Bool interprets key as a boolean. A bare flag counts as true.
// Unparseable values fall back to def.
func (o Options) Bool(key string, def bool) bool {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// Int interprets key as an integer, returning def when absent or invalid.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Clone returns a copy that can be modified independently.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Equal reports whether both option sets hold the same pairs.
// A nil set equals an empty one.
func (o Options) Equal(other Options) bool {
	return maps.Equal(o, other)
}

// Keys returns the option keys in sorted order.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}
