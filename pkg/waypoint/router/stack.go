package router

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Record is one rung of the realized navigation stack: the item that was
// requested, the segment that produced it and the container now attached.
type Record struct {
	Item      route.Item
	Segment   *Segment
	Container Container

	// borrowed is set when Container is the parent's, as for a branch
	// without a container of its own. Such a record can't step back through
	// the container without tearing down the parent.
	borrowed bool
}

// Identifier returns the record's segment identifier.
func (r Record) Identifier() route.Identifier {
	return r.Item.ID
}

// records is the realized stack, index 0 being the root. It is replaced
// wholesale after a successful reconciliation and never edited in place.
type records []Record

func (rs records) clone() records {
	out := make(records, len(rs))
	copy(out, rs)
	return out
}

func (rs records) identifiers() []route.Identifier {
	ids := make([]route.Identifier, len(rs))
	for i, r := range rs {
		ids[i] = r.Item.ID
	}
	return ids
}

func (rs records) sequence() route.Sequence {
	items := make([]route.Item, len(rs))
	for i, r := range rs {
		items[i] = r.Item
	}
	return route.FromItems(items...)
}

func (rs records) containers() []Container {
	out := make([]Container, len(rs))
	for i, r := range rs {
		out[i] = r.Container
	}
	return out
}

// top returns the deepest record, if any.
func (rs records) top() (Record, bool) {
	if len(rs) == 0 {
		return Record{}, false
	}
	return rs[len(rs)-1], true
}
