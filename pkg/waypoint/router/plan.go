package router

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Plan is the diff between the realized stack and a requested sequence.
type Plan struct {
	// Target is the full sequence the stack converges to. For appends it is the
	// current stack followed by the requested items.
	Target route.Sequence
	// Reuse is how many realized records are kept without touching them.
	Reuse int
	// Pops lists realized stack indices to reverse, deepest first.
	Pops []int
	// Presents lists Target indices to present, shallowest first.
	Presents []int
	// Replay is set when a record that must go can't be reversed, so the whole
	// target is presented again from the root instead of popping.
	Replay bool
}

// IsNoop reports whether the plan changes nothing.
func (p Plan) IsNoop() bool {
	return len(p.Pops) == 0 && len(p.Presents) == 0
}

// diff finds the reconciliation point. Reuse stops at the first index whose
// identifier differs and never resumes, even if later identifiers line up
// again.
func diff(current []route.Identifier, target route.Sequence, appendOnly bool) Plan {
	p := Plan{Target: target}

	if appendOnly {
		p.Reuse = len(current)
	} else {
		for p.Reuse < len(current) && p.Reuse < target.Len() && current[p.Reuse] == target.At(p.Reuse).ID {
			p.Reuse++
		}
	}

	for i := len(current) - 1; i >= p.Reuse; i-- {
		p.Pops = append(p.Pops, i)
	}
	for i := p.Reuse; i < target.Len(); i++ {
		p.Presents = append(p.Presents, i)
	}
	return p
}

// replay turns p into a full re-presentation of its target.
func (p Plan) replay() Plan {
	p.Replay = true
	p.Reuse = 0
	p.Pops = nil
	p.Presents = p.Presents[:0:0]
	for i := range p.Target.Len() {
		p.Presents = append(p.Presents, i)
	}
	return p
}
