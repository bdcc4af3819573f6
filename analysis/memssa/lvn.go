package memssa

import (
	"fmt"

	"github.com/mchalupa/libdg/analysis/offset"
	"github.com/mchalupa/libdg/analysis/rd"
	"github.com/mchalupa/libdg/analysis/rw"
)

// performLVN runs local value numbering over every block of the graph,
// in the order the front-end enumerated them. GVN later prepends further
// PHIs to blocks it reaches, but never replays a block's nodes.
func (t *Transformation) performLVN() {
	for _, b := range t.graph.Blocks() {
		t.performLVNBlock(b)
	}
}

// performLVNBlock processes the nodes a block arrived with, in program
// order. PHIs prepended to the block while processing it are not
// themselves reprocessed: they are GVN's responsibility.
func (t *Transformation) performLVNBlock(b *rw.BBlock) {
	original := append([]*rw.Node(nil), b.Nodes...)

	for _, n := range original {
		for _, ds := range n.Overwrites {
			assertValidOverwrite(ds)
			b.Definitions.Update(ds, n, t.opts.StrictIntervalKill)
		}

		for _, ds := range n.Defs {
			if ds.Target.IsUnknown() {
				b.Definitions.AddAll(n)
				b.Definitions.Add(rw.NewDefSite(rw.Unknown, 0, offset.Unknown), n)
				continue
			}
			// Read-first: resolve whatever was visible before n's own
			// weak write is recorded, or n would end up in its own
			// def-set.
			n.DefUse = n.DefUse.Union(t.findDefinitionsInBlock(b, ds))
			b.Definitions.Add(ds, n)
		}

		for _, ds := range n.Uses {
			n.DefUse = n.DefUse.Union(t.findDefinitionsInBlock(b, ds))
		}
	}
}

// findDefinitionsInBlock answers ds using only b's own definitions map:
// whatever is already recorded for ds.Target, plus anything recorded
// under the unknown-target sentinel (an unresolved write might have
// touched any byte of any target), plus a freshly created PHI for every
// sub-interval of ds that neither of those explains. The PHI is left for
// GVN to fill in; LVN never looks past the current block.
func (t *Transformation) findDefinitionsInBlock(b *rw.BBlock, ds rw.DefSite) rd.Set[*rw.Node] {
	defs := b.Definitions.Get(ds)
	defs = defs.Union(b.Definitions.Get(rw.NewDefSite(rw.Unknown, 0, offset.Unknown)))

	for _, hole := range b.Definitions.UndefinedIntervals(ds) {
		// A hole in a block with no predecessors at all (the entry
		// block of a single-block function being the common case)
		// would otherwise get a PHI that GVN can never give an operand
		// to, since it has no predecessor to ask. If ds.Target is a
		// global with a registered initializer, use that instead of
		// creating a dangling PHI.
		if len(b.Preds) == 0 {
			if g := t.lazyGlobalDef(ds.Target); g != nil {
				defs = defs.Add(g)
				continue
			}
		}
		subDS := rw.NewDefSite(ds.Target, hole.Start, hole.Length)
		phi := t.newPhi(b, subDS)
		defs = defs.Add(phi)
	}
	return defs
}

func assertValidOverwrite(ds rw.DefSite) {
	if ds.Target == nil || ds.Target.IsUnknown() || ds.Interval.IsUnknown() {
		panic(fmt.Sprintf("memssa: malformed overwrite %v: strong updates require a known target and a known range", ds))
	}
}
