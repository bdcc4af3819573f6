package memssa

import (
	"github.com/mchalupa/libdg/analysis/offset"
	"github.com/mchalupa/libdg/analysis/rd"
	"github.com/mchalupa/libdg/analysis/rw"
)

// performGVN drains the PHI worklist LVN seeded. Each PHI's operand list
// is completed by asking every predecessor block what it knows about the
// PHI's DefSite; predecessors that can't answer locally either forward
// to their own single predecessor or spawn another PHI, which is
// appended to t.phis and therefore picked up by this same loop before it
// terminates.
func (t *Transformation) performGVN() {
	for i := 0; i < len(t.phis); i++ {
		p := t.phis[i]
		ds := p.Overwrites[0]
		b := p.Block()

		for _, pred := range b.Preds {
			p.DefUse = p.DefUse.Union(t.findDefinitions(pred, ds))
		}
	}
}

// findDefinitions extends findDefinitionsInBlock with traversal across
// block boundaries: a hole left uncovered by b's own definitions is
// forwarded to b's single predecessor if it has exactly one, answered by
// a new PHI if b has several, or simply dropped if b has none. A
// zero-predecessor block (entry, unreachable code) can't explain the
// hole and doesn't get a PHI either; the read is left un-dominated,
// which callers treat as "no reaching definition" rather than an error.
func (t *Transformation) findDefinitions(b *rw.BBlock, ds rw.DefSite) rd.Set[*rw.Node] {
	defs := b.Definitions.Get(ds)
	defs = defs.Union(b.Definitions.Get(rw.NewDefSite(rw.Unknown, 0, offset.Unknown)))

	for _, hole := range b.Definitions.UndefinedIntervals(ds) {
		subDS := rw.NewDefSite(ds.Target, hole.Start, hole.Length)
		switch pred := b.SinglePredecessor(); {
		case pred != nil:
			defs = defs.Union(t.findDefinitions(pred, subDS))
		case len(b.Preds) == 0:
			// No predecessor to ask and no join to materialise a PHI
			// at. If ds.Target is a registered global and its
			// initializer wasn't already wired into the entry block by
			// AddGlobal, this is the first (and every subsequent) read
			// to run off the entry block without finding it locally;
			// synthesise it now. Anything else just stays unexplained.
			if g := t.lazyGlobalDef(ds.Target); g != nil {
				defs = defs.Add(g)
			}
		default:
			phi := t.newPhi(b, subDS)
			defs = defs.Add(phi)
		}
	}
	return defs
}
