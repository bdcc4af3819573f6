package memssa

import (
	"golang.org/x/tools/container/intsets"

	"github.com/mchalupa/libdg/analysis/offset"
	"github.com/mchalupa/libdg/analysis/rd"
	"github.com/mchalupa/libdg/analysis/rw"
)

// GetReachingDefinitions is the public entry point: given a node that
// reads some range of memory, it returns the non-PHI nodes that may have
// produced the value(s) being read. Must be called after Run.
//
// A read of an unknown target falls back to the exhaustive walker, since
// there is no DefSite precise enough to look up in any block's
// definitions map; everything else resolves through the defuse edges LVN
// and GVN already computed.
func (t *Transformation) GetReachingDefinitions(use *rw.Node) []*rw.Node {
	if use.Block() == nil {
		t.logger.Debugf("memssa: %s has no block, returning no reaching definitions", use)
		return nil
	}

	var raw rd.Set[*rw.Node]
	if use.UsesUnknown() {
		raw = t.findAllReachingDefinitions(use)
	} else {
		raw = use.DefUse
	}
	result := t.gatherNonPhisDefs(raw).Slice()
	if len(result) == 0 && !use.UsesUnknown() {
		t.logger.Warnf(use, "no reaching definition found")
	}
	return result
}

// gatherNonPhisDefs recursively replaces every PHI in set with its own
// operands, returning only non-PHI terminals. Cycles (a PHI that is its
// own operand, directly or through other PHIs) are broken with a visited
// set rather than propagated as an error.
func (t *Transformation) gatherNonPhisDefs(set rd.Set[*rw.Node]) rd.Set[*rw.Node] {
	result := rd.NewSet[*rw.Node]()
	visited := rd.NewSet[*rw.Node]()

	var walk func(n *rw.Node)
	walk = func(n *rw.Node) {
		if visited.Has(n) {
			return
		}
		visited.Add(n)
		if n.Kind() != rw.Phi {
			result.Add(n)
			return
		}
		for op := range n.DefUse {
			walk(op)
		}
	}
	for n := range set {
		walk(n)
	}
	return result
}

// findAllReachingDefinitions answers a read of unknown target by
// assuming it might alias anything. It rebuilds, in a scratch
// DefinitionsMap, the writes visible from the start of from's own block
// up to from (replaying LVN's strong/weak rules so the real graph and
// its PHIs are left untouched), then threads that same map down the
// predecessor chain: a single predecessor shares it by reference and
// recurses, several predecessors each clone it first. A target the map
// has never seen before is copied wholesale from a predecessor and its
// writer reported as found; a target the map already has some bucket
// for only has its still-uncovered byte ranges folded in (to keep the
// coverage bookkeeping correct for blocks further up the chain), and
// that predecessor's writer is not reported a second time, since a
// closer block has already (at least partially) explained the target.
func (t *Transformation) findAllReachingDefinitions(from *rw.Node) rd.Set[*rw.Node] {
	b := from.Block()
	if b == nil {
		t.logger.Debugf("memssa: node %s has no block, returning no reaching definitions", from)
		return rd.NewSet[*rw.Node]()
	}

	defs := rd.NewDefinitionsMap[*rw.Target, *rw.Node]()
	t.replayLocal(b, from, defs)
	found := defs.AllValues()

	visited := newBlockSet()
	if pred := b.SinglePredecessor(); pred != nil {
		t.walkAllPredecessors(defs, pred, found, visited)
	} else {
		for _, pred := range b.Preds {
			t.walkAllPredecessors(defs.Clone(), pred, found, visited)
		}
	}

	// An unknown-target read might alias any global, including one
	// whose initializer was never forced into the graph because
	// EagerGlobalInit is off.
	return found.Union(t.allLazyGlobalDefs())
}

// replayLocal re-runs the strong/weak update half of LVN over b's nodes
// into local, stopping immediately before stopAt (or running over the
// whole block if stopAt is nil). It never consults or creates PHIs: its
// only purpose is to know which nodes wrote which bytes.
func (t *Transformation) replayLocal(b *rw.BBlock, stopAt *rw.Node, local *rd.DefinitionsMap[*rw.Target, *rw.Node]) {
	for _, n := range b.Nodes {
		if stopAt != nil && n == stopAt {
			return
		}
		for _, ds := range n.Overwrites {
			local.Update(ds, n, t.opts.StrictIntervalKill)
		}
		for _, ds := range n.Defs {
			if ds.Target.IsUnknown() {
				local.AddAll(n)
				local.Add(rw.NewDefSite(rw.Unknown, 0, offset.Unknown), n)
				continue
			}
			local.Add(ds, n)
		}
	}
}

// walkAllPredecessors merges b's own, already fully computed definitions
// (filled in by Run's LVN pass) into defs, then recurses into b's
// predecessors: a single predecessor shares defs by reference, several
// predecessors each get an independent Clone. visited is shared across
// every branch of the whole walk and is never cloned, so once any branch
// has visited a block, no other branch revisits it. The caller does not
// pre-mark b's own originating block, so a self-loop back to it is still
// walked once.
func (t *Transformation) walkAllPredecessors(defs *rd.DefinitionsMap[*rw.Target, *rw.Node], b *rw.BBlock, found rd.Set[*rw.Node], visited *intsets.Sparse) {
	if !visited.Insert(b.ID()) {
		return
	}

	mergeBlockDefinitions(defs, b.Definitions, found)

	if pred := b.SinglePredecessor(); pred != nil {
		t.walkAllPredecessors(defs, pred, found, visited)
		return
	}
	for _, pred := range b.Preds {
		t.walkAllPredecessors(defs.Clone(), pred, found, visited)
	}
}

// mergeBlockDefinitions folds src's buckets into defs, target by target.
// A target defs has never seen at all is copied wholesale via
// AddBuckets, and every one of its values is added to found. A target
// defs already has some bucket for instead only has its still-uncovered
// sub-intervals (per defs.UndefinedIntervals) folded in, updating defs'
// coverage bookkeeping without adding the value to found: a closer block
// has already (at least partially) explained that target, so src's
// write is not treated as a fresh, directly-reaching definition.
func mergeBlockDefinitions(defs *rd.DefinitionsMap[*rw.Target, *rw.Node], src *rd.DefinitionsMap[*rw.Target, *rw.Node], found rd.Set[*rw.Node]) {
	for _, target := range src.Targets() {
		srcMap := src.TargetMap(target)
		if !defs.DefinesTarget(target) {
			defs.AddBuckets(target, srcMap)
			for _, b := range srcMap.Buckets() {
				found.Add(b.Value)
			}
			continue
		}
		for _, b := range srcMap.Buckets() {
			ds := rw.NewDefSite(target, b.Interval.Start, b.Interval.Length)
			for _, hole := range defs.UndefinedIntervals(ds) {
				defs.Add(rw.NewDefSite(target, hole.Start, hole.Length), b.Value)
			}
		}
	}
}

func newBlockSet() *intsets.Sparse {
	return &intsets.Sparse{}
}
