package memssa

import (
	"github.com/mchalupa/libdg/analysis/offset"
	"github.com/mchalupa/libdg/analysis/rd"
	"github.com/mchalupa/libdg/analysis/rw"
)

// AddGlobal tells the transformation that target is a global variable
// with an initializer covering its first length bytes, as seen in
// entry, the function's entry block.
//
// With config.Options.EagerGlobalInit set (the default), this
// materialises a real node for the initializer right away, prepended
// ahead of whatever entry already contains, so that ordinary LVN
// processing picks it up like any other write. With EagerGlobalInit
// cleared, nothing is added to the graph yet; the initializer is instead
// synthesised on first use, the first time a search for a definition of
// target runs off the end of a predecessor-less block (see
// lazyGlobalDef), matching the behaviour the original implementation
// shipped with.
//
// Must be called before Run, and only for blocks that are genuinely
// function entries (no predecessors); AddGlobal does not check this.
func (t *Transformation) AddGlobal(entry *rw.BBlock, target *rw.Target, length offset.Offset) {
	if t.globals == nil {
		t.globals = make(map[*rw.Target]offset.Offset)
	}
	t.globals[target] = length

	if !t.opts.EagerGlobalInit {
		return
	}
	n := t.graph.Create(rw.Op)
	n.SetName(target.String() + ".init")
	n.AddOverwrites(target, 0, length)
	entry.PrependAndUpdateCFG(n)
}

// lazyGlobalDef returns the synthetic initializer node for target,
// creating it on first request. It returns nil if target was never
// registered with AddGlobal, or if EagerGlobalInit is set (in which case
// the real node already lives in the graph and this path should never
// be consulted).
func (t *Transformation) lazyGlobalDef(target *rw.Target) *rw.Node {
	if t.opts.EagerGlobalInit {
		return nil
	}
	length, ok := t.globals[target]
	if !ok {
		return nil
	}
	if t.globalDefs == nil {
		t.globalDefs = make(map[*rw.Target]*rw.Node)
	}
	if n, ok := t.globalDefs[target]; ok {
		return n
	}
	n := t.graph.Create(rw.Op)
	n.SetName(target.String() + ".init")
	n.AddOverwrites(target, 0, length)
	t.globalDefs[target] = n
	t.logger.Debugf("memssa: lazily synthesised initializer for global %s", target)
	return n
}

// allLazyGlobalDefs returns the synthetic initializer node for every
// registered global, creating each on demand. Used by the exhaustive
// unknown-target walker, which has no single target to look up and so
// must assume an unknown read could have observed any global's initial
// value.
func (t *Transformation) allLazyGlobalDefs() rd.Set[*rw.Node] {
	out := rd.NewSet[*rw.Node]()
	if t.opts.EagerGlobalInit {
		return out
	}
	for target := range t.globals {
		if n := t.lazyGlobalDef(target); n != nil {
			out.Add(n)
		}
	}
	return out
}
