// Package memssa builds a memory-SSA form over a graph of read/write
// nodes: it stamps every block with a definitions map describing which
// node(s) last wrote which byte ranges, materialises PHI nodes on demand
// wherever a read needs a value joined from more than one predecessor,
// and resolves every read down to the set of non-PHI nodes that may have
// produced it.
//
// The transformation never rewrites the input graph's instructions; it
// only prepends PHI nodes (and, through AddGlobal, initializer nodes) and
// fills in defuse edges.
package memssa

import (
	"github.com/mchalupa/libdg/config"
	"github.com/mchalupa/libdg/report"

	"github.com/mchalupa/libdg/analysis/offset"
	"github.com/mchalupa/libdg/analysis/rw"
)

// Transformation runs memory-SSA construction over a single rw.Graph
// (one function's CFG, in the terms this was extracted from) and answers
// reaching-definition queries against it afterwards.
type Transformation struct {
	graph  *rw.Graph
	opts   config.Options
	logger *report.Logger

	// phis is the append-only worklist of PHI nodes created during LVN
	// and GVN. GVN processes it by index, re-reading len(phis) on every
	// iteration, so that PHIs enqueued while processing an earlier PHI
	// are visited in the same pass without a second fixpoint loop.
	phis []*rw.Node

	// globals and globalDefs back the lazy half of global-initializer
	// handling; see AddGlobal.
	globals    map[*rw.Target]offset.Offset
	globalDefs map[*rw.Target]*rw.Node

	ran bool
}

// New returns a transformation over g, configured by opts. A nil logger
// discards all diagnostic output.
func New(g *rw.Graph, opts config.Options, logger *report.Logger) *Transformation {
	if logger == nil {
		logger = report.Discard
	}
	return &Transformation{graph: g, opts: opts, logger: logger}
}

// Run executes local value numbering followed by global value numbering.
// It is idempotent: a second call is a no-op, so callers that share a
// transformation across a build pipeline don't need to track whether it
// has already run.
func (t *Transformation) Run() {
	if t.ran {
		return
	}
	t.performLVN()
	t.performGVN()
	t.ran = true
}

// newPhi creates a fresh PHI node answering ds within b: it is prepended
// to b ahead of whatever nodes are already there, registered in b's
// definitions map for ds.Interval, and queued for GVN to fill in its
// operands.
func (t *Transformation) newPhi(b *rw.BBlock, ds rw.DefSite) *rw.Node {
	phi := t.graph.Create(rw.Phi)
	phi.AddOverwrites(ds.Target, ds.Interval.Start, ds.Interval.Length)
	b.PrependAndUpdateCFG(phi)
	b.Definitions.Add(ds, phi)
	t.phis = append(t.phis, phi)
	t.logger.Debugf("memssa: created phi %s for %s in block %d", phi, ds.Target, b.ID())
	return phi
}
