package rw

import "github.com/mchalupa/libdg/analysis/rd"

// BBlock is one basic block of the read/write graph: a straight-line run
// of nodes plus the predecessor/successor edges that link it to the rest
// of the control-flow graph, and the per-target definitions map the
// transformation fills in while it processes the block.
type BBlock struct {
	id    int
	Nodes []*Node
	Preds []*BBlock
	Succs []*BBlock

	// Definitions records, for each target, which node(s) last wrote
	// which byte ranges, as of the end of this block. It starts empty
	// and is populated by the transformation's LVN pass; GVN may still
	// register PHIs it creates in this block. After Run it is never
	// mutated again (Run is idempotent).
	Definitions *rd.DefinitionsMap[*Target, *Node]
}

// ID returns a small dense integer identifying b within its graph,
// assigned in creation order.
func (b *BBlock) ID() int { return b.id }

// SinglePredecessor returns b's unique predecessor, or nil if b has zero
// or more than one. Used by the cross-block definition search (GVN) to
// decide whether a read that isn't satisfied locally can be forwarded to
// a single predecessor's definitions without needing a PHI.
func (b *BBlock) SinglePredecessor() *BBlock {
	if len(b.Preds) != 1 {
		return nil
	}
	return b.Preds[0]
}

// PrependAndUpdateCFG inserts n as the first node of b, ahead of
// whatever was there before. It exists so that nodes synthesised by the
// transformation (PHIs, and eagerly created global initializers) can be
// spliced in at the head of a block after the block has already been
// populated by the front-end.
func (b *BBlock) PrependAndUpdateCFG(n *Node) {
	n.block = b
	b.Nodes = append([]*Node{n}, b.Nodes...)
}
