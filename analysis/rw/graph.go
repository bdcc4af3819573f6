package rw

import "github.com/mchalupa/libdg/analysis/rd"

// Graph owns every block and node of one function's (or one translation
// unit's) read/write CFG, and is responsible for handing out the dense
// node and block IDs used elsewhere for compact sets.
type Graph struct {
	blocks      []*BBlock
	nextNodeID  int
	nextBlockID int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Blocks returns every block of g, in creation order.
func (g *Graph) Blocks() []*BBlock {
	return g.blocks
}

// NewBlock creates a new, edge-less block, appends it to g, and returns
// it. Callers link it into the CFG with AddEdge.
func (g *Graph) NewBlock() *BBlock {
	b := &BBlock{
		id:          g.nextBlockID,
		Definitions: rd.NewDefinitionsMap[*Target, *Node](),
	}
	g.nextBlockID++
	g.blocks = append(g.blocks, b)
	return b
}

// Create returns a new node of the given kind. The node is not attached
// to any block; callers append it to a block's Nodes (or use
// PrependAndUpdateCFG for PHIs) and set its block field themselves via
// Attach.
func (g *Graph) Create(kind NodeKind) *Node {
	n := &Node{
		id:     g.nextNodeID,
		kind:   kind,
		DefUse: rd.NewSet[*Node](),
	}
	g.nextNodeID++
	return n
}

// Attach appends n to the end of b's node list and records b as n's
// block.
func (g *Graph) Attach(b *BBlock, n *Node) {
	n.block = b
	b.Nodes = append(b.Nodes, n)
}

// AddEdge links from as a predecessor of to, and to as a successor of
// from. Edges are not deduplicated; callers are expected to build each
// edge exactly once.
func (g *Graph) AddEdge(from, to *BBlock) {
	from.Succs = append(from.Succs, to)
	to.Preds = append(to.Preds, from)
}

// NumNodes returns the number of nodes created so far, i.e. one past the
// highest node ID in use.
func (g *Graph) NumNodes() int {
	return g.nextNodeID
}

// NumBlocks returns the number of blocks created so far.
func (g *Graph) NumBlocks() int {
	return g.nextBlockID
}
