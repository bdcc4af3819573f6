// Package rw models the control-flow graph of read/write nodes that the
// memory-SSA transformation consumes: blocks linked by predecessor and
// successor edges, each holding nodes that overwrite, weakly define, or
// use byte ranges of memory targets. Everything in this package is built
// by an external front-end (a lowering pass, in the toolkit this was
// extracted from); this package only knows how to hold and link that
// data, not how to produce it from source.
package rw

import (
	"fmt"

	"github.com/mchalupa/libdg/analysis/offset"
	"github.com/mchalupa/libdg/analysis/rd"
)

// Target is the opaque identity of a memory object, as produced by a
// pointer analysis: two targets are the same memory object iff they are
// the same *Target. The zero value must not be used; construct targets
// with NewTarget, or use Unknown.
type Target struct {
	name string
}

// Unknown is the process-wide sentinel target used as the key for writes
// whose destination could not be resolved to any concrete memory object.
// It is initialised once and lives for the life of the process.
var Unknown = &Target{name: "<unknown>"}

// NewTarget returns a fresh target identity. name is used only for
// debugging output.
func NewTarget(name string) *Target {
	return &Target{name: name}
}

// IsUnknown reports whether t is the Unknown sentinel.
func (t *Target) IsUnknown() bool {
	return t == Unknown
}

func (t *Target) String() string {
	if t == nil {
		return "<nil target>"
	}
	return t.name
}

// DefSite is a (target, offset, length) triple, as described in §3 of the
// design: the range of bytes of a target that a node reads or writes.
type DefSite = rd.DefSite[*Target]

// NewDefSite builds a DefSite from its three parts.
func NewDefSite(target *Target, start, length offset.Offset) DefSite {
	return rd.NewDefSite(target, start, length)
}

// NodeKind classifies what an rw.Node represents to the rest of the
// toolkit. The core itself only distinguishes PHI nodes from everything
// else; the other kinds exist so that callers (and gatherNonPhisDefs'
// postcondition) can tell a PHI from a real operation.
type NodeKind int

const (
	// Op is a generic operation: anything that isn't a call, a return,
	// or a PHI.
	Op NodeKind = iota
	// Call is a function call, modelled as a single node whose summary
	// (defs/uses/overwrites) already accounts for the callee's effects.
	Call
	// Return is a function return.
	Return
	// Phi is a synthetic join node materialised by the transformation;
	// user code never creates one directly.
	Phi
)

func (k NodeKind) String() string {
	switch k {
	case Op:
		return "op"
	case Call:
		return "call"
	case Return:
		return "ret"
	case Phi:
		return "phi"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is one read/write summary in the graph: a record of which byte
// ranges it overwrites (strong updates), weakly defines, and uses, plus
// the accumulated reaching-definition set for its uses once the
// transformation has run.
type Node struct {
	id    int
	kind  NodeKind
	block *BBlock
	name  string

	Overwrites []DefSite
	Defs       []DefSite
	Uses       []DefSite
	DefUse     rd.Set[*Node]
}

// ID returns a small dense integer identifying n within its graph,
// assigned in creation order. It carries no semantic meaning.
func (n *Node) ID() int { return n.id }

// Kind reports what n represents.
func (n *Node) Kind() NodeKind { return n.kind }

// Block returns the block n currently lives in, or nil if n has not been
// attached to one.
func (n *Node) Block() *BBlock { return n.block }

// UsesUnknown reports whether any of n's uses names the Unknown target.
func (n *Node) UsesUnknown() bool {
	for _, ds := range n.Uses {
		if ds.Target.IsUnknown() {
			return true
		}
	}
	return false
}

// AddOverwrites appends a new strong-update DefSite to n.Overwrites. PHI
// nodes created by the transformation carry exactly one such entry,
// describing the memory range they join.
func (n *Node) AddOverwrites(target *Target, start, length offset.Offset) {
	n.Overwrites = append(n.Overwrites, NewDefSite(target, start, length))
}

func (n *Node) String() string {
	if n == nil {
		return "<nil node>"
	}
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}

// SetName sets a debugging label for n; purely cosmetic.
func (n *Node) SetName(name string) { n.name = name }
