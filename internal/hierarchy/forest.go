package hierarchy

import (
	"fmt"
	"slices"

	"github.com/cleared-dev/chartseed/internal/code"
	"github.com/cleared-dev/chartseed/internal/model"
)

// Forest is an immutable set of trees over a flat node collection.
type Forest struct {
	name     string
	nodes    []Node
	parents  []NodeID
	children [][]NodeID
	roots    []NodeID
	byCode   map[string][]NodeID
}

// Build assigns a parent to every node and indexes the result. Name labels
// the collection in warnings. Unresolvable or cyclic parents never fail the
// build: the node becomes a root and a warning is returned.
func Build(name string, nodes []Node, mode Mode, opts ...Option) (*Forest, []model.Warning) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f := &Forest{
		name:     name,
		nodes:    slices.Clone(nodes),
		parents:  make([]NodeID, len(nodes)),
		children: make([][]NodeID, len(nodes)),
		byCode:   make(map[string][]NodeID, len(nodes)),
	}
	for i, n := range f.nodes {
		f.byCode[n.Code] = append(f.byCode[n.Code], NodeID(i))
	}

	var warnings []model.Warning
	switch mode {
	case Structural:
		f.linkStructural()
	case Explicit:
		warnings = f.linkExplicit(o.match)
	default:
		panic(fmt.Sprintf("hierarchy: unknown mode %d", mode))
	}
	warnings = append(warnings, f.breakCycles()...)

	for i, p := range f.parents {
		if p == NoParent {
			f.roots = append(f.roots, NodeID(i))
			continue
		}
		f.children[p] = append(f.children[p], NodeID(i))
	}
	return f, warnings
}

func (f *Forest) linkStructural() {
	codes := make([]string, len(f.nodes))
	for i, n := range f.nodes {
		codes[i] = n.Code
	}
	for i := range f.nodes {
		f.parents[i] = NoParent
		if p, ok := code.BestParent(codes[i], codes); ok {
			f.parents[i] = NodeID(p)
		}
	}
}

func (f *Forest) linkExplicit(match MatchFunc) []model.Warning {
	var warnings []model.Warning
	for i, n := range f.nodes {
		f.parents[i] = NoParent
		if n.ParentCode == "" {
			continue
		}
		if n.ParentCode == n.Code {
			warnings = append(warnings, f.warning(model.WarningParentCycle, n,
				fmt.Sprintf("line %s declares itself as parent", n.Code)))
			continue
		}

		found := false
		for _, c := range f.byCode[n.ParentCode] {
			if match != nil && !match(n, f.nodes[c]) {
				continue
			}
			f.parents[i] = c
			found = true
			break
		}
		if !found {
			warnings = append(warnings, f.warning(model.WarningUnresolvedParent, n,
				fmt.Sprintf("parent %s of line %s not found", n.ParentCode, n.Code)))
		}
	}
	return warnings
}

// breakCycles detaches every node that is its own ancestor. Nodes are visited
// in input order, so the first member of a cycle becomes its root.
func (f *Forest) breakCycles() []model.Warning {
	var warnings []model.Warning
	for i := range f.nodes {
		self := NodeID(i)
		p := f.parents[i]
		for steps := 0; p != NoParent && steps < len(f.nodes); steps++ {
			if p == self {
				f.parents[i] = NoParent
				warnings = append(warnings, f.warning(model.WarningParentCycle, f.nodes[i],
					fmt.Sprintf("line %s is its own ancestor", f.nodes[i].Code)))
				break
			}
			p = f.parents[p]
		}
	}
	return warnings
}

func (f *Forest) warning(kind model.WarningKind, n Node, msg string) model.Warning {
	return model.Warning{
		Kind:       kind,
		Collection: f.name,
		Code:       n.Code,
		Ref:        n.ParentCode,
		Message:    msg,
	}
}

// Name returns the collection label given to Build.
func (f *Forest) Name() string { return f.name }

// Len returns the number of nodes.
func (f *Forest) Len() int { return len(f.nodes) }

// Node returns the node with the given id.
func (f *Forest) Node(id NodeID) Node { return f.nodes[id] }

// Parent returns the parent of id, or false for a root.
func (f *Forest) Parent(id NodeID) (NodeID, bool) {
	p := f.parents[id]
	return p, p != NoParent
}

// Children returns the direct children of id in input order.
func (f *Forest) Children(id NodeID) []NodeID { return f.children[id] }

// IsLeaf reports whether id has no children.
func (f *Forest) IsLeaf(id NodeID) bool { return len(f.children[id]) == 0 }

// Roots returns the nodes without a parent in input order.
func (f *Forest) Roots() []NodeID { return f.roots }

// Lookup returns the first node with the given code.
func (f *Forest) Lookup(c string) (NodeID, bool) {
	ids := f.byCode[c]
	if len(ids) == 0 {
		return NoParent, false
	}
	return ids[0], true
}

// LookupScoped returns the first node with the given code and scope.
func (f *Forest) LookupScoped(c, scope string) (NodeID, bool) {
	for _, id := range f.byCode[c] {
		if f.nodes[id].Scope == scope {
			return id, true
		}
	}
	return NoParent, false
}

// Ancestors returns the chain of parents of id, closest first.
func (f *Forest) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := f.parents[id]; p != NoParent; p = f.parents[p] {
		out = append(out, p)
	}
	return out
}

// Depth returns 0 for roots, 1 for their children, and so on.
func (f *Forest) Depth(id NodeID) int {
	return len(f.Ancestors(id))
}

// Walk visits every node depth-first, roots and children in input order.
// Returning false from fn skips the node's subtree.
func (f *Forest) Walk(fn func(id NodeID, depth int) bool) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range f.children[id] {
			visit(c, depth+1)
		}
	}
	for _, r := range f.roots {
		visit(r, 0)
	}
}
