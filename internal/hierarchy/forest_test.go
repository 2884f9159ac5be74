package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/chartseed/internal/model"
)

func accountNodes(codes ...string) []Node {
	nodes := make([]Node, len(codes))
	for i, c := range codes {
		nodes[i] = Node{Code: c, IsSelectable: true}
	}
	return nodes
}

func parentCode(f *Forest, c string) string {
	id, ok := f.Lookup(c)
	if !ok {
		return "<missing>"
	}
	p, ok := f.Parent(id)
	if !ok {
		return ""
	}
	return f.Node(p).Code
}

func TestBuildStructural_Chain(t *testing.T) {
	f, warnings := Build("accounts", accountNodes("1", "10", "101"), Structural)
	assert.Empty(t, warnings)

	assert.Equal(t, "10", parentCode(f, "101"))
	assert.Equal(t, "1", parentCode(f, "10"))
	assert.Equal(t, "", parentCode(f, "1"))

	require.Len(t, f.Roots(), 1)
	assert.Equal(t, "1", f.Node(f.Roots()[0]).Code)
}

func TestBuildStructural_InputOrderIrrelevant(t *testing.T) {
	f, _ := Build("accounts", accountNodes("101", "2", "10", "20", "1", "201"), Structural)

	assert.Equal(t, "10", parentCode(f, "101"))
	assert.Equal(t, "1", parentCode(f, "10"))
	assert.Equal(t, "20", parentCode(f, "201"))
	assert.Equal(t, "2", parentCode(f, "20"))
	assert.Len(t, f.Roots(), 2)
}

func TestBuildStructural_MissingLevelIsRoot(t *testing.T) {
	f, warnings := Build("accounts", accountNodes("1", "101"), Structural)
	assert.Empty(t, warnings, "structural gaps are not reported")
	assert.Equal(t, "", parentCode(f, "101"))
	assert.Len(t, f.Roots(), 2)
}

func TestBuildStructural_Idempotent(t *testing.T) {
	nodes := accountNodes("6", "60", "601", "6011", "607", "61", "7", "70", "706")

	a, _ := Build("accounts", nodes, Structural)
	b, _ := Build("accounts", nodes, Structural)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Len() {
		pa, oka := a.Parent(NodeID(i))
		pb, okb := b.Parent(NodeID(i))
		assert.Equal(t, oka, okb)
		assert.Equal(t, pa, pb)
	}
}

func TestBuildStructural_DuplicatesStayAcyclic(t *testing.T) {
	f, _ := Build("accounts", accountNodes("1", "10", "10", "101", "101", "1"), Structural)

	assert.Equal(t, 6, f.Len())
	assertAcyclic(t, f)

	// The first "10" is the parent of both "101" nodes.
	first, _ := f.Lookup("10")
	assert.Len(t, f.Children(first), 2)
}

func TestBuildExplicit(t *testing.T) {
	nodes := []Node{
		{Code: "1", Label: "Operating income"},
		{Code: "10", ParentCode: "1", Label: "Sales"},
		{Code: "11", ParentCode: "1", Label: "Grants"},
		{Code: "2", Label: "Operating expenses"},
		{Code: "20", ParentCode: "2", Label: "Purchases"},
	}
	f, warnings := Build("income_statements", nodes, Explicit)
	assert.Empty(t, warnings)

	assert.Equal(t, "1", parentCode(f, "10"))
	assert.Equal(t, "1", parentCode(f, "11"))
	assert.Equal(t, "2", parentCode(f, "20"))

	root, _ := f.Lookup("1")
	assert.Len(t, f.Children(root), 2)
	assert.True(t, f.IsLeaf(NodeID(1)))
}

func TestBuildExplicit_UnresolvedParentBecomesRoot(t *testing.T) {
	nodes := []Node{
		{Code: "1"},
		{Code: "10", ParentCode: "9"},
	}
	f, warnings := Build("income_statements", nodes, Explicit)

	assert.Equal(t, "", parentCode(f, "10"))
	assert.Len(t, f.Roots(), 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarningUnresolvedParent, warnings[0].Kind)
	assert.Equal(t, "income_statements", warnings[0].Collection)
	assert.Equal(t, "10", warnings[0].Code)
	assert.Equal(t, "9", warnings[0].Ref)
}

func TestBuildExplicit_SameScope(t *testing.T) {
	nodes := []Node{
		{Code: "1", Scope: "asset"},
		{Code: "1", Scope: "liability"},
		{Code: "10", ParentCode: "1", Scope: "liability"},
		{Code: "10", ParentCode: "1", Scope: "asset"},
	}
	f, warnings := Build("balance_sheets", nodes, Explicit, WithMatch(SameScope))
	assert.Empty(t, warnings)

	p, ok := f.Parent(2)
	require.True(t, ok)
	assert.Equal(t, NodeID(1), p)

	p, ok = f.Parent(3)
	require.True(t, ok)
	assert.Equal(t, NodeID(0), p)

	id, ok := f.LookupScoped("10", "asset")
	require.True(t, ok)
	assert.Equal(t, NodeID(3), id)
}

func TestBuildExplicit_MatchRejectsAll(t *testing.T) {
	nodes := []Node{
		{Code: "1", Scope: "asset"},
		{Code: "10", ParentCode: "1", Scope: "liability"},
	}
	f, warnings := Build("balance_sheets", nodes, Explicit, WithMatch(SameScope))
	assert.Len(t, f.Roots(), 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarningUnresolvedParent, warnings[0].Kind)
}

func TestBuildExplicit_CyclesAreBroken(t *testing.T) {
	nodes := []Node{
		{Code: "1", ParentCode: "3"},
		{Code: "2", ParentCode: "1"},
		{Code: "3", ParentCode: "2"},
		{Code: "4", ParentCode: "4"},
		{Code: "5", ParentCode: "3"},
	}
	f, warnings := Build("income_statements", nodes, Explicit)

	assert.Equal(t, 5, f.Len())
	assertAcyclic(t, f)

	counts := model.CountByKind(warnings)
	assert.Equal(t, 2, counts[model.WarningParentCycle])

	// The first member of the cycle is detached, the rest hang below it.
	assert.Equal(t, "", parentCode(f, "1"))
	assert.Equal(t, "1", parentCode(f, "2"))
	assert.Equal(t, "2", parentCode(f, "3"))
	assert.Equal(t, "3", parentCode(f, "5"))
	assert.Equal(t, "", parentCode(f, "4"))
}

func TestForest_AncestorsDepthWalk(t *testing.T) {
	f, _ := Build("accounts", accountNodes("1", "10", "101", "102", "2"), Structural)

	id, _ := f.Lookup("101")
	var codes []string
	for _, a := range f.Ancestors(id) {
		codes = append(codes, f.Node(a).Code)
	}
	assert.Equal(t, []string{"10", "1"}, codes)
	assert.Equal(t, 2, f.Depth(id))

	var visited []string
	f.Walk(func(id NodeID, depth int) bool {
		visited = append(visited, f.Node(id).Code)
		return true
	})
	assert.Equal(t, []string{"1", "10", "101", "102", "2"}, visited)

	visited = nil
	f.Walk(func(id NodeID, depth int) bool {
		visited = append(visited, f.Node(id).Code)
		return depth < 1
	})
	assert.Equal(t, []string{"1", "10", "2"}, visited)
}

func TestForest_EveryNodeOnce(t *testing.T) {
	nodes := accountNodes("4", "40", "401", "4011", "41", "411", "5", "512")
	f, _ := Build("accounts", nodes, Structural)

	seen := make(map[NodeID]int)
	f.Walk(func(id NodeID, depth int) bool {
		seen[id]++
		return true
	})
	assert.Len(t, seen, len(nodes))
	for id, n := range seen {
		assert.Equal(t, 1, n, "node %d visited %d times", id, n)
	}
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	nodes := accountNodes("1", "10")
	f, _ := Build("accounts", nodes, Structural)
	nodes[0].Code = "9"
	assert.Equal(t, "1", f.Node(0).Code)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "structural", Structural.String())
	assert.Equal(t, "explicit", Explicit.String())
	assert.Equal(t, "unknown", Mode(7).String())
}

func assertAcyclic(t *testing.T, f *Forest) {
	t.Helper()
	for i := range f.Len() {
		id := NodeID(i)
		for _, a := range f.Ancestors(id) {
			assert.NotEqual(t, id, a, "node %d is its own ancestor", id)
		}
	}
}
