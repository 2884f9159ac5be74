// Package hierarchy reconstructs parent/child forests from flat, coded
// reference data. A Forest is an arena of nodes plus parent and child
// indexes keyed by NodeID; nodes never hold pointers to each other.
package hierarchy

import "github.com/cleared-dev/chartseed/internal/code"

// NodeID identifies a node within one Forest. It is the node's position in
// the input sequence.
type NodeID int

// NoParent marks a root.
const NoParent NodeID = -1

// Bucket is the statement line an account's balance rolls up into.
type Bucket struct {
	Statement code.Statement
	Code      string
	Scope     string // side of a balance-sheet line
}

// Node is one coded entry of a flat reference collection.
type Node struct {
	Code         string
	ParentCode   string // explicit parent; "" for roots and structurally-coded nodes
	Scope        string // partition key, e.g. balance-sheet side
	Label        string
	IsGroup      bool // aggregation class, never checked for coverage
	IsSelectable bool
	IsMandatory  bool
	Bucket       *Bucket // nil = not attached to any statement line
}

// Mode selects how parents are inferred.
type Mode int

const (
	// Structural derives the parent from the code itself (accounts).
	Structural Mode = iota
	// Explicit resolves ParentCode against the other nodes' codes (statement lines).
	Explicit
)

func (m Mode) String() string {
	switch m {
	case Structural:
		return "structural"
	case Explicit:
		return "explicit"
	}
	return "unknown"
}

// MatchFunc is an extra constraint a candidate parent must satisfy in
// Explicit mode.
type MatchFunc func(child, parent Node) bool

// SameScope requires parent and child to share a Scope.
func SameScope(child, parent Node) bool {
	return child.Scope == parent.Scope
}

type options struct {
	match MatchFunc
}

// Option configures Build.
type Option func(*options)

// WithMatch adds a constraint on explicit parent candidates.
func WithMatch(fn MatchFunc) Option {
	return func(o *options) { o.match = fn }
}
