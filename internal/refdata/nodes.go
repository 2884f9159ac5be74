package refdata

import (
	"github.com/cleared-dev/chartseed/internal/code"
	"github.com/cleared-dev/chartseed/internal/computation"
	"github.com/cleared-dev/chartseed/internal/hierarchy"
)

// Collection names used in warnings.
const (
	CollectionAccounts         = "accounts"
	CollectionBalanceSheets    = "balance_sheets"
	CollectionIncomeStatements = "income_statements"
	CollectionRecords          = "records"
)

// Attach places every non-class account on the statement line whose listed
// account number is the longest prefix of the account's own number. Lines
// are only considered within the account's statement space. On equal
// prefixes the first declared line wins.
func Attach(s *Snapshot) map[string]hierarchy.Bucket {
	buckets := make(map[string]hierarchy.Bucket)
	for _, a := range s.Accounts {
		if a.IsClass {
			continue
		}
		best := -1
		var bucket hierarchy.Bucket

		switch code.StatementOf(a.Number) {
		case code.StatementBalanceSheet:
			for _, l := range s.BalanceSheets {
				if n := longestPrefix(l.Accounts, a.Number); n > best {
					best = n
					bucket = hierarchy.Bucket{Statement: code.StatementBalanceSheet, Code: l.Number, Scope: string(l.Side)}
				}
			}
		case code.StatementIncomeStatement:
			for _, l := range s.IncomeStatements {
				if n := longestPrefix(l.Accounts, a.Number); n > best {
					best = n
					bucket = hierarchy.Bucket{Statement: code.StatementIncomeStatement, Code: l.Number}
				}
			}
		}
		if best > 0 {
			if _, dup := buckets[a.Number]; !dup {
				buckets[a.Number] = bucket
			}
		}
	}
	return buckets
}

func longestPrefix(prefixes []string, number string) int {
	best := 0
	for _, p := range prefixes {
		if code.HasPrefix(p, number) && len(p) > best {
			best = len(p)
		}
	}
	return best
}

// AccountNodes converts the chart of accounts to hierarchy nodes carrying
// the given buckets.
func AccountNodes(s *Snapshot, buckets map[string]hierarchy.Bucket) []hierarchy.Node {
	nodes := make([]hierarchy.Node, len(s.Accounts))
	for i, a := range s.Accounts {
		n := hierarchy.Node{
			Code:         a.Number,
			Label:        a.Label,
			IsGroup:      a.IsClass,
			IsSelectable: a.IsSelectable,
			IsMandatory:  a.IsMandatory,
		}
		if b, ok := buckets[a.Number]; ok {
			n.Bucket = &b
		}
		nodes[i] = n
	}
	return nodes
}

// BalanceSheetNodes converts balance-sheet lines to nodes scoped by side.
func BalanceSheetNodes(s *Snapshot) []hierarchy.Node {
	nodes := make([]hierarchy.Node, len(s.BalanceSheets))
	for i, l := range s.BalanceSheets {
		nodes[i] = hierarchy.Node{
			Code:       l.Number,
			ParentCode: l.NumberParent,
			Scope:      string(l.Side),
			Label:      l.Label,
		}
	}
	return nodes
}

// IncomeStatementNodes converts income-statement lines to nodes.
func IncomeStatementNodes(s *Snapshot) []hierarchy.Node {
	nodes := make([]hierarchy.Node, len(s.IncomeStatements))
	for i, l := range s.IncomeStatements {
		nodes[i] = hierarchy.Node{
			Code:       l.Number,
			ParentCode: l.NumberParent,
			Label:      l.Label,
		}
	}
	return nodes
}

// Definitions converts computation declarations for the computation engine.
func Definitions(s *Snapshot) []computation.Definition {
	defs := make([]computation.Definition, len(s.Computations))
	for i, c := range s.Computations {
		def := computation.Definition{Code: c.Number, Label: c.Label}
		for _, l := range c.IncomeStatements {
			def.Refs = append(def.Refs, computation.Ref{LineCode: l.Number, Op: l.Operation})
		}
		defs[i] = def
	}
	return defs
}
