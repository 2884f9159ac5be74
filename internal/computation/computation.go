// Package computation evaluates named aggregates as signed sums over
// income-statement lines.
package computation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/chartseed/internal/hierarchy"
	"github.com/cleared-dev/chartseed/internal/model"
)

const collection = "computations"

// Ref is one signed reference to an income-statement line by code.
type Ref struct {
	LineCode string
	Op       model.Operation
}

// Definition is a computation as declared in reference data.
type Definition struct {
	Code  string
	Label string
	Refs  []Ref
}

// Term is a Ref resolved to a node of the income-statement forest.
type Term struct {
	Node     hierarchy.NodeID
	LineCode string
	Op       model.Operation
}

// Binding is a Definition whose references have been resolved. Terms keep
// the declaration order.
type Binding struct {
	Code  string
	Label string
	Terms []Term
}

// Bind resolves every definition against the income-statement forest by exact
// code match. References to unknown lines are dropped with a warning.
func Bind(defs []Definition, incomeStatements *hierarchy.Forest) ([]Binding, []model.Warning) {
	var warnings []model.Warning
	bindings := make([]Binding, 0, len(defs))
	for _, def := range defs {
		b := Binding{Code: def.Code, Label: def.Label}
		for _, ref := range def.Refs {
			id, ok := incomeStatements.Lookup(ref.LineCode)
			if !ok {
				warnings = append(warnings, model.Warning{
					Kind:       model.WarningUnresolvedLine,
					Collection: collection,
					Code:       def.Code,
					Ref:        ref.LineCode,
					Message:    fmt.Sprintf("computation %s references unknown income statement line %s", def.Code, ref.LineCode),
				})
				continue
			}
			b.Terms = append(b.Terms, Term{Node: id, LineCode: ref.LineCode, Op: ref.Op})
		}
		bindings = append(bindings, b)
	}
	return bindings, warnings
}

// Evaluate folds the binding's terms over amounts. Lines without an amount
// contribute zero.
func Evaluate(b Binding, amounts map[hierarchy.NodeID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, t := range b.Terms {
		amt, ok := amounts[t.Node]
		if !ok {
			continue
		}
		switch t.Op {
		case model.OperationAdd:
			total = total.Add(amt)
		case model.OperationSubtract:
			total = total.Sub(amt)
		}
	}
	return total
}

// Result is the value of one computation.
type Result struct {
	Code  string
	Label string
	Value decimal.Decimal
}

// EvaluateAll evaluates every binding in order.
func EvaluateAll(bindings []Binding, amounts map[hierarchy.NodeID]decimal.Decimal) []Result {
	results := make([]Result, len(bindings))
	for i, b := range bindings {
		results[i] = Result{Code: b.Code, Label: b.Label, Value: Evaluate(b, amounts)}
	}
	return results
}

// AmountsByCode re-keys code-indexed amounts by node id. Codes missing from
// the forest are returned so the caller can report them.
func AmountsByCode(incomeStatements *hierarchy.Forest, byCode map[string]decimal.Decimal) (map[hierarchy.NodeID]decimal.Decimal, []string) {
	amounts := make(map[hierarchy.NodeID]decimal.Decimal, len(byCode))
	var unknown []string
	for c, amt := range byCode {
		id, ok := incomeStatements.Lookup(c)
		if !ok {
			unknown = append(unknown, c)
			continue
		}
		amounts[id] = amt
	}
	return amounts, unknown
}
