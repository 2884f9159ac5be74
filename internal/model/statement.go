package model

import "fmt"

// Side is the column of the balance sheet a line belongs to.
type Side string

const (
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
)

// ParseSide validates a balance-sheet side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideAsset, SideLiability:
		return Side(s), nil
	}
	return "", fmt.Errorf("unknown balance sheet side %q", s)
}

// BalanceSheet is a persisted balance-sheet line.
type BalanceSheet struct {
	ID       string
	ParentID string
	Side     Side
	Number   string
	Label    string
}

// IncomeStatement is a persisted income-statement line.
type IncomeStatement struct {
	ID       string
	ParentID string
	Number   string
	Label    string
}

// Operation is the sign a computation applies to an income-statement line.
type Operation string

const (
	OperationAdd      Operation = "add"
	OperationSubtract Operation = "subtract"
)

// ParseOperation validates a computation operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OperationAdd, OperationSubtract:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Computation is a persisted named aggregate over income-statement lines.
type Computation struct {
	ID     string
	Number string
	Label  string
}

// ComputationIncomeStatement links a computation to one signed income-statement line.
type ComputationIncomeStatement struct {
	ID                string
	ComputationID     string
	IncomeStatementID string
	Operation         Operation
	Position          int
}
