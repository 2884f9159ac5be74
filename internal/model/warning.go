package model

import "fmt"

// WarningKind enumerates the non-fatal data-integrity problems a run can report.
type WarningKind string

const (
	WarningUnresolvedParent        WarningKind = "unresolved_parent"
	WarningParentCycle             WarningKind = "parent_cycle"
	WarningUnusedInBalanceSheet    WarningKind = "unused_in_balance_sheet"
	WarningUnusedInIncomeStatement WarningKind = "unused_in_income_statement"
	WarningUnresolvedLine          WarningKind = "unresolved_line"
	WarningUnknownAccount          WarningKind = "unknown_account"
	WarningUnknownJournal          WarningKind = "unknown_journal"
	WarningUnbalancedRecord        WarningKind = "unbalanced_record"
	WarningInvalidRow              WarningKind = "invalid_row"
)

// WarningKinds lists every kind in reporting order.
var WarningKinds = []WarningKind{
	WarningUnresolvedParent,
	WarningParentCycle,
	WarningUnusedInBalanceSheet,
	WarningUnusedInIncomeStatement,
	WarningUnresolvedLine,
	WarningUnknownAccount,
	WarningUnknownJournal,
	WarningUnbalancedRecord,
	WarningInvalidRow,
}

// Warning is a data-quality gap found in the reference dataset.
// Processing always continues past a warning.
type Warning struct {
	Kind       WarningKind
	Collection string // "accounts", "balance_sheets", "income_statements", "computations", "records"
	Code       string // code of the offending item
	Ref        string // code it refers to, if any
	Message    string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s %s]: %s", w.Kind, w.Collection, w.Code, w.Message)
}

// CountByKind tallies warnings per kind.
func CountByKind(warnings []Warning) map[WarningKind]int {
	counts := make(map[WarningKind]int)
	for _, w := range warnings {
		counts[w.Kind]++
	}
	return counts
}
