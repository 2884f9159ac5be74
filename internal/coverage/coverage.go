// Package coverage checks that every postable account rolls up into a
// statement line.
package coverage

import (
	"fmt"

	"github.com/cleared-dev/chartseed/internal/code"
	"github.com/cleared-dev/chartseed/internal/hierarchy"
	"github.com/cleared-dev/chartseed/internal/model"
)

const collection = "accounts"

// Validate returns one warning for each selectable, non-group account whose
// class digit places it on a statement but whose bucket is missing or does
// not resolve to a line of that statement. Accounts outside classes 1-7 are
// not checked.
func Validate(accounts, balanceSheets, incomeStatements *hierarchy.Forest) []model.Warning {
	var warnings []model.Warning
	for i := range accounts.Len() {
		acct := accounts.Node(hierarchy.NodeID(i))
		if acct.IsGroup || !acct.IsSelectable {
			continue
		}

		switch code.StatementOf(acct.Code) {
		case code.StatementBalanceSheet:
			if !attached(acct, code.StatementBalanceSheet, balanceSheets) {
				warnings = append(warnings, unused(acct, model.WarningUnusedInBalanceSheet, "balance sheet"))
			}
		case code.StatementIncomeStatement:
			if !attached(acct, code.StatementIncomeStatement, incomeStatements) {
				warnings = append(warnings, unused(acct, model.WarningUnusedInIncomeStatement, "income statement"))
			}
		}
	}
	return warnings
}

func attached(acct hierarchy.Node, want code.Statement, lines *hierarchy.Forest) bool {
	if acct.Bucket == nil || acct.Bucket.Statement != want {
		return false
	}
	_, ok := lines.LookupScoped(acct.Bucket.Code, acct.Bucket.Scope)
	return ok
}

func unused(acct hierarchy.Node, kind model.WarningKind, statement string) model.Warning {
	msg := fmt.Sprintf("account %s not used in %s", acct.Code, statement)
	if acct.IsMandatory {
		msg += " (mandatory)"
	}
	w := model.Warning{
		Kind:       kind,
		Collection: collection,
		Code:       acct.Code,
		Message:    msg,
	}
	if acct.Bucket != nil {
		w.Ref = acct.Bucket.Code
	}
	return w
}
