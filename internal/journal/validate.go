package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/chartseed/internal/model"
)

// Collection names the records collection in warnings.
const Collection = "records"

var hundred = decimal.NewFromInt(100)

// ValidateRecords checks the double-entry invariants of emitted records:
// every record balances, and every row carries exactly one positive amount
// with at most two decimal places. Rows whose RecordID matches no record
// are ignored.
func ValidateRecords(records []model.Record, rows []model.RecordRow) []model.Warning {
	var warnings []model.Warning

	byRecord := make(map[string][]model.RecordRow, len(records))
	for _, row := range rows {
		byRecord[row.RecordID] = append(byRecord[row.RecordID], row)
	}

	for _, rec := range records {
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, row := range byRecord[rec.ID] {
			totalDebit = totalDebit.Add(row.Debit)
			totalCredit = totalCredit.Add(row.Credit)
			warnings = append(warnings, validateRow(rec, row)...)
		}
		if !totalDebit.Equal(totalCredit) {
			warnings = append(warnings, model.Warning{
				Kind:       model.WarningUnbalancedRecord,
				Collection: Collection,
				Code:       rec.Label,
				Message: fmt.Sprintf("record %q on %s: debits (%s) != credits (%s)",
					rec.Label, rec.Date.Format("2006-01-02"), totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}
	return warnings
}

func validateRow(rec model.Record, row model.RecordRow) []model.Warning {
	invalid := func(format string, args ...any) model.Warning {
		return model.Warning{
			Kind:       model.WarningInvalidRow,
			Collection: Collection,
			Code:       rec.Label,
			Ref:        row.Label,
			Message:    fmt.Sprintf("record %q: ", rec.Label) + fmt.Sprintf(format, args...),
		}
	}

	var warnings []model.Warning
	if row.Debit.IsNegative() || row.Credit.IsNegative() {
		warnings = append(warnings, invalid("row %q has a negative amount", row.Label))
	}
	if row.Debit.IsZero() == row.Credit.IsZero() {
		warnings = append(warnings, invalid("row %q must have exactly one of debit or credit", row.Label))
	}
	if !row.Debit.Mul(hundred).Equal(row.Debit.Mul(hundred).Floor()) {
		warnings = append(warnings, invalid("debit %s has more than 2 decimal places", row.Debit))
	}
	if !row.Credit.Mul(hundred).Equal(row.Credit.Mul(hundred).Floor()) {
		warnings = append(warnings, invalid("credit %s has more than 2 decimal places", row.Credit))
	}
	return warnings
}
