package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/chartseed/internal/model"
)

const (
	numFields      = 6
	colNumber      = 0
	colLabel       = 1
	colType        = 2
	colIsClass     = 3
	colIsMandatory = 4
	colSelectable  = 5
)

var header = []string{"number", "label", "type", "is_class", "is_mandatory", "is_selectable"}

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row. Ids are not part of the
// reference format.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colNumber] = acct.Number
	row[colLabel] = acct.Label
	row[colType] = string(acct.Type)
	row[colIsClass] = strconv.FormatBool(acct.IsClass)
	row[colIsMandatory] = strconv.FormatBool(acct.IsMandatory)
	row[colSelectable] = strconv.FormatBool(acct.IsSelectable)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	flags := make([]bool, 3)
	for i, col := range []int{colIsClass, colIsMandatory, colSelectable} {
		v, err := strconv.ParseBool(record[col])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing %s %q: %w", header[col], record[col], err)
		}
		flags[i] = v
	}

	return model.Account{
		Number:       record[colNumber],
		Label:        record[colLabel],
		Type:         model.AccountType(record[colType]),
		IsClass:      flags[0],
		IsMandatory:  flags[1],
		IsSelectable: flags[2],
	}, nil
}
