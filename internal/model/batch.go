package model

// Batch is every record derived from one engine run, written as a single unit.
type Batch struct {
	Journals                    []Journal
	Accounts                    []Account
	BalanceSheets               []BalanceSheet
	IncomeStatements            []IncomeStatement
	Computations                []Computation
	ComputationIncomeStatements []ComputationIncomeStatement
	Records                     []Record
	RecordRows                  []RecordRow
}

// Len returns the total number of records in the batch.
func (b Batch) Len() int {
	return len(b.Journals) + len(b.Accounts) + len(b.BalanceSheets) +
		len(b.IncomeStatements) + len(b.Computations) +
		len(b.ComputationIncomeStatements) + len(b.Records) + len(b.RecordRows)
}
