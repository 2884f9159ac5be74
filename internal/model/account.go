package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeSpecial   AccountType = "special" // off-balance and analytical classes
)

// Account is a persisted chart-of-accounts row.
type Account struct {
	ID                string
	ParentID          string // "" = top-level
	Number            string
	Label             string
	Type              AccountType
	IsClass           bool
	IsMandatory       bool
	IsSelectable      bool
	BalanceSheetID    string // "" = not placed on the balance sheet
	IncomeStatementID string // "" = not placed on the income statement
}
