package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a persisted accounting journal (sales, purchases, bank...).
type Journal struct {
	ID    string
	Code  string
	Label string
}

// Record is a persisted historical accounting record.
type Record struct {
	ID        string
	JournalID string // "" = no journal
	Label     string
	Date      time.Time
}

// RecordRow is one debit or credit line of a Record.
type RecordRow struct {
	ID        string
	RecordID  string
	AccountID string
	Label     string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}
