// Package code holds pure helpers over the numeric codes that identify
// accounts and statement lines. The length of an account code encodes its
// depth: "6", "60", "601", "6011" are one level apart each.
package code

import "strings"

// Statement is the financial statement a code's balance rolls up into.
type Statement string

const (
	StatementNone            Statement = ""
	StatementBalanceSheet    Statement = "balance_sheet"
	StatementIncomeStatement Statement = "income_statement"
)

// Valid reports whether c is a non-empty string of ASCII digits.
func Valid(c string) bool {
	if c == "" {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < '0' || c[i] > '9' {
			return false
		}
	}
	return true
}

// ClassDigit returns the first character of c.
func ClassDigit(c string) (byte, bool) {
	if c == "" {
		return 0, false
	}
	return c[0], true
}

// StatementOf classifies a code by its class digit: 1-5 belong to the
// balance sheet, 6-7 to the income statement, anything else to neither.
func StatementOf(c string) Statement {
	d, ok := ClassDigit(c)
	if !ok {
		return StatementNone
	}
	switch {
	case d >= '1' && d <= '5':
		return StatementBalanceSheet
	case d == '6' || d == '7':
		return StatementIncomeStatement
	}
	return StatementNone
}

// IsPrefixParent reports whether parent is a strict prefix of child and
// exactly one digit shorter.
func IsPrefixParent(parent, child string) bool {
	return len(child) == len(parent)+1 && strings.HasPrefix(child, parent)
}

// HasPrefix reports whether ancestor equals c or is a prefix of it.
func HasPrefix(ancestor, c string) bool {
	return ancestor != "" && strings.HasPrefix(c, ancestor)
}

// BestParent returns the index of the candidate that is the closest
// structural parent of child. Only candidates one digit shorter qualify, so
// all qualifying candidates share a length; duplicates resolve to the first.
func BestParent(child string, candidates []string) (int, bool) {
	best := -1
	for i, c := range candidates {
		if !IsPrefixParent(c, child) {
			continue
		}
		if best < 0 || len(c) > len(candidates[best]) {
			best = i
		}
	}
	return best, best >= 0
}
