package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid("401"))
	assert.True(t, Valid("0"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("40A"))
	assert.False(t, Valid(" 40"))
}

func TestClassDigit(t *testing.T) {
	d, ok := ClassDigit("607")
	assert.True(t, ok)
	assert.Equal(t, byte('6'), d)

	_, ok = ClassDigit("")
	assert.False(t, ok)
}

func TestStatementOf(t *testing.T) {
	tests := []struct {
		code string
		want Statement
	}{
		{"101", StatementBalanceSheet},
		{"2", StatementBalanceSheet},
		{"512", StatementBalanceSheet},
		{"601", StatementIncomeStatement},
		{"706", StatementIncomeStatement},
		{"801", StatementNone},
		{"9", StatementNone},
		{"0", StatementNone},
		{"", StatementNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatementOf(tt.code), "StatementOf(%q)", tt.code)
	}
}

func TestIsPrefixParent(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"10", "101", true},
		{"1", "10", true},
		{"1", "101", false},
		{"101", "101", false},
		{"20", "101", false},
		{"", "1", true},
		{"1010", "101", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPrefixParent(tt.parent, tt.child), "IsPrefixParent(%q, %q)", tt.parent, tt.child)
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("40", "401"))
	assert.True(t, HasPrefix("401", "401"))
	assert.False(t, HasPrefix("41", "401"))
	assert.False(t, HasPrefix("", "401"))
}

func TestBestParent(t *testing.T) {
	candidates := []string{"1", "10", "101", "2", "20"}

	i, ok := BestParent("101", candidates)
	assert.True(t, ok)
	assert.Equal(t, "10", candidates[i])

	i, ok = BestParent("10", candidates)
	assert.True(t, ok)
	assert.Equal(t, "1", candidates[i])

	_, ok = BestParent("1", candidates)
	assert.False(t, ok, "class codes have no parent")

	_, ok = BestParent("3011", candidates)
	assert.False(t, ok)
}

func TestBestParent_SkipsMissingLevel(t *testing.T) {
	// "1011" has no "101" above it; "10" is two digits shorter and does not qualify.
	_, ok := BestParent("1011", []string{"1", "10"})
	assert.False(t, ok)
}

func TestBestParent_DuplicatePicksFirst(t *testing.T) {
	i, ok := BestParent("101", []string{"9", "10", "10"})
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}
