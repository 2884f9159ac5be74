package commands

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAmounts_SumsRepeatedLines(t *testing.T) {
	amounts, err := readAmounts(strings.NewReader("line,amount\n10, 100.50\n10,-0.50\n20,3\n"))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(amounts["10"]))
	assert.True(t, decimal.NewFromInt(3).Equal(amounts["20"]))
	assert.Len(t, amounts, 2)
}

func TestReadAmounts_Empty(t *testing.T) {
	amounts, err := readAmounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, amounts)
}

func TestReadAmounts_BadAmount(t *testing.T) {
	_, err := readAmounts(strings.NewReader("line,amount\n10,abc\n"))
	assert.ErrorContains(t, err, "line 10")
}

func TestReadAmounts_WrongColumnCount(t *testing.T) {
	_, err := readAmounts(strings.NewReader("line,amount\n10,1,2\n"))
	assert.Error(t, err)
}
