package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/chartseed/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{Number: "1", Label: "Comptes de capitaux", Type: model.AccountTypeEquity, IsClass: true},
		{Number: "401", Label: "Fournisseurs", Type: model.AccountTypeLiability, IsMandatory: true, IsSelectable: true},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, accounts, got)
}

func TestReadAccounts_KeepsLeadingZeros(t *testing.T) {
	in := "number,label,type,is_class,is_mandatory,is_selectable\n" +
		"0,Hors bilan,special,true,false,false\n" +
		"0801,Engagement,special,false,false,true\n"

	got, err := ReadAccounts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0801", got[1].Number)
	assert.True(t, got[1].IsSelectable)
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadAccounts_BadFlag(t *testing.T) {
	in := "number,label,type,is_class,is_mandatory,is_selectable\n" +
		"401,Fournisseurs,liability,maybe,false,true\n"

	_, err := ReadAccounts(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "is_class")
}

func TestReadAccounts_WrongFieldCount(t *testing.T) {
	in := "number,label,type\n401,Fournisseurs,liability\n"
	_, err := ReadAccounts(strings.NewReader(in))
	require.Error(t, err)
}

func TestUnmarshalAccount_WrongLength(t *testing.T) {
	_, err := UnmarshalAccount([]string{"401"})
	require.Error(t, err)
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart()

	var buf bytes.Buffer
	err := WriteAccounts(&buf, chart)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
