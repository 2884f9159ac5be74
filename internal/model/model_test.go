package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		in      string
		want    Operation
		wantErr bool
	}{
		{"add", OperationAdd, false},
		{"subtract", OperationSubtract, false},
		{"multiply", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOperation(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseOperation(%q)", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("liability")
	require.NoError(t, err)
	assert.Equal(t, SideLiability, side)

	_, err = ParseSide("equity")
	assert.Error(t, err)
}

func TestWarningString(t *testing.T) {
	w := Warning{
		Kind:       WarningUnresolvedLine,
		Collection: "computations",
		Code:       "MARGIN",
		Ref:        "99",
		Message:    "income statement line 99 not found",
	}
	assert.Equal(t, "unresolved_line [computations MARGIN]: income statement line 99 not found", w.String())
}

func TestCountByKind(t *testing.T) {
	counts := CountByKind([]Warning{
		{Kind: WarningUnusedInBalanceSheet},
		{Kind: WarningUnusedInBalanceSheet},
		{Kind: WarningUnresolvedParent},
	})
	assert.Equal(t, 2, counts[WarningUnusedInBalanceSheet])
	assert.Equal(t, 1, counts[WarningUnresolvedParent])
	assert.Zero(t, counts[WarningUnknownAccount])
}

func TestBatchLen(t *testing.T) {
	b := Batch{
		Accounts:     make([]Account, 3),
		Computations: make([]Computation, 1),
		RecordRows:   make([]RecordRow, 2),
	}
	assert.Equal(t, 6, b.Len())
}
