package lending

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptHash(t *testing.T) {
	amount := decimal.NewFromInt(500000000)
	collateral := decimal.NewFromInt(1000000000)

	first, err := ReceiptHash(1, amount, collateral, 100)
	require.Nil(t, err)
	assert.Len(t, first, 64)

	// deterministic at a fixed block
	again, err := ReceiptHash(1, amount, collateral, 100)
	require.Nil(t, err)
	assert.Equal(t, first, again)

	// equal-comparing decimals hash equal regardless of representation
	alt, err := ReceiptHash(1, decimal.RequireFromString("500000000.0"), collateral, 100)
	require.Nil(t, err)
	assert.Equal(t, first, alt)

	// any field change moves the hash
	other, err := ReceiptHash(2, amount, collateral, 100)
	require.Nil(t, err)
	assert.NotEqual(t, first, other)

	other, err = ReceiptHash(1, amount, collateral, 101)
	require.Nil(t, err)
	assert.NotEqual(t, first, other)
}
