package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testParams struct {
	Borrower string          `json:"borrower"`
	Amount   decimal.Decimal `json:"amount"`
}

func TestBindingJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/loans", strings.NewReader(`{"borrower":"alice","amount":"1.5"}`))
	r.Header.Set("Content-Type", "application/json")

	var params testParams
	require.Nil(t, Binding(r, &params))
	assert.Equal(t, "alice", params.Borrower)
	assert.Equal(t, "1.5", params.Amount.String())
}

func TestBindingQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/loans?borrower=bob&amount=2", nil)

	var params testParams
	require.Nil(t, Binding(r, &params))
	assert.Equal(t, "bob", params.Borrower)
	assert.Equal(t, "2", params.Amount.String())
}

func TestBindingQueryUnknownKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/loans?borrower=bob&foo=bar", nil)

	var params testParams
	require.Nil(t, Binding(r, &params))
	assert.Equal(t, "bob", params.Borrower)
}

func TestBindingQueryBadDecimal(t *testing.T) {
	r := httptest.NewRequest("GET", "/loans?amount=abc", nil)

	var params testParams
	assert.NotNil(t, Binding(r, &params))
}
