package statement_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitas/tally/internal/importer/statement"
	"github.com/mfreitas/tally/internal/ledger"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Exported on 2025-05-03", // preamble noise
		"date,type,category,amount,description",
		"2025-01-02,income,Sales,100.00,Invoice 12",
		"2025-01-03,expense,Rent,40.00,January rent",
		"Total,,,140.00,", // footer noise, no date
	}, "\n")

	params, err := statement.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, ledger.TypeIncome, params[0].Type)
	assert.Equal(t, "Sales", params[0].Category)
	assert.True(t, params[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, ledger.TypeExpense, params[1].Type)
	assert.Equal(t, "January rent", params[1].Description)
}

func TestParser_Parse_InfersTypeFromSign(t *testing.T) {
	input := strings.Join([]string{
		"date;amount;description",
		"02/01/2025;1.234,56;Store sales",
		"03/01/2025;-588,74;Supplier payment",
	}, "\n")

	params, err := statement.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, ledger.TypeIncome, params[0].Type)
	assert.True(t, params[0].Amount.Equal(decimal.RequireFromString("1234.56")),
		"amount = %s", params[0].Amount)

	assert.Equal(t, ledger.TypeExpense, params[1].Type)
	assert.True(t, params[1].Amount.Equal(decimal.RequireFromString("588.74")),
		"amount = %s", params[1].Amount)
}

func TestParser_Parse_Windows1252(t *testing.T) {
	// "Papelaria São Jorge" with 0xE3 for ã, invalid as UTF-8.
	input := []byte("date,amount,description\n2025-01-02,-10.00,Papelaria S\xe3o Jorge\n")

	params, err := statement.NewParser().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Papelaria São Jorge", params[0].Description)
}

func TestParser_Parse_NoHeader(t *testing.T) {
	_, err := statement.NewParser().Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	assert.ErrorContains(t, err, "no header row")
}

func TestParser_Parse_BadAmount(t *testing.T) {
	input := "date,amount\n2025-01-02,not-a-number\n"

	_, err := statement.NewParser().Parse(strings.NewReader(input))
	assert.ErrorContains(t, err, "row 2")
}
