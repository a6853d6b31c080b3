package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfreitas/tally/internal/export"
	"github.com/mfreitas/tally/internal/ledger"
)

func TestService_WriteTransactionsCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any()).Return([]*ledger.Transaction{
		{
			ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Amount:      decimal.NewFromInt(100),
			Type:        ledger.TypeIncome,
			Category:    "Sales",
			Description: "Invoice 12",
			Date:        date,
			CreatedAt:   date,
		},
	}, nil)

	svc := export.NewService(ledger.NewService(repo))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteTransactionsCSV(context.Background(), &buf))

	want := "id,date,type,category,amount,description,created_at\n" +
		"11111111-1111-1111-1111-111111111111,2025-01-02,income,Sales,100.00,Invoice 12,2025-01-02\n"
	assert.Equal(t, want, buf.String())
}

func TestService_WriteTransactionsCSV_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any()).Return(nil, nil)

	svc := export.NewService(ledger.NewService(repo))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteTransactionsCSV(context.Background(), &buf))
	assert.Equal(t, "id,date,type,category,amount,description,created_at\n", buf.String())
}
