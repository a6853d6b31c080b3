package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfreitas/tally/internal/ledger"
)

func TestService_CreateTransaction(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.TransactionParams
		setupMock func(m *ledger.MockRepository)
		wantMsgs  []string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.TransactionParams{
				Amount:   decimal.NewFromInt(100),
				Type:     ledger.TypeIncome,
				Category: "Sales",
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmountFailsValidation",
			params: ledger.TransactionParams{
				Amount:   decimal.Zero,
				Type:     ledger.TypeIncome,
				Category: "X",
			},
			wantMsgs: []string{"Valid amount is required"},
			wantErr:  true,
		},
		{
			name: "RepoError",
			params: ledger.TransactionParams{
				Amount:   decimal.NewFromInt(10),
				Type:     ledger.TypeExpense,
				Category: "Rent",
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.CreateTransaction(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantMsgs != nil {
					var vErr *ledger.ValidationError
					require.ErrorAs(t, err, &vErr)
					assert.Equal(t, tt.wantMsgs, vErr.Messages)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.False(t, got.Date.IsZero())
		})
	}
}

func TestService_CreateCustomer_MissingPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repo expectations: validation must reject before the store is touched.
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	got, err := svc.CreateCustomer(context.Background(), ledger.CustomerParams{Name: "A"})
	require.Error(t, err)
	assert.Nil(t, got)

	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Phone is required"}, vErr.Messages)
}

func TestService_CreateDebt_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateDebt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *ledger.Debt) error {
			d.ID = uuid.New()
			d.CreatedAt = time.Now()
			return nil
		})

	svc := ledger.NewService(repo)

	got, err := svc.CreateDebt(context.Background(), ledger.DebtParams{
		CustomerName: "Ali",
		Amount:       decimal.NewFromInt(500),
		DueDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.DebtUnpaid, got.Status)
	assert.True(t, got.PaidAmount.IsZero())
}

func TestService_PayDebt(t *testing.T) {
	debtID := uuid.New()

	newDebt := func(paid int64, status ledger.DebtStatus) *ledger.Debt {
		return &ledger.Debt{
			ID:           debtID,
			CustomerName: "Ali",
			Amount:       decimal.NewFromInt(500),
			DueDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:       status,
			PaidAmount:   decimal.NewFromInt(paid),
		}
	}

	type testCase struct {
		name       string
		existing   *ledger.Debt
		amount     int64
		wantPaid   int64
		wantStatus ledger.DebtStatus
	}

	tests := []testCase{
		{
			name:       "PartialPayment",
			existing:   newDebt(0, ledger.DebtUnpaid),
			amount:     200,
			wantPaid:   200,
			wantStatus: ledger.DebtPartial,
		},
		{
			name:       "FinalPayment",
			existing:   newDebt(200, ledger.DebtPartial),
			amount:     300,
			wantPaid:   500,
			wantStatus: ledger.DebtPaid,
		},
		{
			name:       "OverpaymentAllowed",
			existing:   newDebt(0, ledger.DebtUnpaid),
			amount:     700,
			wantPaid:   700,
			wantStatus: ledger.DebtPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			repo.EXPECT().GetDebt(gomock.Any(), debtID).Return(tt.existing, nil)

			var gotPayment *ledger.Transaction

			repo.EXPECT().
				ApplyDebtPayment(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *ledger.Debt, payment *ledger.Transaction) error {
					gotPayment = payment
					return nil
				})

			svc := ledger.NewService(repo)

			got, err := svc.PayDebt(context.Background(), debtID, decimal.NewFromInt(tt.amount))
			require.NoError(t, err)

			assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(tt.wantPaid)),
				"paid = %s", got.PaidAmount)
			assert.Equal(t, tt.wantStatus, got.Status)

			// Exactly one income transaction records the payment.
			require.NotNil(t, gotPayment)
			assert.Equal(t, ledger.TypeIncome, gotPayment.Type)
			assert.Equal(t, "Debt Repayment", gotPayment.Category)
			assert.True(t, gotPayment.Amount.Equal(decimal.NewFromInt(tt.amount)))
			assert.Contains(t, gotPayment.Description, "Ali")
		})
	}
}

func TestService_PayDebt_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().GetDebt(gomock.Any(), gomock.Any()).Return(nil, ledger.ErrNotFound)

	svc := ledger.NewService(repo)

	got, err := svc.PayDebt(context.Background(), uuid.New(), decimal.NewFromInt(10))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_DeleteTransaction_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(ledger.ErrNotFound)

	svc := ledger.NewService(repo)

	err := svc.DeleteTransaction(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_CreateTransactionBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*ledger.Transaction) error {
			for _, tx := range txs {
				tx.ID = uuid.New()
				tx.CreatedAt = time.Now()
			}
			return nil
		})

	svc := ledger.NewService(repo)

	params := []ledger.TransactionParams{
		{Amount: decimal.NewFromInt(100), Type: ledger.TypeIncome, Category: "Sales"},
		{Amount: decimal.NewFromInt(40), Type: ledger.TypeExpense, Category: "Rent"},
	}

	txs, err := svc.CreateTransactionBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.NotEmpty(t, txs[0].ID)
}

func TestService_CreateTransactionBatch_RowErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	params := []ledger.TransactionParams{
		{Amount: decimal.NewFromInt(100), Type: ledger.TypeIncome, Category: "Sales"},
		{Amount: decimal.Zero, Type: ledger.TypeIncome, Category: "Sales"},
	}

	txs, err := svc.CreateTransactionBatch(context.Background(), params)
	assert.Nil(t, txs)

	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"row 2: Valid amount is required"}, vErr.Messages)
}

func TestService_Dataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ds := &ledger.Dataset{
		Transactions: []*ledger.Transaction{tx(100, ledger.TypeIncome)},
		Metrics:      ledger.ComputeMetrics([]*ledger.Transaction{tx(100, ledger.TypeIncome)}),
	}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Dataset(gomock.Any()).Return(ds, nil).Times(2)

	svc := ledger.NewService(repo)

	// Reading twice without mutation yields identical content.
	first, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	second, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
