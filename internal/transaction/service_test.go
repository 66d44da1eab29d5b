package transaction_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var txnIDPattern = regexp.MustCompile(`^TXN-[A-Z0-9]{8}$`)

func TestService_Create(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Description:     "Product sales",
				Type:            transaction.TypeRevenue,
				Category:        "Product Sales",
				Amount:          decimal.NewFromInt(1000),
				PaymentMethod:   transaction.PaymentBank,
				TransactionDate: date,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					TransactionIDExists(gomock.Any(), gomock.Any()).
					Return(false, nil)
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "UnknownType",
			params: transaction.CreateParams{
				Type:            transaction.Type("DIVIDEND"),
				Amount:          decimal.NewFromInt(10),
				TransactionDate: date,
			},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "UnknownPaymentMethod",
			params: transaction.CreateParams{
				Type:            transaction.TypeExpense,
				PaymentMethod:   transaction.PaymentMethod("CHEQUE"),
				Amount:          decimal.NewFromInt(10),
				TransactionDate: date,
			},
			wantErr: transaction.ErrInvalidPaymentMethod,
		},
		{
			name: "NegativeAmount",
			params: transaction.CreateParams{
				Type:            transaction.TypeExpense,
				Amount:          decimal.NewFromInt(-10),
				TransactionDate: date,
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "MissingDate",
			params: transaction.CreateParams{
				Type:   transaction.TypeExpense,
				Amount: decimal.NewFromInt(10),
			},
			wantErr: transaction.ErrMissingDate,
		},
		{
			name: "RepoError",
			params: transaction.CreateParams{
				Type:            transaction.TypeExpense,
				Amount:          decimal.NewFromInt(500),
				TransactionDate: date,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					TransactionIDExists(gomock.Any(), gomock.Any()).
					Return(false, nil)
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Regexp(t, txnIDPattern, got.TransactionID)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, transaction.PaymentBank, got.PaymentMethod)
		})
	}
}

func TestService_Create_RetriesOnCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	// First candidate already exists, second wins.
	gomock.InOrder(
		repo.EXPECT().TransactionIDExists(gomock.Any(), gomock.Any()).Return(true, nil),
		repo.EXPECT().TransactionIDExists(gomock.Any(), gomock.Any()).Return(false, nil),
	)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Create(context.Background(), transaction.CreateParams{
		Type:            transaction.TypeRevenue,
		Amount:          decimal.NewFromInt(100),
		TransactionDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Regexp(t, txnIDPattern, got.TransactionID)
}

func TestService_Create_RetriesOnStoreConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	// The existence check passes both times but a concurrent insert steals
	// the first id; the store conflict must trigger a regeneration.
	repo.EXPECT().TransactionIDExists(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	gomock.InOrder(
		repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction.ErrDuplicateID),
		repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := svc.Create(context.Background(), transaction.CreateParams{
		Type:            transaction.TypeRevenue,
		Amount:          decimal.NewFromInt(100),
		TransactionDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	existing := func() *transaction.Transaction {
		return &transaction.Transaction{
			ID:              id,
			TransactionID:   "TXN-AAAA1111",
			Description:     "Office rent",
			Type:            transaction.TypeExpense,
			Category:        "Rent",
			Amount:          decimal.NewFromInt(200),
			PaymentMethod:   transaction.PaymentBank,
			TransactionDate: date,
		}
	}

	t.Run("PartialMerge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		svc := transaction.NewService(repo)

		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		newAmount := decimal.NewFromInt(250)
		got, err := svc.Update(context.Background(), id, transaction.UpdateParams{
			Amount: &newAmount,
		})
		require.NoError(t, err)

		// Only the supplied field changes.
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, "Office rent", got.Description)
		assert.Equal(t, "Rent", got.Category)
		assert.Equal(t, transaction.TypeExpense, got.Type)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		svc := transaction.NewService(repo)

		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

		desc := "x"
		_, err := svc.Update(context.Background(), id, transaction.UpdateParams{Description: &desc})
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})

	t.Run("RejectsInvalidType", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		svc := transaction.NewService(repo)

		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(existing(), nil)

		bad := transaction.Type("NONSENSE")
		_, err := svc.Update(context.Background(), id, transaction.UpdateParams{Type: &bad})
		assert.ErrorIs(t, err, transaction.ErrInvalidType)
	})
}

func TestService_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{ID: id}, nil)
	repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.True(t, tx.IsReconciled)
			assert.NotNil(t, tx.ReconciledAt)
			assert.Equal(t, "auditor", tx.ReconciledBy)
			return nil
		})

	got, err := svc.Reconcile(context.Background(), id, "auditor")
	require.NoError(t, err)
	assert.True(t, got.IsReconciled)
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(transaction.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), transaction.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	typ := transaction.TypeRevenue
	filter := transaction.Filter{Type: &typ, Limit: 20}

	repo.EXPECT().ListTransactions(gomock.Any(), filter).Return([]*transaction.Transaction{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
