package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/medistock/internal/checkout"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

func TestService_Sell(t *testing.T) {
	itemID := uuid.New()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	type args struct {
		quantity int
	}

	type testCase struct {
		name           string
		args           args
		setupMock      func(m *checkout.MockRepository)
		wantErr        error
		wantValidation bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{quantity: 3},
			setupMock: func(m *checkout.MockRepository) {
				m.EXPECT().
					RecordSale(gomock.Any(), itemID, 3, date).
					Return(&sales.Sale{
						ID:       uuid.New(),
						ItemID:   itemID,
						ItemName: "Paracetamol 500mg",
						Quantity: 3,
						Date:     date,
					}, nil)
			},
		},
		{
			name:           "ZeroQuantity",
			args:           args{quantity: 0},
			wantValidation: true,
		},
		{
			name:           "NegativeQuantity",
			args:           args{quantity: -2},
			wantValidation: true,
		},
		{
			name: "UnknownItem",
			args: args{quantity: 3},
			setupMock: func(m *checkout.MockRepository) {
				m.EXPECT().
					RecordSale(gomock.Any(), itemID, 3, date).
					Return(nil, inventory.ErrNotFound)
			},
			wantErr: inventory.ErrNotFound,
		},
		{
			name: "InsufficientStock",
			args: args{quantity: 3},
			setupMock: func(m *checkout.MockRepository) {
				m.EXPECT().
					RecordSale(gomock.Any(), itemID, 3, date).
					Return(nil, inventory.ErrInsufficientStock)
			},
			wantErr: inventory.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := checkout.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := checkout.NewService(repo)
			got, err := svc.Sell(context.Background(), itemID, tt.args.quantity, date)

			if tt.wantValidation {
				assert.True(t, checkout.IsValidation(err))
				assert.Nil(t, got)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Paracetamol 500mg", got.ItemName)
		})
	}
}
