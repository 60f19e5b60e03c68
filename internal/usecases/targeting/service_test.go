package targeting

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository/mocks"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

type recorderStub struct {
	calls    int
	previous *domain.Target
	err      error
}

func (r *recorderStub) RecordTargetChange(_ context.Context, _ string, previous, _ *domain.Target) error {
	r.calls++
	r.previous = previous
	return r.err
}

var (
	seller   = &domain.User{ID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}
	manager  = &domain.Claims{UserID: "g1", Role: domain.RoleManager, BranchID: strPtr("f1")}
	outsider = &domain.Claims{UserID: "g2", Role: domain.RoleManager, BranchID: strPtr("f2")}
	director = &domain.Claims{UserID: "d1", Role: domain.RoleDirector}
)

func newService(t *testing.T) (*Service, *mocks.MockTargetRepository, *mocks.MockUserRepository, *recorderStub) {
	ctrl := gomock.NewController(t)
	targets := mocks.NewMockTargetRepository(ctrl)
	users := mocks.NewMockUserRepository(ctrl)
	recorder := &recorderStub{}

	return NewService(targets, users, validation.New(), recorder), targets, users, recorder
}

func request(amount string) domain.SetTargetRequest {
	return domain.SetTargetRequest{SellerID: "v1", Month: 3, Year: 2024, TargetAmount: decimal.RequireFromString(amount)}
}

func TestSetTarget_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.SetTargetRequest
		err  error
	}{
		{name: "Mês fora do intervalo", req: domain.SetTargetRequest{SellerID: "v1", Month: 13, Year: 2024}},
		{name: "Vendedor ausente", req: domain.SetTargetRequest{Month: 3, Year: 2024}},
		{name: "Meta negativa", req: request("-1"), err: ErrNegativeTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newService(t)

			_, err := service.SetTarget(context.Background(), director, tt.req)

			var targetErr *TargetError
			require.True(t, errors.As(err, &targetErr))
			assert.Equal(t, apiErrors.ErrInvalidRequest, targetErr.Code)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			var validationErr *validation.Error
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestSetTarget(t *testing.T) {
	t.Run("Gerente cria meta zero", func(t *testing.T) {
		service, targets, users, recorder := newService(t)

		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)
		targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil)
		targets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, target *domain.Target) (*domain.Target, error) {
			assert.Empty(t, target.ID)
			assert.True(t, target.TargetAmount.IsZero())
			target.ID = "m1"
			return target, nil
		})

		saved, err := service.SetTarget(context.Background(), manager, request("0"))

		require.NoError(t, err)
		assert.Equal(t, "m1", saved.ID)
		assert.Equal(t, 1, recorder.calls)
		assert.Nil(t, recorder.previous)
	})

	t.Run("Diretor substitui meta existente", func(t *testing.T) {
		service, targets, users, recorder := newService(t)
		previous := &domain.Target{ID: "m1", SellerID: "v1", Month: 3, Year: 2024, TargetAmount: decimal.NewFromInt(5000)}

		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)
		targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(previous, nil)
		targets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, target *domain.Target) (*domain.Target, error) {
			assert.Equal(t, "m1", target.ID)
			assert.Equal(t, "12000.50", target.TargetAmount.StringFixed(2))
			return target, nil
		})

		_, err := service.SetTarget(context.Background(), director, request("12000.499"))

		require.NoError(t, err)
		assert.Equal(t, previous, recorder.previous)
	})

	t.Run("Falha na auditoria não impede a gravação", func(t *testing.T) {
		service, targets, users, recorder := newService(t)
		recorder.err = errors.New("auditoria fora do ar")

		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)
		targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil)
		targets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, target *domain.Target) (*domain.Target, error) {
			return target, nil
		})

		_, err := service.SetTarget(context.Background(), director, request("100"))
		assert.NoError(t, err)
	})

	t.Run("Gerente de outra filial", func(t *testing.T) {
		service, _, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)

		_, err := service.SetTarget(context.Background(), outsider, request("100"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Vendedor não define a própria meta", func(t *testing.T) {
		service, _, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)

		_, err := service.SetTarget(context.Background(), &domain.Claims{UserID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}, request("100"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetTarget(t *testing.T) {
	period := domain.MonthPeriod{Month: 3, Year: 2024}
	sellerClaims := &domain.Claims{UserID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}

	t.Run("Vendedor consulta a própria meta", func(t *testing.T) {
		service, targets, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)
		targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(&domain.Target{ID: "m1"}, nil)

		target, err := service.GetTarget(context.Background(), sellerClaims, "v1", period)

		require.NoError(t, err)
		assert.Equal(t, "m1", target.ID)
	})

	t.Run("Sem meta no período", func(t *testing.T) {
		service, targets, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(seller, nil)
		targets.EXPECT().GetBySellerAndPeriod(gomock.Any(), "v1", 3, 2024).Return(nil, nil)

		_, err := service.GetTarget(context.Background(), sellerClaims, "v1", period)
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("Vendedor inexistente", func(t *testing.T) {
		service, _, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v9").Return(nil, nil)

		_, err := service.GetTarget(context.Background(), director, "v9", period)
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})
}
