package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository/mocks"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func TestCanView(t *testing.T) {
	seller := &domain.User{ID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}

	tests := []struct {
		name  string
		actor *domain.Claims
		err   error
	}{
		{name: "Vendedor vê a si mesmo", actor: &domain.Claims{UserID: "v1", Role: domain.RoleSeller}},
		{name: "Vendedor não vê colega", actor: &domain.Claims{UserID: "v2", Role: domain.RoleSeller}, err: ErrAccessDenied},
		{name: "Gerente da mesma filial", actor: &domain.Claims{UserID: "g1", Role: domain.RoleManager, BranchID: strPtr("f1")}},
		{name: "Gerente de outra filial", actor: &domain.Claims{UserID: "g2", Role: domain.RoleManager, BranchID: strPtr("f2")}, err: ErrAccessDenied},
		{name: "Gerente sem filial", actor: &domain.Claims{UserID: "g3", Role: domain.RoleManager}, err: ErrAccessDenied},
		{name: "Diretor vê qualquer vendedor", actor: &domain.Claims{UserID: "d1", Role: domain.RoleDirector}},
		{name: "Sem autenticação", actor: nil, err: ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanView(tt.actor, seller)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCanManage(t *testing.T) {
	seller := &domain.User{ID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}

	assert.ErrorIs(t, CanManage(&domain.Claims{UserID: "v1", Role: domain.RoleSeller}, seller), ErrAccessDenied)
	assert.NoError(t, CanManage(&domain.Claims{Role: domain.RoleManager, BranchID: strPtr("f1")}, seller))
	assert.NoError(t, CanManage(&domain.Claims{Role: domain.RoleDirector}, seller))
}

func TestCalendarMode(t *testing.T) {
	current := domain.MonthPeriod{Month: 3, Year: 2024}
	past := domain.MonthPeriod{Month: 2, Year: 2024}
	future := domain.MonthPeriod{Month: 1, Year: 2025}

	seller := &domain.Claims{Role: domain.RoleSeller}
	manager := &domain.Claims{Role: domain.RoleManager}
	director := &domain.Claims{Role: domain.RoleDirector}

	assert.Equal(t, domain.ViewModeEdit, CalendarMode(seller, current, current, ""))
	assert.Equal(t, domain.ViewModeEdit, CalendarMode(seller, future, current, ""))
	assert.Equal(t, domain.ViewModeReadOnly, CalendarMode(seller, past, current, domain.ViewModeEdit))
	assert.Equal(t, domain.ViewModeReadOnly, CalendarMode(seller, current, current, domain.ViewModeReadOnly))

	assert.Equal(t, domain.ViewModeReadOnly, CalendarMode(manager, current, current, ""))
	assert.Equal(t, domain.ViewModeEdit, CalendarMode(manager, past, current, domain.ViewModeEdit))
	assert.Equal(t, domain.ViewModeReadOnly, CalendarMode(director, current, current, ""))
	assert.Equal(t, domain.ViewModeEdit, CalendarMode(director, current, current, domain.ViewModeEdit))
}

func TestLoadSeller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	ctx := context.Background()

	t.Run("Vendedor encontrado", func(t *testing.T) {
		users.EXPECT().GetByID(ctx, "v1").Return(&domain.User{ID: "v1", Role: domain.RoleSeller}, nil)

		seller, err := LoadSeller(ctx, users, "v1")
		assert.NoError(t, err)
		assert.Equal(t, "v1", seller.ID)
	})

	t.Run("Usuário que não é vendedor", func(t *testing.T) {
		users.EXPECT().GetByID(ctx, "g1").Return(&domain.User{ID: "g1", Role: domain.RoleManager}, nil)

		_, err := LoadSeller(ctx, users, "g1")
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		users.EXPECT().GetByID(ctx, "x").Return(nil, nil)

		_, err := LoadSeller(ctx, users, "x")
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})

	t.Run("Falha no banco", func(t *testing.T) {
		dbErr := errors.New("conexão recusada")
		users.EXPECT().GetByID(ctx, "v1").Return(nil, dbErr)

		_, err := LoadSeller(ctx, users, "v1")
		assert.ErrorIs(t, err, dbErr)
	})
}
