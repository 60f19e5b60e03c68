package staffing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository/mocks"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

var (
	manager  = &domain.Claims{UserID: "g1", Role: domain.RoleManager, BranchID: strPtr("f1")}
	director = &domain.Claims{UserID: "d1", Role: domain.RoleDirector}
	seller   = &domain.Claims{UserID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}
)

func newService(t *testing.T) (*Service, *mocks.MockUserRepository, *mocks.MockBranchRepository) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	branches := mocks.NewMockBranchRepository(ctrl)
	return NewService(users, branches, validation.New()), users, branches
}

func newSellerRequest() domain.CreateUserRequest {
	return domain.CreateUserRequest{Name: " Ana Souza ", Email: "Ana@Loja.com", Password: "senha123", Role: domain.RoleSeller}
}

func TestCreateUser(t *testing.T) {
	t.Run("Gerente cadastra vendedor na própria filial", func(t *testing.T) {
		service, users, _ := newService(t)

		users.EXPECT().GetByEmail(gomock.Any(), "ana@loja.com").Return(nil, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
			assert.Equal(t, "Ana Souza", user.Name)
			assert.Equal(t, "f1", *user.BranchID)
			assert.True(t, user.MustChangePassword)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha123")))
			user.ID = "v9"
			return user, nil
		})

		user, err := service.CreateUser(context.Background(), manager, newSellerRequest())

		require.NoError(t, err)
		assert.Equal(t, "v9", user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Gerente não cadastra em outra filial", func(t *testing.T) {
		service, _, _ := newService(t)
		req := newSellerRequest()
		req.BranchID = strPtr("f2")

		_, err := service.CreateUser(context.Background(), manager, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Gerente não cadastra diretor", func(t *testing.T) {
		service, _, _ := newService(t)
		req := newSellerRequest()
		req.Role = domain.RoleDirector

		_, err := service.CreateUser(context.Background(), manager, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Vendedor não cadastra ninguém", func(t *testing.T) {
		service, _, _ := newService(t)

		_, err := service.CreateUser(context.Background(), seller, newSellerRequest())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Diretor precisa escolher filial", func(t *testing.T) {
		service, _, _ := newService(t)

		_, err := service.CreateUser(context.Background(), director, newSellerRequest())
		assert.ErrorIs(t, err, ErrBranchRequired)
	})

	t.Run("Diretor informa filial inexistente", func(t *testing.T) {
		service, _, branches := newService(t)
		req := newSellerRequest()
		req.BranchID = strPtr("f404")
		branches.EXPECT().GetByID(gomock.Any(), "f404").Return(nil, nil)

		_, err := service.CreateUser(context.Background(), director, req)
		assert.ErrorIs(t, err, ErrBranchNotFound)
	})

	t.Run("Email duplicado", func(t *testing.T) {
		service, users, branches := newService(t)
		req := newSellerRequest()
		req.BranchID = strPtr("f1")
		branches.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Branch{ID: "f1"}, nil)
		users.EXPECT().GetByEmail(gomock.Any(), "ana@loja.com").Return(&domain.User{ID: "v1"}, nil)

		_, err := service.CreateUser(context.Background(), director, req)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("Email inválido", func(t *testing.T) {
		service, _, _ := newService(t)
		req := newSellerRequest()
		req.Email = "ana"

		_, err := service.CreateUser(context.Background(), director, req)

		var validationErr *validation.Error
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "email", validationErr.Fields[0].Field)
	})
}

func TestListSellers(t *testing.T) {
	t.Run("Gerente lista a própria filial", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter domain.UserFilter) ([]*domain.User, error) {
			assert.Equal(t, "f1", *filter.BranchID)
			return []*domain.User{{ID: "v1", PasswordHash: "hash"}}, nil
		})

		sellers, err := service.ListSellers(context.Background(), manager, strPtr("f2"))

		require.NoError(t, err)
		require.Len(t, sellers, 1)
		assert.Empty(t, sellers[0].PasswordHash)
	})

	t.Run("Diretor lista todos", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter domain.UserFilter) ([]*domain.User, error) {
			assert.Nil(t, filter.BranchID)
			return nil, nil
		})

		_, err := service.ListSellers(context.Background(), director, nil)
		assert.NoError(t, err)
	})
}

func TestDeleteSeller(t *testing.T) {
	target := &domain.User{ID: "v1", Role: domain.RoleSeller, BranchID: strPtr("f1")}

	t.Run("Gerente exclui vendedor da filial", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(target, nil)
		users.EXPECT().DeleteSellerCascade(gomock.Any(), "v1").Return(nil)

		assert.NoError(t, service.DeleteSeller(context.Background(), manager, "v1"))
	})

	t.Run("Gerente de outra filial", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(target, nil)

		other := &domain.Claims{UserID: "g2", Role: domain.RoleManager, BranchID: strPtr("f2")}
		assert.ErrorIs(t, service.DeleteSeller(context.Background(), other, "v1"), ErrAccessDenied)
	})

	t.Run("Falha na exclusão em cascata", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().GetByID(gomock.Any(), "v1").Return(target, nil)
		users.EXPECT().DeleteSellerCascade(gomock.Any(), "v1").Return(errors.New("deadlock"))

		assert.ErrorIs(t, service.DeleteSeller(context.Background(), director, "v1"), ErrDatabaseOperation)
	})
}

func TestRemoveManager(t *testing.T) {
	t.Run("Diretor remove gerente", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().RemoveRole(gomock.Any(), "g1", domain.RoleManager).Return(true, nil)

		assert.NoError(t, service.RemoveManager(context.Background(), director, "g1"))
	})

	t.Run("Gerente inexistente", func(t *testing.T) {
		service, users, _ := newService(t)
		users.EXPECT().RemoveRole(gomock.Any(), "g9", domain.RoleManager).Return(false, nil)

		assert.ErrorIs(t, service.RemoveManager(context.Background(), director, "g9"), ErrUserNotFound)
	})

	t.Run("Somente diretor", func(t *testing.T) {
		service, _, _ := newService(t)

		assert.ErrorIs(t, service.RemoveManager(context.Background(), manager, "g1"), ErrAccessDenied)
	})
}
