// Package staffing cadastra e remove vendedores e gerentes
package staffing

import (
	"context"
	"errors"
	"strings"

	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/access"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/authenticating"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
)

type Staffer interface {
	CreateUser(ctx context.Context, actor *domain.Claims, req domain.CreateUserRequest) (*domain.User, error)
	ListSellers(ctx context.Context, actor *domain.Claims, branchID *string) ([]*domain.User, error)
	ListManagers(ctx context.Context, actor *domain.Claims) ([]*domain.User, error)
	DeleteSeller(ctx context.Context, actor *domain.Claims, sellerID string) error
	RemoveManager(ctx context.Context, actor *domain.Claims, managerID string) error
}

type Service struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	validator  *validation.Validator
}

func NewService(userRepo repository.UserRepository, branchRepo repository.BranchRepository, validator *validation.Validator) *Service {
	return &Service{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		validator:  validator,
	}
}

// CreateUser cadastra o usuário com a senha informada marcada para troca no
// primeiro acesso. Gerentes só cadastram vendedores e gerentes na própria
// filial. O diretor escolhe a filial de qualquer papel exceto diretor.
func (s *Service) CreateUser(ctx context.Context, actor *domain.Claims, req domain.CreateUserRequest) (*domain.User, error) {
	req.Email = authenticating.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Struct(req); err != nil {
		return nil, NewStaffError(err, apiErrors.ErrInvalidRequest, "", "")
	}

	branchID, err := s.resolveBranch(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.databaseError(ctx, err, "", "erro ao verificar email")
	}
	if existing != nil {
		return nil, NewStaffError(ErrEmailAlreadyExists, apiErrors.ErrUserAlreadyExists, existing.ID, req.Email)
	}

	hashed, err := authenticating.HashPassword(req.Password)
	if err != nil {
		return nil, NewStaffError(err, apiErrors.ErrInternalServer, "", "erro ao gerar hash da senha")
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       hashed,
		Role:               req.Role,
		BranchID:           branchID,
		PhotoURL:           req.PhotoURL,
		MustChangePassword: true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewStaffError(ErrEmailAlreadyExists, apiErrors.ErrUserAlreadyExists, "", req.Email)
		}
		return nil, s.databaseError(ctx, err, "", "erro ao criar usuário")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("Usuário criado")

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) resolveBranch(ctx context.Context, actor *domain.Claims, req domain.CreateUserRequest) (*string, error) {
	switch {
	case actor == nil || actor.IsSeller():
		return nil, NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "", "")

	case actor.IsManager():
		if req.Role == domain.RoleDirector || actor.BranchID == nil {
			return nil, NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "", "")
		}
		if req.BranchID != nil && *req.BranchID != *actor.BranchID {
			return nil, NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "", "gerentes cadastram apenas na própria filial")
		}
		return actor.BranchID, nil
	}

	if req.Role == domain.RoleDirector {
		return nil, nil
	}

	if req.BranchID == nil {
		return nil, NewStaffError(ErrBranchRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	branch, err := s.branchRepo.GetByID(ctx, *req.BranchID)
	if err != nil {
		return nil, s.databaseError(ctx, err, "", "erro ao buscar filial")
	}
	if branch == nil {
		return nil, NewStaffError(ErrBranchNotFound, apiErrors.ErrResourceNotFound, "", *req.BranchID)
	}

	return &branch.ID, nil
}

// ListSellers lista os vendedores visíveis ao ator
func (s *Service) ListSellers(ctx context.Context, actor *domain.Claims, branchID *string) ([]*domain.User, error) {
	switch {
	case actor == nil || actor.IsSeller():
		return nil, NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "", "")
	case actor.IsManager():
		if actor.BranchID == nil {
			return []*domain.User{}, nil
		}
		branchID = actor.BranchID
	}

	role := domain.RoleSeller
	return s.list(ctx, domain.UserFilter{Role: &role, BranchID: branchID})
}

func (s *Service) ListManagers(ctx context.Context, actor *domain.Claims) ([]*domain.User, error) {
	if actor == nil || !actor.IsDirector() {
		return nil, NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "", "")
	}

	role := domain.RoleManager
	return s.list(ctx, domain.UserFilter{Role: &role})
}

// DeleteSeller remove o vendedor junto com suas vendas e metas
func (s *Service) DeleteSeller(ctx context.Context, actor *domain.Claims, sellerID string) error {
	seller, err := access.LoadSeller(ctx, s.userRepo, sellerID)
	if err != nil {
		if errors.Is(err, access.ErrSellerNotFound) {
			return NewStaffError(ErrUserNotFound, apiErrors.ErrResourceNotFound, sellerID, "")
		}
		return s.databaseError(ctx, err, sellerID, "erro ao buscar vendedor")
	}

	if err := access.CanManage(actor, seller); err != nil {
		return NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, sellerID, "")
	}

	if err := s.userRepo.DeleteSellerCascade(ctx, sellerID); err != nil {
		return s.databaseError(ctx, err, sellerID, "erro ao excluir vendedor")
	}

	log.ForContext(ctx).WithField("seller_id", sellerID).Info("Vendedor excluído com vendas e metas")

	return nil
}

// RemoveManager retira o papel de gerente sem apagar o perfil
func (s *Service) RemoveManager(ctx context.Context, actor *domain.Claims, managerID string) error {
	if actor == nil || !actor.IsDirector() {
		return NewStaffError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, managerID, "")
	}

	removed, err := s.userRepo.RemoveRole(ctx, managerID, domain.RoleManager)
	if err != nil {
		return s.databaseError(ctx, err, managerID, "erro ao remover gerente")
	}

	if !removed {
		return NewStaffError(ErrUserNotFound, apiErrors.ErrResourceNotFound, managerID, "")
	}

	log.ForContext(ctx).WithField("manager_id", managerID).Info("Papel de gerente removido")

	return nil
}

func (s *Service) list(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, s.databaseError(ctx, err, "", "erro ao listar usuários")
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	return users, nil
}

func (s *Service) databaseError(ctx context.Context, err error, userID, details string) error {
	log.ForContext(ctx).WithError(err).Error(details)
	return NewStaffError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, details)
}
