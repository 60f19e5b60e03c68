// Package branching mantém o cadastro de filiais
package branching

import (
	"context"
	"errors"
	"strings"

	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
)

type Brancher interface {
	List(ctx context.Context) ([]domain.Branch, error)
	Get(ctx context.Context, id string) (*domain.Branch, error)
	Create(ctx context.Context, req domain.BranchRequest) (*domain.Branch, error)
	Update(ctx context.Context, id string, req domain.BranchRequest) (*domain.Branch, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	branchRepo repository.BranchRepository
	validator  *validation.Validator
}

func NewService(branchRepo repository.BranchRepository, validator *validation.Validator) *Service {
	return &Service{
		branchRepo: branchRepo,
		validator:  validator,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar filiais")
		return nil, NewBranchError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", "erro ao listar filiais")
	}

	return branches, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar filial")
		return nil, NewBranchError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "erro ao buscar filial")
	}

	if branch == nil {
		return nil, NewBranchError(ErrBranchNotFound, apiErrors.ErrResourceNotFound, id, "")
	}

	return branch, nil
}

func (s *Service) Create(ctx context.Context, req domain.BranchRequest) (*domain.Branch, error) {
	req = normalize(req)
	if err := s.validator.Struct(req); err != nil {
		return nil, NewBranchError(err, apiErrors.ErrInvalidRequest, "", "")
	}

	created, err := s.branchRepo.Create(ctx, &domain.Branch{Name: req.Name, Address: req.Address})
	if err != nil {
		return nil, s.writeError(ctx, err, "")
	}

	log.ForContext(ctx).WithField("branch_id", created.ID).Info("Filial criada")

	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.BranchRequest) (*domain.Branch, error) {
	req = normalize(req)
	if err := s.validator.Struct(req); err != nil {
		return nil, NewBranchError(err, apiErrors.ErrInvalidRequest, id, "")
	}

	updated, err := s.branchRepo.Update(ctx, &domain.Branch{ID: id, Name: req.Name, Address: req.Address})
	if err != nil {
		return nil, s.writeError(ctx, err, id)
	}

	if updated == nil {
		return nil, NewBranchError(ErrBranchNotFound, apiErrors.ErrResourceNotFound, id, "")
	}

	return updated, nil
}

// Delete recusa filiais que ainda têm usuários vinculados
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.branchRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return NewBranchError(ErrBranchInUse, apiErrors.ErrResourceInUse, id, "")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao excluir filial")
		return NewBranchError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "erro ao excluir filial")
	}

	if !deleted {
		return NewBranchError(ErrBranchNotFound, apiErrors.ErrResourceNotFound, id, "")
	}

	log.ForContext(ctx).WithField("branch_id", id).Info("Filial excluída")

	return nil
}

func (s *Service) writeError(ctx context.Context, err error, id string) error {
	if errors.Is(err, repository.ErrDuplicated) {
		return NewBranchError(ErrBranchNameTaken, apiErrors.ErrResourceInUse, id, "")
	}

	log.ForContext(ctx).WithError(err).Error("Erro ao gravar filial")
	return NewBranchError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "erro ao gravar filial")
}

func normalize(req domain.BranchRequest) domain.BranchRequest {
	req.Name = strings.TrimSpace(req.Name)
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			req.Address = nil
		} else {
			req.Address = &address
		}
	}
	return req
}
