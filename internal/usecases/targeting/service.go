// Package targeting define e consulta as metas mensais dos vendedores
package targeting

import (
	"context"
	"errors"

	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/access"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
)

type Targeter interface {
	SetTarget(ctx context.Context, actor *domain.Claims, req domain.SetTargetRequest) (*domain.Target, error)
	GetTarget(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod) (*domain.Target, error)
}

// ChangeRecorder recebe cada meta criada ou alterada
type ChangeRecorder interface {
	RecordTargetChange(ctx context.Context, actorID string, previous, current *domain.Target) error
}

type Service struct {
	targetRepo repository.TargetRepository
	userRepo   repository.UserRepository
	validator  *validation.Validator
	recorder   ChangeRecorder
}

func NewService(targetRepo repository.TargetRepository, userRepo repository.UserRepository, validator *validation.Validator, recorder ChangeRecorder) *Service {
	return &Service{
		targetRepo: targetRepo,
		userRepo:   userRepo,
		validator:  validator,
		recorder:   recorder,
	}
}

// SetTarget cria ou substitui a meta do vendedor no mês. Meta zero é válida.
func (s *Service) SetTarget(ctx context.Context, actor *domain.Claims, req domain.SetTargetRequest) (*domain.Target, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, NewTargetError(err, apiErrors.ErrInvalidRequest, req.SellerID, "")
	}

	if req.TargetAmount.IsNegative() {
		return nil, NewTargetError(ErrNegativeTarget, apiErrors.ErrInvalidRequest, req.SellerID, req.TargetAmount.String())
	}

	if err := s.authorize(ctx, actor, req.SellerID, access.CanManage); err != nil {
		return nil, err
	}

	previous, err := s.targetRepo.GetBySellerAndPeriod(ctx, req.SellerID, req.Month, req.Year)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar meta atual")
		return nil, NewTargetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.SellerID, "erro ao buscar meta atual")
	}

	target := &domain.Target{
		SellerID:     req.SellerID,
		Month:        req.Month,
		Year:         req.Year,
		TargetAmount: req.TargetAmount.Round(2),
	}
	if previous != nil {
		target.ID = previous.ID
	}

	saved, err := s.targetRepo.Upsert(ctx, target)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gravar meta")
		return nil, NewTargetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.SellerID, "erro ao gravar meta")
	}

	if s.recorder != nil {
		if err := s.recorder.RecordTargetChange(ctx, actor.UserID, previous, saved); err != nil {
			log.ForContext(ctx).WithError(err).Warn("Falha ao auditar alteração de meta")
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"seller_id": saved.SellerID,
		"period":    saved.Period().String(),
		"amount":    saved.TargetAmount.StringFixed(2),
	}).Info("Meta definida")

	return saved, nil
}

func (s *Service) GetTarget(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod) (*domain.Target, error) {
	if err := s.authorize(ctx, actor, sellerID, access.CanView); err != nil {
		return nil, err
	}

	target, err := s.targetRepo.GetBySellerAndPeriod(ctx, sellerID, period.Month, period.Year)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar meta")
		return nil, NewTargetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sellerID, "erro ao buscar meta")
	}

	if target == nil {
		return nil, NewTargetError(ErrTargetNotFound, apiErrors.ErrResourceNotFound, sellerID, period.String())
	}

	return target, nil
}

func (s *Service) authorize(ctx context.Context, actor *domain.Claims, sellerID string, check func(*domain.Claims, *domain.User) error) error {
	seller, err := access.LoadSeller(ctx, s.userRepo, sellerID)
	if err != nil {
		if errors.Is(err, access.ErrSellerNotFound) {
			return NewTargetError(ErrSellerNotFound, apiErrors.ErrResourceNotFound, sellerID, "")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar vendedor")
		return NewTargetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sellerID, "erro ao buscar vendedor")
	}

	if err := check(actor, seller); err != nil {
		return NewTargetError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, sellerID, "")
	}

	return nil
}
