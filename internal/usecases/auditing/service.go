// Package auditing grava o histórico de alterações de vendas e metas
package auditing

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	salesTable   = "vendas"
	targetsTable = "metas"
)

var ErrInvalidRetention = errors.New("retenção deve ser de pelo menos um dia")

type Auditor interface {
	OnSaleSaved(ctx context.Context, event domain.SaleSavedEvent) error
	RecordTargetChange(ctx context.Context, actorID string, previous, current *domain.Target) error
	Prune(ctx context.Context, retentionDays int) (int64, error)
}

type Service struct {
	repo repository.AuditLogRepository
	now  func() time.Time
}

func NewService(repo repository.AuditLogRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// OnSaleSaved registra INSERT ou UPDATE na tabela de vendas
func (s *Service) OnSaleSaved(ctx context.Context, event domain.SaleSavedEvent) error {
	var previous any
	if event.Previous != nil {
		previous = event.Previous
	}

	return s.record(ctx, salesTable, event.Sale.ID, event.ActorID, previous, event.Sale)
}

func (s *Service) RecordTargetChange(ctx context.Context, actorID string, previous, current *domain.Target) error {
	if current == nil {
		return nil
	}

	var before any
	if previous != nil {
		before = previous
	}

	return s.record(ctx, targetsTable, current.ID, actorID, before, current)
}

// Prune remove registros mais antigos que retentionDays
func (s *Service) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		return 0, ErrInvalidRetention
	}

	cutoff := s.now().AddDate(0, 0, -retentionDays)

	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover auditoria anterior a %s: %w", cutoff.Format(time.RFC3339), err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"removed": removed,
		"cutoff":  cutoff.Format(time.DateOnly),
	}).Info("Registros de auditoria antigos removidos")

	return removed, nil
}

func (s *Service) record(ctx context.Context, table, recordID, actorID string, previous, current any) error {
	entry := &domain.AuditLog{
		Action:    domain.AuditActionInsert,
		Table:     table,
		RecordID:  recordID,
		CreatedAt: s.now(),
	}

	if actorID != "" {
		entry.UserID = &actorID
	}

	if previous != nil {
		entry.Action = domain.AuditActionUpdate

		data, err := json.Marshal(previous)
		if err != nil {
			return fmt.Errorf("erro ao serializar dados anteriores: %w", err)
		}
		entry.PreviousData = data
	}

	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("erro ao serializar dados novos: %w", err)
	}
	entry.NewData = data

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("erro ao gravar auditoria de %s/%s: %w", table, recordID, err)
	}

	return nil
}
