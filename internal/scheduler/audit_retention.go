// Package scheduler contém os serviços executados periodicamente
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/thiberio-patricio/Controle-Vendas/internal/config"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
)

// Pruner remove registros de auditoria mais antigos que a retenção
type Pruner interface {
	Prune(ctx context.Context, retentionDays int) (int64, error)
}

type AuditRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

type AuditRetentionService struct {
	scheduler        *gocron.Scheduler
	pruner           Pruner
	config           AuditRetentionConfig
	running          bool
	mutex            sync.Mutex
	lastStartedAt    time.Time
	lastCompletedAt  time.Time
	lastRemovedCount int64
	lastError        string
}

func NewAuditRetentionService(pruner Pruner, cfg *config.Config) *AuditRetentionService {
	retentionConfig := AuditRetentionConfig{
		CronSchedule:  cfg.AuditRetention.CronSchedule,
		RetentionDays: cfg.AuditRetention.RetentionDays,
		Enabled:       cfg.AuditRetention.Enabled,
	}

	location := cfg.App.Location
	if location == nil {
		location = time.Local
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
	}).Info("Configuração da limpeza de auditoria carregada")

	return &AuditRetentionService{
		scheduler: gocron.NewScheduler(location),
		pruner:    pruner,
		config:    retentionConfig,
	}
}

func (s *AuditRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Limpeza de auditoria desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza de auditoria")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Run(ctx); err != nil {
			log.L.WithError(err).Error("Erro na limpeza de auditoria")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de auditoria: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando cron de limpeza de auditoria")
		s.scheduler.Stop()
	}()

	return nil
}

// Run executa uma limpeza; chamadas concorrentes são ignoradas
func (s *AuditRetentionService) Run(ctx context.Context) error {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		log.L.Warn("Limpeza de auditoria já está em execução")
		return nil
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mutex.Unlock()

	removed, err := s.pruner.Prune(ctx, s.config.RetentionDays)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.running = false
	s.lastCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.lastError = ""
	s.lastRemovedCount = removed

	return nil
}

// TriggerManualSync dispara uma limpeza em segundo plano
func (s *AuditRetentionService) TriggerManualSync() {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		log.L.Info("Limpeza de auditoria já em andamento, ignorando solicitação manual")
		return
	}
	s.mutex.Unlock()

	log.L.Info("Iniciando limpeza manual de auditoria")
	go func() {
		if err := s.Run(context.Background()); err != nil {
			log.L.WithError(err).Error("Erro na limpeza manual de auditoria")
		}
	}()
}

func (s *AuditRetentionService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"retention_days":    s.config.RetentionDays,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_removed":      s.lastRemovedCount,
		"last_error":        s.lastError,
	}
}
