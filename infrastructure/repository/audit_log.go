package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/database/postgres"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

const auditLogsTable = "audit_logs"

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type auditLogRepository struct {
	conn postgres.Conn
}

func NewAuditLogRepository(conn postgres.Conn) AuditLogRepository {
	return &auditLogRepository{
		conn: conn,
	}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = utils.NewID()
	}

	query, args, err := squirrel.
		Insert(auditLogsTable).
		Columns("id", "acao", "tabela", "registro_id", "usuario_id", "dados_anteriores", "dados_novos").
		Values(
			entry.ID,
			string(entry.Action),
			entry.Table,
			entry.RecordID,
			entry.UserID,
			nullableJSON(entry.PreviousData),
			nullableJSON(entry.NewData),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar auditoria: %w", translateError(err))
	}

	return nil
}

// DeleteOlderThan remove entradas criadas antes de cutoff
func (r *auditLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(auditLogsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
