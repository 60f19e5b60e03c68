package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/database/postgres"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

const targetsTable = "metas"

var targetColumns = []string{"id", "vendedor_id", "mes", "ano", "valor_meta", "created_at", "updated_at"}

type TargetRepository interface {
	GetBySellerAndPeriod(ctx context.Context, sellerID string, month, year int) (*domain.Target, error)
	ListByPeriod(ctx context.Context, sellerIDs []string, month, year int) ([]domain.Target, error)
	Upsert(ctx context.Context, target *domain.Target) (*domain.Target, error)
}

type targetRepository struct {
	conn postgres.Conn
}

func NewTargetRepository(conn postgres.Conn) TargetRepository {
	return &targetRepository{
		conn: conn,
	}
}

// GetBySellerAndPeriod retorna nil quando o vendedor não tem meta no mês
func (r *targetRepository) GetBySellerAndPeriod(ctx context.Context, sellerID string, month, year int) (*domain.Target, error) {
	query, args, err := squirrel.
		Select(targetColumns...).
		From(targetsTable).
		Where(squirrel.Eq{"vendedor_id": sellerID, "mes": month, "ano": year}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	target, err := scanTarget(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return target, nil
}

func (r *targetRepository) ListByPeriod(ctx context.Context, sellerIDs []string, month, year int) ([]domain.Target, error) {
	targets := make([]domain.Target, 0)
	if len(sellerIDs) == 0 {
		return targets, nil
	}

	query, args, err := squirrel.
		Select(targetColumns...).
		From(targetsTable).
		Where(squirrel.Eq{"vendedor_id": sellerIDs, "mes": month, "ano": year}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar metas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, *target)
	}

	return targets, rows.Err()
}

// Upsert cria ou sobrescreve a meta de (vendedor, mês, ano)
func (r *targetRepository) Upsert(ctx context.Context, target *domain.Target) (*domain.Target, error) {
	if target.ID == "" {
		target.ID = utils.NewID()
	}

	query, args, err := squirrel.
		Insert(targetsTable).
		Columns("id", "vendedor_id", "mes", "ano", "valor_meta").
		Values(target.ID, target.SellerID, target.Month, target.Year, target.TargetAmount).
		Suffix(`
			ON CONFLICT (vendedor_id, mes, ano) DO UPDATE SET
				valor_meta = EXCLUDED.valor_meta,
				updated_at = NOW()
		`).
		Suffix("RETURNING id, vendedor_id, mes, ano, valor_meta, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved, err := scanTarget(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return saved, nil
}

func scanTarget(row rowScanner) (*domain.Target, error) {
	var target domain.Target
	err := row.Scan(
		&target.ID,
		&target.SellerID,
		&target.Month,
		&target.Year,
		&target.TargetAmount,
		&target.CreatedAt,
		&target.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("erro ao ler meta: %w", err)
	}

	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("meta %s inválida: %w", target.ID, err)
	}

	return &target, nil
}
