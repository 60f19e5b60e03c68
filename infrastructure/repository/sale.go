package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/database/postgres"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

const salesTable = "vendas"

var saleColumns = []string{
	"id", "vendedor_id", "data", "valor", "devolucao", "observacoes", "editado_por", "created_at", "updated_at",
}

type SaleRepository interface {
	ListBySellerAndPeriod(ctx context.Context, sellerID string, from, to time.Time) ([]domain.Sale, error)
	GetBySellerAndDate(ctx context.Context, sellerID string, date time.Time) (*domain.Sale, error)
	Upsert(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	SumNetBySellers(ctx context.Context, sellerIDs []string, from, to time.Time) (map[string]decimal.Decimal, error)
	SumNetByBranch(ctx context.Context, from, to time.Time) ([]domain.BranchSales, error)
}

type saleRepository struct {
	conn postgres.Conn
}

func NewSaleRepository(conn postgres.Conn) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// ListBySellerAndPeriod retorna as vendas do intervalo [from, to] em ordem de data
func (r *saleRepository) ListBySellerAndPeriod(ctx context.Context, sellerID string, from, to time.Time) ([]domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"vendedor_id": sellerID}).
		Where(squirrel.GtOrEq{"data": utils.FormatDate(from)}).
		Where(squirrel.LtOrEq{"data": utils.FormatDate(to)}).
		OrderBy("data ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar vendas: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) GetBySellerAndDate(ctx context.Context, sellerID string, date time.Time) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"vendedor_id": sellerID, "data": utils.FormatDate(date)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sale, err := scanSale(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// Upsert grava a venda do dia numa única instrução. A constraint
// UNIQUE (vendedor_id, data) garante um registro por vendedor e dia.
func (r *saleRepository) Upsert(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if sale.ID == "" {
		sale.ID = utils.NewID()
	}

	query, args, err := squirrel.
		Insert(salesTable).
		Columns("id", "vendedor_id", "data", "valor", "devolucao", "observacoes", "editado_por").
		Values(
			sale.ID,
			sale.SellerID,
			utils.FormatDate(sale.Date),
			sale.GrossAmount,
			sale.ReturnAmount,
			sale.Notes,
			sale.EditedBy,
		).
		Suffix(`
			ON CONFLICT (vendedor_id, data) DO UPDATE SET
				valor = EXCLUDED.valor,
				devolucao = EXCLUDED.devolucao,
				observacoes = EXCLUDED.observacoes,
				editado_por = EXCLUDED.editado_por,
				updated_at = NOW()
		`).
		Suffix("RETURNING id, vendedor_id, data, valor, devolucao, observacoes, editado_por, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved, err := scanSale(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return saved, nil
}

// SumNetBySellers soma o líquido do intervalo agrupado por vendedor
func (r *saleRepository) SumNetBySellers(ctx context.Context, sellerIDs []string, from, to time.Time) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return totals, nil
	}

	query, args, err := squirrel.
		Select("vendedor_id", "COALESCE(SUM(valor - devolucao), 0)").
		From(salesTable).
		Where(squirrel.Eq{"vendedor_id": sellerIDs}).
		Where(squirrel.GtOrEq{"data": utils.FormatDate(from)}).
		Where(squirrel.LtOrEq{"data": utils.FormatDate(to)}).
		GroupBy("vendedor_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar vendas por vendedor: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sellerID string
		var total decimal.Decimal
		if err := rows.Scan(&sellerID, &total); err != nil {
			return nil, fmt.Errorf("erro ao ler soma de vendas: %w", err)
		}
		totals[sellerID] = total
	}

	return totals, rows.Err()
}

// SumNetByBranch soma o líquido do intervalo por filial do vendedor.
// Vendedores sem filial aparecem com BranchID nulo.
func (r *saleRepository) SumNetByBranch(ctx context.Context, from, to time.Time) ([]domain.BranchSales, error) {
	query, args, err := squirrel.
		Select("p.filial_id", "f.nome", "COALESCE(SUM(v.valor - v.devolucao), 0)").
		From(salesTable + " v").
		Join(profilesTable + " p ON p.id = v.vendedor_id").
		LeftJoin(branchesTable + " f ON f.id = p.filial_id").
		Where(squirrel.GtOrEq{"v.data": utils.FormatDate(from)}).
		Where(squirrel.LtOrEq{"v.data": utils.FormatDate(to)}).
		GroupBy("p.filial_id", "f.nome").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar vendas por filial: %w", err)
	}
	defer rows.Close()

	result := make([]domain.BranchSales, 0)
	for rows.Next() {
		var branchID, branchName *string
		var total decimal.Decimal
		if err := rows.Scan(&branchID, &branchName, &total); err != nil {
			return nil, fmt.Errorf("erro ao ler soma por filial: %w", err)
		}

		item := domain.BranchSales{BranchID: branchID, Total: total}
		if branchName != nil {
			item.BranchName = *branchName
		}
		result = append(result, item)
	}

	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSale lê uma linha e valida o registro antes de devolvê-lo ao domínio
func scanSale(row rowScanner) (*domain.Sale, error) {
	var sale domain.Sale
	err := row.Scan(
		&sale.ID,
		&sale.SellerID,
		&sale.Date,
		&sale.GrossAmount,
		&sale.ReturnAmount,
		&sale.Notes,
		&sale.EditedBy,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("erro ao ler venda: %w", err)
	}

	sale.Date = utils.TruncateDate(sale.Date)

	if err := sale.Validate(); err != nil {
		return nil, fmt.Errorf("venda %s inválida: %w", sale.ID, err)
	}

	return &sale, nil
}
