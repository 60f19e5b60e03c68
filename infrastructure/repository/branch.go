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

const branchesTable = "filiais"

var branchColumns = []string{"id", "nome", "endereco", "created_at", "updated_at"}

type BranchRepository interface {
	List(ctx context.Context) ([]domain.Branch, error)
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error)
	Update(ctx context.Context, branch *domain.Branch) (*domain.Branch, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type branchRepository struct {
	conn postgres.Conn
}

func NewBranchRepository(conn postgres.Conn) BranchRepository {
	return &branchRepository{
		conn: conn,
	}
}

func (r *branchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	query, args, err := squirrel.
		Select(branchColumns...).
		From(branchesTable).
		OrderBy("nome ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar filiais: %w", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *branch)
	}

	return branches, rows.Err()
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	query, args, err := squirrel.
		Select(branchColumns...).
		From(branchesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	branch, err := scanBranch(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return branch, err
}

func (r *branchRepository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	if branch.ID == "" {
		branch.ID = utils.NewID()
	}

	query, args, err := squirrel.
		Insert(branchesTable).
		Columns("id", "nome", "endereco").
		Values(branch.ID, branch.Name, branch.Address).
		Suffix("RETURNING id, nome, endereco, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	created, err := scanBranch(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return created, nil
}

// Update retorna nil quando a filial não existe
func (r *branchRepository) Update(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	query, args, err := squirrel.
		Update(branchesTable).
		Set("nome", branch.Name).
		Set("endereco", branch.Address).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": branch.ID}).
		Suffix("RETURNING id, nome, endereco, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	updated, err := scanBranch(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}

	return updated, nil
}

// Delete retorna ErrReferenced quando há perfis vinculados à filial
func (r *branchRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := squirrel.
		Delete(branchesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, translateError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func scanBranch(row rowScanner) (*domain.Branch, error) {
	var branch domain.Branch
	err := row.Scan(&branch.ID, &branch.Name, &branch.Address, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("erro ao ler filial: %w", err)
	}

	return &branch, nil
}
