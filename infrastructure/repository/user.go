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

const (
	profilesTable  = "profiles"
	userRolesTable = "user_roles"
)

var userColumns = []string{
	"p.id", "p.nome", "p.email", "p.password_hash", "r.role", "p.filial_id", "f.nome",
	"p.foto_url", "p.must_change_password", "p.created_at", "p.updated_at",
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string, mustChange bool) error
	DeleteSellerCascade(ctx context.Context, sellerID string) error
	RemoveRole(ctx context.Context, userID string, role domain.Role) (bool, error)
	CountByRole(ctx context.Context) (map[domain.Role]int, error)
}

type userRepository struct {
	conn postgres.Conn
}

func NewUserRepository(conn postgres.Conn) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func selectUsers() squirrel.SelectBuilder {
	return squirrel.
		Select(userColumns...).
		From(profilesTable + " p").
		LeftJoin(userRolesTable + " r ON r.user_id = p.id").
		LeftJoin(branchesTable + " f ON f.id = p.filial_id").
		PlaceholderFormat(squirrel.Dollar)
}

// Create insere o perfil e o papel na mesma transação
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = utils.NewID()
	}

	profileSQL, profileArgs, err := squirrel.
		Insert(profilesTable).
		Columns("id", "nome", "email", "password_hash", "filial_id", "foto_url", "must_change_password").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.BranchID, user.PhotoURL, user.MustChangePassword).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	roleSQL, roleArgs, err := squirrel.
		Insert(userRolesTable).
		Columns("id", "user_id", "role").
		Values(utils.NewID(), user.ID, string(user.Role)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, profileSQL, profileArgs...).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return translateError(err)
		}

		if _, err := tx.ExecContext(ctx, roleSQL, roleArgs...); err != nil {
			return translateError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"p.id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"p.email": email})
}

func (r *userRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := selectUsers().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// List aplica os filtros de papel e filial, ordenando por nome
func (r *userRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	builder := selectUsers().OrderBy("p.nome ASC")

	if filter.Role != nil {
		builder = builder.Where(squirrel.Eq{"r.role": string(*filter.Role)})
	}

	if filter.BranchID != nil {
		builder = builder.Where(squirrel.Eq{"p.filial_id": *filter.BranchID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar usuários: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, mustChange bool) error {
	query, args, err := squirrel.
		Update(profilesTable).
		Set("password_hash", passwordHash).
		Set("must_change_password", mustChange).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	return nil
}

// DeleteSellerCascade remove vendas, metas, papel e perfil do vendedor.
// Nada é removido se qualquer etapa falhar.
func (r *userRepository) DeleteSellerCascade(ctx context.Context, sellerID string) error {
	steps := []squirrel.DeleteBuilder{
		squirrel.Delete(salesTable).Where(squirrel.Eq{"vendedor_id": sellerID}),
		squirrel.Delete(targetsTable).Where(squirrel.Eq{"vendedor_id": sellerID}),
		squirrel.Delete(userRolesTable).Where(squirrel.Eq{"user_id": sellerID}),
		squirrel.Delete(profilesTable).Where(squirrel.Eq{"id": sellerID}),
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, step := range steps {
			query, args, err := step.PlaceholderFormat(squirrel.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao excluir vendedor %s: %w", sellerID, translateError(err))
			}
		}
		return nil
	})
}

func (r *userRepository) RemoveRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	query, args, err := squirrel.
		Delete(userRolesTable).
		Where(squirrel.Eq{"user_id": userID, "role": string(role)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover papel: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *userRepository) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	query, args, err := squirrel.
		Select("role", "COUNT(*)").
		From(userRolesTable).
		GroupBy("role").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar usuários por papel: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Role]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("erro ao ler contagem: %w", err)
		}
		counts[domain.Role(role)] = count
	}

	return counts, rows.Err()
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role *string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.BranchID,
		&user.BranchName,
		&user.PhotoURL,
		&user.MustChangePassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("erro ao ler usuário: %w", err)
	}

	if role != nil {
		user.Role = domain.Role(*role)
	}

	return &user, nil
}
