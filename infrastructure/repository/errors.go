package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrDuplicated = errors.New("registro duplicado")
	ErrReferenced = errors.New("registro referenciado por outras tabelas")
)

// Códigos de erro do PostgreSQL tratados pelos repositórios
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translateError converte violações de constraint em erros sentinela
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w (%s): %v", ErrDuplicated, pqErr.Constraint, pqErr)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w (%s): %v", ErrReferenced, pqErr.Constraint, pqErr)
	}

	return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
}
