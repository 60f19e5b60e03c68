package targeting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest    = errors.New("requisição de meta inválida")
	ErrNegativeTarget    = errors.New("meta não pode ser negativa")
	ErrTargetNotFound    = errors.New("vendedor sem meta no período")
	ErrSellerNotFound    = errors.New("vendedor não encontrado")
	ErrAccessDenied      = errors.New("sem permissão para gerenciar metas deste vendedor")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type TargetError struct {
	Err      error
	Code     string
	SellerID string
	Details  string
}

func (e *TargetError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

func NewTargetError(baseErr error, code string, sellerID string, details string) *TargetError {
	return &TargetError{
		Err:      baseErr,
		Code:     code,
		SellerID: sellerID,
		Details:  details,
	}
}
