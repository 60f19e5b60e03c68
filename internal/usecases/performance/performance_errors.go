package performance

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied      = errors.New("sem permissão para consultar este desempenho")
	ErrSellerNotFound    = errors.New("vendedor não encontrado")
	ErrManagerNoBranch   = errors.New("gerente sem filial vinculada")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type PerformanceError struct {
	Err     error
	Code    string
	Details string
}

func (e *PerformanceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PerformanceError) Unwrap() error {
	return e.Err
}

func NewPerformanceError(baseErr error, code string, details string) *PerformanceError {
	return &PerformanceError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
