package staffing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("dados do usuário inválidos")
	ErrEmailAlreadyExists = errors.New("email já cadastrado")
	ErrBranchRequired     = errors.New("filial é obrigatória para vendedores e gerentes")
	ErrBranchNotFound     = errors.New("filial não encontrada")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrAccessDenied       = errors.New("sem permissão para gerenciar este usuário")
	ErrDatabaseOperation  = errors.New("erro ao realizar operação no banco de dados")
)

type StaffError struct {
	Err     error
	Code    string
	UserID  string
	Details string
}

func (e *StaffError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *StaffError) Unwrap() error {
	return e.Err
}

func NewStaffError(baseErr error, code string, userID string, details string) *StaffError {
	return &StaffError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
