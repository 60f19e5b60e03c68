package branching

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest    = errors.New("dados da filial inválidos")
	ErrBranchNotFound    = errors.New("filial não encontrada")
	ErrBranchInUse       = errors.New("filial possui usuários vinculados")
	ErrBranchNameTaken   = errors.New("já existe uma filial com este nome")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type BranchError struct {
	Err      error
	Code     string
	BranchID string
	Details  string
}

func (e *BranchError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BranchError) Unwrap() error {
	return e.Err
}

func NewBranchError(baseErr error, code string, branchID string, details string) *BranchError {
	return &BranchError{
		Err:      baseErr,
		Code:     code,
		BranchID: branchID,
		Details:  details,
	}
}
