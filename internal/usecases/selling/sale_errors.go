package selling

import (
	"errors"
	"fmt"
)

var (
	// Erros de formulário
	ErrInvalidDate      = errors.New("data inválida")
	ErrGrossRequired    = errors.New("valor bruto é obrigatório")
	ErrGrossNotNumeric  = errors.New("valor bruto deve ser numérico")
	ErrReturnNotNumeric = errors.New("valor de devolução deve ser numérico")
	ErrNegativeAmount   = errors.New("valores não podem ser negativos")
	ErrAmountOutOfRange = errors.New("valor deve ter no máximo duas casas decimais e ser menor que 1 trilhão")
	ErrNotBusinessDay   = errors.New("domingo não é dia útil")

	// Erros de acesso
	ErrReadOnly          = errors.New("calendário aberto somente para leitura")
	ErrDayNotInteractive = errors.New("dia sem lançamento não pode ser aberto em modo leitura")
	ErrSellerNotFound    = errors.New("vendedor não encontrado")
	ErrAccessDenied      = errors.New("sem permissão para acessar este vendedor")

	// Erros de banco de dados
	ErrPersistence = errors.New("erro ao gravar ou carregar vendas")
)

// SaleError é um erro com o código da API e o vendedor envolvido
type SaleError struct {
	Err      error
	Code     string
	SellerID string
	Details  string
}

func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SaleError) Unwrap() error {
	return e.Err
}

// IsValidationError indica erros causados pelo conteúdo do formulário
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrGrossRequired) ||
		errors.Is(err, ErrGrossNotNumeric) ||
		errors.Is(err, ErrReturnNotNumeric) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrAmountOutOfRange) ||
		errors.Is(err, ErrNotBusinessDay)
}

func NewSaleError(baseErr error, code string, sellerID string, details string) *SaleError {
	return &SaleError{
		Err:      baseErr,
		Code:     code,
		SellerID: sellerID,
		Details:  details,
	}
}
