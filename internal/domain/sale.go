package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMalformedSale = errors.New("registro de venda malformado")

// Sale é o registro diário de vendas de um vendedor (tabela vendas).
// Existe no máximo um registro por (vendedor, data).
type Sale struct {
	ID           string          `json:"id"`
	SellerID     string          `json:"seller_id"`
	Date         time.Time       `json:"date"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	ReturnAmount decimal.Decimal `json:"return_amount"`
	Notes        *string         `json:"notes,omitempty"`
	EditedBy     *string         `json:"edited_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Net retorna o valor líquido (bruto - devolução)
func (s Sale) Net() decimal.Decimal {
	return s.GrossAmount.Sub(s.ReturnAmount)
}

// Validate rejeita linhas que não respeitam o contrato do registro
func (s Sale) Validate() error {
	switch {
	case s.SellerID == "":
		return errors.Join(ErrMalformedSale, errors.New("vendedor ausente"))
	case s.Date.IsZero():
		return errors.Join(ErrMalformedSale, errors.New("data ausente"))
	case s.GrossAmount.IsNegative():
		return errors.Join(ErrMalformedSale, errors.New("valor bruto negativo"))
	case s.ReturnAmount.IsNegative():
		return errors.Join(ErrMalformedSale, errors.New("devolução negativa"))
	}

	return nil
}

// DayForm é o formulário de edição de um dia, com os valores como digitados
type DayForm struct {
	Date         string `json:"date"`
	GrossAmount  string `json:"gross_amount"`
	ReturnAmount string `json:"return_amount"`
	Notes        string `json:"notes"`
	Recorded     bool   `json:"recorded"`
}

// SaleSavedEvent é emitido uma única vez após cada gravação bem-sucedida
type SaleSavedEvent struct {
	SellerID string
	ActorID  string
	Date     time.Time
	Sale     Sale
	Previous *Sale
	State    CalendarState
}
