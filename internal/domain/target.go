package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Target é a meta mensal de um vendedor (tabela metas)
type Target struct {
	ID           string          `json:"id"`
	SellerID     string          `json:"seller_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

var ErrMalformedTarget = errors.New("registro de meta malformado")

func (t Target) Period() MonthPeriod {
	return MonthPeriod{Month: t.Month, Year: t.Year}
}

// Validate rejeita metas que não poderiam ter sido gravadas pela API
func (t Target) Validate() error {
	switch {
	case t.SellerID == "":
		return errors.Join(ErrMalformedTarget, errors.New("vendedor ausente"))
	case t.Month < 1 || t.Month > 12:
		return errors.Join(ErrMalformedTarget, errors.New("mês fora do intervalo"))
	case t.Year < 2000 || t.Year > 2100:
		return errors.Join(ErrMalformedTarget, errors.New("ano fora do intervalo"))
	case t.TargetAmount.IsNegative():
		return errors.Join(ErrMalformedTarget, errors.New("valor da meta negativo"))
	}

	return nil
}

type SetTargetRequest struct {
	SellerID     string          `json:"seller_id" validate:"required"`
	Month        int             `json:"month" validate:"required,min=1,max=12"`
	Year         int             `json:"year" validate:"required,min=2000,max=2100"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}
