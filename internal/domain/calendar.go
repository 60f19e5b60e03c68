package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ViewMode string

const (
	ViewModeEdit     ViewMode = "edit"
	ViewModeReadOnly ViewMode = "read-only"
)

func (m ViewMode) ReadOnly() bool {
	return m != ViewModeEdit
}

// CalendarCell é uma posição da grade: vazia (preenchimento inicial) ou um dia útil
type CalendarCell struct {
	Empty bool
	Date  time.Time
}

// CalendarState é o retrato imutável de um mês carregado para um vendedor
type CalendarState struct {
	SellerID string
	Period   MonthPeriod
	Sales    []Sale
	Target   *Target
}

// SaleOn retorna o registro do dia, se existir
func (s CalendarState) SaleOn(date time.Time) (*Sale, bool) {
	for i := range s.Sales {
		if sameDay(s.Sales[i].Date, date) {
			return &s.Sales[i], true
		}
	}
	return nil, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type DayView struct {
	Blank        bool             `json:"blank,omitempty"`
	Date         string           `json:"date,omitempty"`
	Day          int              `json:"day,omitempty"`
	Recorded     bool             `json:"recorded"`
	GrossAmount  *decimal.Decimal `json:"gross_amount,omitempty"`
	ReturnAmount *decimal.Decimal `json:"return_amount,omitempty"`
	NetAmount    *decimal.Decimal `json:"net_amount,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Expected     *decimal.Decimal `json:"expected,omitempty"`
	Interactive  bool             `json:"interactive"`
}

// MonthView é a grade pronta para exibição. Month e Year ecoam o período
// solicitado para que o cliente descarte respostas de seleções antigas.
type MonthView struct {
	SellerID      string           `json:"seller_id"`
	Month         int              `json:"month"`
	Year          int              `json:"year"`
	Mode          ViewMode         `json:"mode"`
	LeadingBlanks int              `json:"leading_blanks"`
	Cells         []DayView        `json:"cells"`
	TotalNet      decimal.Decimal  `json:"total_net"`
	Target        *decimal.Decimal `json:"target,omitempty"`
	BusinessDays  int              `json:"business_days"`
	RecordedDays  int              `json:"recorded_days"`
	RemainingDays int              `json:"remaining_days"`
}

// SaveResult é o retorno de uma gravação: o mês recarregado e o resumo do vendedor
type SaveResult struct {
	Sale    Sale          `json:"sale"`
	View    MonthView     `json:"view"`
	Summary SellerSummary `json:"summary"`
}
