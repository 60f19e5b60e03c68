package selling

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/calendar"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

// maxAmount é o primeiro valor que não cabe em NUMERIC(14,2)
var maxAmount = decimal.New(1, 12)

// SaleInput é o formulário do dia já convertido e validado
type SaleInput struct {
	Date         time.Time
	GrossAmount  decimal.Decimal
	ReturnAmount decimal.Decimal
	Notes        *string
}

// ParseDayForm valida o formulário sem tocar no banco. Devolução vazia vale
// zero e observação em branco vira nula.
func ParseDayForm(sellerID string, form domain.DayForm) (*SaleInput, error) {
	date, err := utils.ParseDate(form.Date)
	if err != nil || date.IsZero() {
		return nil, NewSaleError(ErrInvalidDate, apiErrors.ErrInvalidFormat, sellerID, "use o formato yyyy-mm-dd")
	}

	grossText := strings.TrimSpace(form.GrossAmount)
	if grossText == "" {
		return nil, NewSaleError(ErrGrossRequired, apiErrors.ErrMissingRequiredData, sellerID, "")
	}

	gross, err := utils.ParseAmount(grossText)
	if err != nil {
		return nil, NewSaleError(ErrGrossNotNumeric, apiErrors.ErrInvalidFormat, sellerID, grossText)
	}

	ret := decimal.Zero
	if returnText := strings.TrimSpace(form.ReturnAmount); returnText != "" {
		ret, err = utils.ParseAmount(returnText)
		if err != nil {
			return nil, NewSaleError(ErrReturnNotNumeric, apiErrors.ErrInvalidFormat, sellerID, returnText)
		}
	}

	if gross.IsNegative() || ret.IsNegative() {
		return nil, NewSaleError(ErrNegativeAmount, apiErrors.ErrInvalidRequest, sellerID, "")
	}

	if !fitsColumn(gross) || !fitsColumn(ret) {
		return nil, NewSaleError(ErrAmountOutOfRange, apiErrors.ErrInvalidFormat, sellerID, "")
	}

	if !calendar.IsBusinessDay(*date) {
		return nil, NewSaleError(ErrNotBusinessDay, apiErrors.ErrNotBusinessDay, sellerID, utils.FormatDate(*date))
	}

	input := &SaleInput{
		Date:         utils.TruncateDate(*date),
		GrossAmount:  gross,
		ReturnAmount: ret,
	}

	if notes := strings.TrimSpace(form.Notes); notes != "" {
		input.Notes = &notes
	}

	return input, nil
}

func fitsColumn(amount decimal.Decimal) bool {
	if amount.GreaterThanOrEqual(maxAmount) {
		return false
	}

	return amount.Exponent() >= -2 || amount.Equal(amount.Round(2))
}

// FormFor preenche o formulário com o registro existente ou em branco
func FormFor(date time.Time, sale *domain.Sale) domain.DayForm {
	form := domain.DayForm{Date: utils.FormatDate(date)}
	if sale == nil {
		return form
	}

	form.Recorded = true
	form.GrossAmount = sale.GrossAmount.StringFixed(2)
	form.ReturnAmount = sale.ReturnAmount.StringFixed(2)
	if sale.Notes != nil {
		form.Notes = *sale.Notes
	}

	return form
}
