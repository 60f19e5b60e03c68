// Package calendar monta a grade de dias úteis do mês e calcula a venda
// esperada de cada dia ainda não lançado. Todas as funções são puras e
// operam sobre um domain.CalendarState carregado previamente.
package calendar

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

// IsBusinessDay considera útil qualquer dia exceto domingo
func IsBusinessDay(date time.Time) bool {
	return date.Weekday() != time.Sunday
}

// LeadingBlanks converte o dia da semana do dia 1 (domingo = 0) para a
// semana iniciando na segunda (segunda = 0 ... domingo = 6)
func LeadingBlanks(period domain.MonthPeriod) int {
	weekday := int(period.FirstDay().Weekday())
	return (weekday + 6) % 7
}

// BusinessDays retorna os dias úteis do mês em ordem crescente
func BusinessDays(period domain.MonthPeriod) []time.Time {
	total := period.DaysInMonth()
	days := make([]time.Time, 0, total)

	for day := 1; day <= total; day++ {
		date := time.Date(period.Year, time.Month(period.Month), day, 0, 0, 0, 0, time.UTC)
		if IsBusinessDay(date) {
			days = append(days, date)
		}
	}

	return days
}

// MonthGrid retorna as células vazias iniciais seguidas dos dias úteis.
// Não há preenchimento ao final da grade.
func MonthGrid(period domain.MonthPeriod) []domain.CalendarCell {
	blanks := LeadingBlanks(period)
	days := BusinessDays(period)

	cells := make([]domain.CalendarCell, 0, blanks+len(days))
	for i := 0; i < blanks; i++ {
		cells = append(cells, domain.CalendarCell{Empty: true})
	}

	for _, date := range days {
		cells = append(cells, domain.CalendarCell{Date: date})
	}

	return cells
}

// RecordedNetTotal soma bruto - devolução de todas as vendas do mês
func RecordedNetTotal(sales []domain.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Net())
	}
	return total
}

// RemainingBusinessDays conta os dias úteis do mês sem venda lançada
func RemainingBusinessDays(state domain.CalendarState) int {
	remaining := 0
	for _, date := range BusinessDays(state.Period) {
		if _, recorded := state.SaleOn(date); !recorded {
			remaining++
		}
	}
	return remaining
}

// ExpectedSale divide o que falta para a meta igualmente entre os dias úteis
// ainda sem lançamento. Retorna false quando não há meta, quando o dia já tem
// venda ou quando não restam dias úteis. O valor pode ser negativo (meta
// superada) ou fracionário.
func ExpectedSale(state domain.CalendarState, date time.Time) (decimal.Decimal, bool) {
	if state.Target == nil {
		return decimal.Zero, false
	}

	if !state.Period.Contains(date) || !IsBusinessDay(date) {
		return decimal.Zero, false
	}

	if _, recorded := state.SaleOn(date); recorded {
		return decimal.Zero, false
	}

	remaining := RemainingBusinessDays(state)
	if remaining == 0 {
		return decimal.Zero, false
	}

	missing := state.Target.TargetAmount.Sub(RecordedNetTotal(state.Sales))
	return missing.Div(decimal.NewFromInt(int64(remaining))), true
}

// BuildMonthView monta a grade para exibição. Em modo somente leitura apenas
// os dias com venda lançada são interativos.
func BuildMonthView(state domain.CalendarState, mode domain.ViewMode) domain.MonthView {
	if mode == "" {
		mode = domain.ViewModeReadOnly
	}

	view := domain.MonthView{
		SellerID:      state.SellerID,
		Month:         state.Period.Month,
		Year:          state.Period.Year,
		Mode:          mode,
		LeadingBlanks: LeadingBlanks(state.Period),
		TotalNet:      utils.RoundMoney(RecordedNetTotal(state.Sales)),
	}

	if state.Target != nil {
		target := utils.RoundMoney(state.Target.TargetAmount)
		view.Target = &target
	}

	for _, cell := range MonthGrid(state.Period) {
		if cell.Empty {
			view.Cells = append(view.Cells, domain.DayView{Blank: true})
			continue
		}

		view.BusinessDays++
		day := domain.DayView{
			Date: utils.FormatDate(cell.Date),
			Day:  cell.Date.Day(),
		}

		if sale, ok := state.SaleOn(cell.Date); ok {
			gross := utils.RoundMoney(sale.GrossAmount)
			ret := utils.RoundMoney(sale.ReturnAmount)
			net := utils.RoundMoney(sale.Net())

			day.Recorded = true
			day.GrossAmount = &gross
			day.ReturnAmount = &ret
			day.NetAmount = &net
			day.Notes = sale.Notes
			day.Interactive = true
			view.RecordedDays++
		} else {
			if expected, ok := ExpectedSale(state, cell.Date); ok {
				rounded := utils.RoundMoney(expected)
				day.Expected = &rounded
			}
			day.Interactive = !mode.ReadOnly()
		}

		view.Cells = append(view.Cells, day)
	}

	view.RemainingDays = view.BusinessDays - view.RecordedDays

	return view
}

// Summarize calcula o resumo exibido no painel do vendedor
func Summarize(state domain.CalendarState) domain.SellerSummary {
	total := RecordedNetTotal(state.Sales)

	summary := domain.SellerSummary{
		SellerID:  state.SellerID,
		Month:     state.Period.Month,
		Year:      state.Period.Year,
		TotalSold: utils.RoundMoney(total),
		Target:    decimal.Zero,
		Progress:  decimal.Zero,
		Remaining: decimal.Zero,
	}

	if state.Target == nil {
		return summary
	}

	summary.HasTarget = true
	summary.Target = utils.RoundMoney(state.Target.TargetAmount)
	summary.Progress = utils.Percentage(total, state.Target.TargetAmount)

	if missing := state.Target.TargetAmount.Sub(total); missing.IsPositive() {
		summary.Remaining = utils.RoundMoney(missing)
	}

	return summary
}
