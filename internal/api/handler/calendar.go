package handler

import (
	"net/http"
	"time"

	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/performance"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/selling"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

// GetCalendar retorna a grade do mês com as vendas lançadas e os valores esperados
func GetCalendar(service selling.Seller, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		period, ok := parsePeriod(w, r, location)
		if !ok {
			return
		}

		mode, ok := parseMode(w, r)
		if !ok {
			return
		}

		view, err := service.LoadMonth(r.Context(), claims, pathParam(r, "id"), period, mode)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, view)
	}
}

// GetDay abre o formulário de um dia útil
func GetDay(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		date, err := utils.ParseDate(pathParam(r, "date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Formato esperado: AAAA-MM-DD", nil)
			return
		}

		mode, ok := parseMode(w, r)
		if !ok {
			return
		}

		form, err := service.SelectDay(r.Context(), claims, pathParam(r, "id"), *date, mode)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, form)
	}
}

// SaveDay grava o dia e devolve o mês recalculado. A data do caminho prevalece
// sobre a do corpo. Os valores podem vir como texto ou como número JSON.
func SaveDay(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		mode, ok := parseMode(w, r)
		if !ok {
			return
		}

		var form domain.DayForm
		if !decodeJSON(w, r, &form) {
			return
		}
		form.Date = pathParam(r, "date")

		result, err := service.Save(r.Context(), claims, pathParam(r, "id"), form, mode)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetSellerSummary(service performance.Performer, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		period, ok := parsePeriod(w, r, location)
		if !ok {
			return
		}

		summary, err := service.SellerSummary(r.Context(), claims, pathParam(r, "id"), period)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}
