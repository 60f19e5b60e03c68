package handler

import (
	"net/http"
	"time"

	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/targeting"
)

// SetTarget cria ou substitui a meta mensal do vendedor do caminho
func SetTarget(service targeting.Targeter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var req domain.SetTargetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.SellerID = pathParam(r, "id")

		target, err := service.SetTarget(r.Context(), claims, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, target)
	}
}

func GetTarget(service targeting.Targeter, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		period, ok := parsePeriod(w, r, location)
		if !ok {
			return
		}

		target, err := service.GetTarget(r.Context(), claims, pathParam(r, "id"), period)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, target)
	}
}
