package handler

import (
	"net/http"
	"time"

	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/performance"
)

// GetOverview retorna os totais da rede por filial
func GetOverview(service performance.Performer, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		period, ok := parsePeriod(w, r, location)
		if !ok {
			return
		}

		overview, err := service.Overview(r.Context(), claims, period)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	}
}
