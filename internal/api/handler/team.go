package handler

import (
	"net/http"
	"time"

	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/performance"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/staffing"
)

// TeamPerformance retorna o ranking da equipe. Gerentes sempre veem a própria filial.
func TeamPerformance(service performance.Performer, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		period, ok := parsePeriod(w, r, location)
		if !ok {
			return
		}

		team, err := service.TeamPerformance(r.Context(), claims, optionalQuery(r, "branch_id"), period)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, team)
	}
}

func ListSellers(service staffing.Staffer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		sellers, err := service.ListSellers(r.Context(), claims, optionalQuery(r, "branch_id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if sellers == nil {
			sellers = []*domain.User{}
		}

		writeJSON(w, r, http.StatusOK, sellers)
	}
}

func CreateUser(service staffing.Staffer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var req domain.CreateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := service.CreateUser(r.Context(), claims, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	}
}

// DeleteSeller remove o vendedor junto com suas vendas e metas
func DeleteSeller(service staffing.Staffer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		if err := service.DeleteSeller(r.Context(), claims, pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListManagers(service staffing.Staffer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		managers, err := service.ListManagers(r.Context(), claims)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if managers == nil {
			managers = []*domain.User{}
		}

		writeJSON(w, r, http.StatusOK, managers)
	}
}

func RemoveManager(service staffing.Staffer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		if err := service.RemoveManager(r.Context(), claims, pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
