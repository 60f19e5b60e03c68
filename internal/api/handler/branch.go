package handler

import (
	"net/http"

	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/branching"
)

func ListBranches(service branching.Brancher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := service.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if branches == nil {
			branches = []domain.Branch{}
		}

		writeJSON(w, r, http.StatusOK, branches)
	}
}

func GetBranch(service branching.Brancher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch, err := service.Get(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, branch)
	}
}

func CreateBranch(service branching.Brancher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.BranchRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		branch, err := service.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, branch)
	}
}

func UpdateBranch(service branching.Brancher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.BranchRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		branch, err := service.Update(r.Context(), pathParam(r, "id"), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, branch)
	}
}

// DeleteBranch falha com conflito enquanto houver usuários vinculados à filial
func DeleteBranch(service branching.Brancher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Delete(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
