package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/authenticating"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/branching"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/performance"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/selling"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/staffing"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/targeting"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/middleware"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

func claimsFrom(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
	}
	return claims, ok
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// parsePeriod lê month e year da query, usando o mês corrente quando ausentes
func parsePeriod(w http.ResponseWriter, r *http.Request, location *time.Location) (domain.MonthPeriod, bool) {
	current := domain.PeriodOf(utils.Today(location))
	query := r.URL.Query()

	month, monthErr := utils.ParseIntOrDefault(query.Get("month"), current.Month)
	year, yearErr := utils.ParseIntOrDefault(query.Get("year"), current.Year)
	if monthErr != nil || yearErr != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Mês e ano devem ser numéricos", nil)
		return domain.MonthPeriod{}, false
	}

	period, err := domain.NewMonthPeriod(month, year)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
		return domain.MonthPeriod{}, false
	}

	return period, true
}

// parseMode aceita edit, read-only ou vazio (modo padrão do papel)
func parseMode(w http.ResponseWriter, r *http.Request) (domain.ViewMode, bool) {
	mode := domain.ViewMode(strings.TrimSpace(r.URL.Query().Get("mode")))
	switch mode {
	case "", domain.ViewModeEdit, domain.ViewModeReadOnly:
		return mode, true
	}

	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Modo inválido. Valores aceitos: edit, read-only", nil)
	return "", false
}

func optionalQuery(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}

// writeServiceError traduz os erros tipados dos casos de uso para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := apiErrors.ErrInternalServer, "Erro interno do servidor"

	var (
		saleErr        *selling.SaleError
		targetErr      *targeting.TargetError
		performanceErr *performance.PerformanceError
		branchErr      *branching.BranchError
		staffErr       *staffing.StaffError
		authErr        *authenticating.AuthError
	)

	switch {
	case errors.As(err, &saleErr):
		code, message = saleErr.Code, saleErr.Error()
	case errors.As(err, &targetErr):
		code, message = targetErr.Code, targetErr.Error()
	case errors.As(err, &performanceErr):
		code, message = performanceErr.Code, performanceErr.Error()
	case errors.As(err, &branchErr):
		code, message = branchErr.Code, branchErr.Error()
	case errors.As(err, &staffErr):
		code, message = staffErr.Code, staffErr.Error()
	case errors.As(err, &authErr):
		code, message = authErr.Code, authErr.Error()
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado")
	}

	var details any
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		message = "Dados inválidos"
		details = validationErr.Fields
	}

	apiErrors.WriteError(w, code, message, details)
}
