package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
)

const (
	CronJobTypeAuditRetention = "audit-retention"
	CronJobTypeAll            = "all"
)

// CronJob é uma rotina agendada que também pode ser disparada manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices mapeia o tipo informado na URL para a rotina correspondente
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for name := range s {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// RunCronJob dispara manualmente uma rotina agendada
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := pathParam(r, "type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Execução manual de cron job solicitada")

		if cronType == CronJobTypeAll {
			for _, name := range services.types() {
				services[name].TriggerManualSync()
			}
		} else {
			job, exists := services[cronType]
			if !exists || job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
					"Tipo de cron job inválido. Valores aceitos: "+strings.Join(append(services.types(), CronJobTypeAll), ", "), nil)
				return
			}
			job.TriggerManualSync()
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
