package selling

import (
	"context"

	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

// SaleSavedListener é notificado depois de cada gravação bem-sucedida.
// Erros retornados são apenas registrados no log.
type SaleSavedListener interface {
	OnSaleSaved(ctx context.Context, event domain.SaleSavedEvent) error
}

type SaleSavedListenerFunc func(ctx context.Context, event domain.SaleSavedEvent) error

func (f SaleSavedListenerFunc) OnSaleSaved(ctx context.Context, event domain.SaleSavedEvent) error {
	return f(ctx, event)
}

// LogListener registra cada venda gravada
type LogListener struct{}

func (LogListener) OnSaleSaved(ctx context.Context, event domain.SaleSavedEvent) error {
	log.ForContext(ctx).WithFields(log.Fields{
		"seller_id": event.SellerID,
		"actor_id":  event.ActorID,
		"date":      utils.FormatDate(event.Date),
		"net":       event.Sale.Net().StringFixed(2),
		"updated":   event.Previous != nil,
	}).Info("Venda diária gravada")

	return nil
}
