// Package selling carrega o calendário mensal de um vendedor, abre o
// formulário de um dia e grava o lançamento diário.
package selling

import (
	"context"
	"errors"
	"time"

	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/access"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/calendar"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

type Seller interface {
	LoadMonth(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod, requested domain.ViewMode) (*domain.MonthView, error)
	SelectDay(ctx context.Context, actor *domain.Claims, sellerID string, date time.Time, requested domain.ViewMode) (*domain.DayForm, error)
	Save(ctx context.Context, actor *domain.Claims, sellerID string, form domain.DayForm, requested domain.ViewMode) (*domain.SaveResult, error)
}

type Service struct {
	saleRepo   repository.SaleRepository
	targetRepo repository.TargetRepository
	userRepo   repository.UserRepository
	listeners  []SaleSavedListener
	location   *time.Location
	now        func() time.Time
}

func NewService(
	saleRepo repository.SaleRepository,
	targetRepo repository.TargetRepository,
	userRepo repository.UserRepository,
	location *time.Location,
	listeners ...SaleSavedListener,
) *Service {
	return &Service{
		saleRepo:   saleRepo,
		targetRepo: targetRepo,
		userRepo:   userRepo,
		listeners:  listeners,
		location:   location,
		now:        time.Now,
	}
}

// LoadMonth monta a grade do mês com os valores lançados e os esperados
func (s *Service) LoadMonth(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod, requested domain.ViewMode) (*domain.MonthView, error) {
	mode, err := s.authorize(ctx, actor, sellerID, period, requested)
	if err != nil {
		return nil, err
	}

	state, err := s.loadState(ctx, sellerID, period)
	if err != nil {
		return nil, err
	}

	view := calendar.BuildMonthView(*state, mode)
	return &view, nil
}

// SelectDay abre o formulário do dia. Em modo leitura só dias lançados abrem.
func (s *Service) SelectDay(ctx context.Context, actor *domain.Claims, sellerID string, date time.Time, requested domain.ViewMode) (*domain.DayForm, error) {
	date = utils.TruncateDate(date)
	if !calendar.IsBusinessDay(date) {
		return nil, NewSaleError(ErrNotBusinessDay, apiErrors.ErrNotBusinessDay, sellerID, utils.FormatDate(date))
	}

	mode, err := s.authorize(ctx, actor, sellerID, domain.PeriodOf(date), requested)
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.GetBySellerAndDate(ctx, sellerID, date)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar venda do dia")
		return nil, NewSaleError(ErrPersistence, apiErrors.ErrDatabaseOperation, sellerID, "erro ao buscar venda do dia")
	}

	if sale == nil && mode.ReadOnly() {
		return nil, NewSaleError(ErrDayNotInteractive, apiErrors.ErrNotInteractive, sellerID, utils.FormatDate(date))
	}

	form := FormFor(date, sale)
	return &form, nil
}

// Save valida o formulário, grava o lançamento (inserindo ou substituindo o
// registro do dia), recarrega o mês e notifica os consumidores.
func (s *Service) Save(ctx context.Context, actor *domain.Claims, sellerID string, form domain.DayForm, requested domain.ViewMode) (*domain.SaveResult, error) {
	if requested == domain.ViewModeReadOnly {
		return nil, NewSaleError(ErrReadOnly, apiErrors.ErrReadOnly, sellerID, "")
	}

	input, err := ParseDayForm(sellerID, form)
	if err != nil {
		return nil, err
	}

	period := domain.PeriodOf(input.Date)

	mode, err := s.authorize(ctx, actor, sellerID, period, requested)
	if err != nil {
		return nil, err
	}

	if mode.ReadOnly() {
		return nil, NewSaleError(ErrReadOnly, apiErrors.ErrReadOnly, sellerID, period.String())
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"seller_id": sellerID,
		"date":      utils.FormatDate(input.Date),
	})

	previous, err := s.saleRepo.GetBySellerAndDate(ctx, sellerID, input.Date)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar venda anterior")
		return nil, NewSaleError(ErrPersistence, apiErrors.ErrDatabaseOperation, sellerID, "erro ao buscar venda anterior")
	}

	editedBy := actor.UserID
	sale := &domain.Sale{
		SellerID:     sellerID,
		Date:         input.Date,
		GrossAmount:  input.GrossAmount,
		ReturnAmount: input.ReturnAmount,
		Notes:        input.Notes,
		EditedBy:     &editedBy,
	}
	if previous != nil {
		sale.ID = previous.ID
	}

	saved, err := s.saleRepo.Upsert(ctx, sale)
	if err != nil {
		logger.WithError(err).Error("Erro ao gravar venda")
		return nil, NewSaleError(ErrPersistence, apiErrors.ErrDatabaseOperation, sellerID, "erro ao gravar venda")
	}

	event := domain.SaleSavedEvent{
		SellerID: sellerID,
		ActorID:  actor.UserID,
		Date:     input.Date,
		Sale:     *saved,
		Previous: previous,
	}

	// a venda já está gravada: a notificação sai mesmo se o recarregamento falhar
	state, err := s.loadState(ctx, sellerID, period)
	if err != nil {
		event.State = domain.CalendarState{SellerID: sellerID, Period: period, Sales: []domain.Sale{*saved}}
		s.emit(ctx, event)
		return nil, err
	}

	event.State = *state
	s.emit(ctx, event)

	return &domain.SaveResult{
		Sale:    *saved,
		View:    calendar.BuildMonthView(*state, mode),
		Summary: calendar.Summarize(*state),
	}, nil
}

// CurrentPeriod é o mês corrente no fuso da aplicação
func (s *Service) CurrentPeriod() domain.MonthPeriod {
	loc := s.location
	if loc == nil {
		loc = time.UTC
	}
	return domain.PeriodOf(s.now().In(loc))
}

func (s *Service) authorize(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod, requested domain.ViewMode) (domain.ViewMode, error) {
	seller, err := access.LoadSeller(ctx, s.userRepo, sellerID)
	if err != nil {
		if errors.Is(err, access.ErrSellerNotFound) {
			return "", NewSaleError(ErrSellerNotFound, apiErrors.ErrResourceNotFound, sellerID, "")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar vendedor")
		return "", NewSaleError(ErrPersistence, apiErrors.ErrDatabaseOperation, sellerID, "erro ao buscar vendedor")
	}

	if err := access.CanView(actor, seller); err != nil {
		if errors.Is(err, access.ErrUnauthenticated) {
			return "", NewSaleError(err, apiErrors.ErrInvalidToken, sellerID, "")
		}
		return "", NewSaleError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, sellerID, "")
	}

	return access.CalendarMode(actor, period, s.CurrentPeriod(), requested), nil
}

func (s *Service) loadState(ctx context.Context, sellerID string, period domain.MonthPeriod) (*domain.CalendarState, error) {
	sales, err := s.saleRepo.ListBySellerAndPeriod(ctx, sellerID, period.FirstDay(), period.LastDay())
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("period", period.String()).Error("Erro ao carregar vendas do mês")
		return nil, NewSaleError(ErrPersistence, apiErrors.ErrDatabaseOperation, sellerID, "erro ao carregar vendas do mês")
	}

	target, err := s.targetRepo.GetBySellerAndPeriod(ctx, sellerID, period.Month, period.Year)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("period", period.String()).Error("Erro ao carregar meta do mês")
		return nil, NewSaleError(ErrPersistence, apiErrors.ErrDatabaseOperation, sellerID, "erro ao carregar meta do mês")
	}

	return &domain.CalendarState{
		SellerID: sellerID,
		Period:   period,
		Sales:    sales,
		Target:   target,
	}, nil
}

func (s *Service) emit(ctx context.Context, event domain.SaleSavedEvent) {
	for _, listener := range s.listeners {
		if err := listener.OnSaleSaved(ctx, event); err != nil {
			log.ForContext(ctx).WithError(err).WithField("seller_id", event.SellerID).Warn("Falha ao notificar gravação de venda")
		}
	}
}
