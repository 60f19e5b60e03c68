// Package performance calcula os painéis de vendedor, equipe e diretoria
package performance

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/access"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/calendar"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

type Performer interface {
	SellerSummary(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod) (*domain.SellerSummary, error)
	TeamPerformance(ctx context.Context, actor *domain.Claims, branchID *string, period domain.MonthPeriod) (*domain.TeamPerformance, error)
	Overview(ctx context.Context, actor *domain.Claims, period domain.MonthPeriod) (*domain.Overview, error)
}

type Service struct {
	saleRepo   repository.SaleRepository
	targetRepo repository.TargetRepository
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
}

func NewService(
	saleRepo repository.SaleRepository,
	targetRepo repository.TargetRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
) *Service {
	return &Service{
		saleRepo:   saleRepo,
		targetRepo: targetRepo,
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

// SellerSummary retorna total vendido, meta, progresso e quanto falta no mês
func (s *Service) SellerSummary(ctx context.Context, actor *domain.Claims, sellerID string, period domain.MonthPeriod) (*domain.SellerSummary, error) {
	seller, err := access.LoadSeller(ctx, s.userRepo, sellerID)
	if err != nil {
		if errors.Is(err, access.ErrSellerNotFound) {
			return nil, NewPerformanceError(ErrSellerNotFound, apiErrors.ErrResourceNotFound, sellerID)
		}
		return nil, s.databaseError(ctx, err, "erro ao buscar vendedor")
	}

	if err := access.CanView(actor, seller); err != nil {
		return nil, NewPerformanceError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, sellerID)
	}

	sales, err := s.saleRepo.ListBySellerAndPeriod(ctx, sellerID, period.FirstDay(), period.LastDay())
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao carregar vendas do mês")
	}

	target, err := s.targetRepo.GetBySellerAndPeriod(ctx, sellerID, period.Month, period.Year)
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao carregar meta do mês")
	}

	summary := calendar.Summarize(domain.CalendarState{
		SellerID: sellerID,
		Period:   period,
		Sales:    sales,
		Target:   target,
	})

	return &summary, nil
}

// TeamPerformance lista os vendedores de uma filial ordenados pelo total
// vendido. O gerente sempre enxerga a própria filial; o diretor pode filtrar
// uma filial ou ver todos os vendedores.
func (s *Service) TeamPerformance(ctx context.Context, actor *domain.Claims, branchID *string, period domain.MonthPeriod) (*domain.TeamPerformance, error) {
	switch {
	case actor == nil || actor.IsSeller():
		return nil, NewPerformanceError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "")
	case actor.IsManager():
		if actor.BranchID == nil {
			return nil, NewPerformanceError(ErrManagerNoBranch, apiErrors.ErrInsufficientPrivilege, actor.UserID)
		}
		branchID = actor.BranchID
	}

	role := domain.RoleSeller
	sellers, err := s.userRepo.List(ctx, domain.UserFilter{Role: &role, BranchID: branchID})
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao listar vendedores")
	}

	team := &domain.TeamPerformance{
		BranchID:    branchID,
		Month:       period.Month,
		Year:        period.Year,
		SellerCount: len(sellers),
		TotalSold:   decimal.Zero,
		TotalTarget: decimal.Zero,
		Progress:    decimal.Zero,
		Sellers:     make([]domain.SellerPerformance, 0, len(sellers)),
	}

	if len(sellers) == 0 {
		return team, nil
	}

	ids := make([]string, 0, len(sellers))
	for _, seller := range sellers {
		ids = append(ids, seller.ID)
	}

	sold, err := s.saleRepo.SumNetBySellers(ctx, ids, period.FirstDay(), period.LastDay())
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao somar vendas da equipe")
	}

	targets, err := s.targetRepo.ListByPeriod(ctx, ids, period.Month, period.Year)
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao carregar metas da equipe")
	}

	targetBySeller := make(map[string]decimal.Decimal, len(targets))
	for _, target := range targets {
		targetBySeller[target.SellerID] = target.TargetAmount
	}

	for _, seller := range sellers {
		total := sold[seller.ID]
		target := targetBySeller[seller.ID]

		team.TotalSold = team.TotalSold.Add(total)
		team.TotalTarget = team.TotalTarget.Add(target)

		team.Sellers = append(team.Sellers, domain.SellerPerformance{
			SellerID:   seller.ID,
			SellerName: seller.Name,
			PhotoURL:   seller.PhotoURL,
			Sold:       utils.RoundMoney(total),
			Target:     utils.RoundMoney(target),
			Progress:   utils.Percentage(total, target),
		})
	}

	team.Progress = utils.Percentage(team.TotalSold, team.TotalTarget)
	team.TotalSold = utils.RoundMoney(team.TotalSold)
	team.TotalTarget = utils.RoundMoney(team.TotalTarget)

	updatePositions(team.Sellers)

	return team, nil
}

// Overview é restrito ao diretor: contagens gerais e vendas por filial
func (s *Service) Overview(ctx context.Context, actor *domain.Claims, period domain.MonthPeriod) (*domain.Overview, error) {
	if actor == nil || !actor.IsDirector() {
		return nil, NewPerformanceError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "")
	}

	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao listar filiais")
	}

	counts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao contar usuários")
	}

	byBranch, err := s.saleRepo.SumNetByBranch(ctx, period.FirstDay(), period.LastDay())
	if err != nil {
		return nil, s.databaseError(ctx, err, "erro ao somar vendas por filial")
	}

	overview := &domain.Overview{
		Month:         period.Month,
		Year:          period.Year,
		Branches:      len(branches),
		Managers:      counts[domain.RoleManager],
		Sellers:       counts[domain.RoleSeller],
		TotalSold:     decimal.Zero,
		SalesByBranch: make([]domain.BranchSales, 0, len(byBranch)),
	}

	for _, item := range byBranch {
		if item.BranchID == nil || item.BranchName == "" {
			item.BranchName = domain.NoBranchName
		}
		overview.TotalSold = overview.TotalSold.Add(item.Total)
		item.Total = utils.RoundMoney(item.Total)
		overview.SalesByBranch = append(overview.SalesByBranch, item)
	}

	sort.SliceStable(overview.SalesByBranch, func(i, j int) bool {
		return overview.SalesByBranch[i].Total.GreaterThan(overview.SalesByBranch[j].Total)
	})
	overview.TotalSold = utils.RoundMoney(overview.TotalSold)

	return overview, nil
}

// updatePositions ordena pelo total vendido (desempate pelo nome) e numera a partir de 1
func updatePositions(sellers []domain.SellerPerformance) {
	sort.SliceStable(sellers, func(i, j int) bool {
		if !sellers[i].Sold.Equal(sellers[j].Sold) {
			return sellers[i].Sold.GreaterThan(sellers[j].Sold)
		}
		return sellers[i].SellerName < sellers[j].SellerName
	})

	for i := range sellers {
		sellers[i].Position = i + 1
	}
}

func (s *Service) databaseError(ctx context.Context, err error, details string) error {
	log.ForContext(ctx).WithError(err).Error(details)
	return NewPerformanceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, details)
}
