// Package access concentra as regras de quem pode ver ou alterar os dados de
// um vendedor: o próprio vendedor, o gerente da mesma filial ou um diretor.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
)

var (
	ErrUnauthenticated = errors.New("usuário não autenticado")
	ErrSellerNotFound  = errors.New("vendedor não encontrado")
	ErrAccessDenied    = errors.New("sem permissão para acessar este vendedor")
)

// LoadSeller busca o usuário e garante que ele tem o papel de vendedor
func LoadSeller(ctx context.Context, users repository.UserRepository, sellerID string) (*domain.User, error) {
	if sellerID == "" {
		return nil, ErrSellerNotFound
	}

	seller, err := users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendedor %s: %w", sellerID, err)
	}

	if seller == nil || seller.Role != domain.RoleSeller {
		return nil, ErrSellerNotFound
	}

	return seller, nil
}

// CanView permite ao vendedor ver a si mesmo, ao gerente ver a própria
// filial e ao diretor ver qualquer vendedor
func CanView(actor *domain.Claims, seller *domain.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	switch actor.Role {
	case domain.RoleSeller:
		if actor.UserID == seller.ID {
			return nil
		}
	case domain.RoleManager:
		if seller.InBranch(actor.BranchID) {
			return nil
		}
	case domain.RoleDirector:
		return nil
	}

	return ErrAccessDenied
}

// CanManage restringe operações de gestão (metas, exclusão, senha) a
// gerentes da mesma filial e diretores
func CanManage(actor *domain.Claims, seller *domain.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	if actor.IsSeller() {
		return ErrAccessDenied
	}

	return CanView(actor, seller)
}

// CalendarMode decide o modo do calendário. O vendedor edita o mês corrente
// e os futuros; meses passados ficam somente leitura. Gerentes e diretores
// abrem em leitura, a menos que peçam edição explicitamente.
func CalendarMode(actor *domain.Claims, period, current domain.MonthPeriod, requested domain.ViewMode) domain.ViewMode {
	if requested == domain.ViewModeReadOnly {
		return domain.ViewModeReadOnly
	}

	if actor.IsSeller() {
		if period.Before(current) {
			return domain.ViewModeReadOnly
		}
		return domain.ViewModeEdit
	}

	if requested == domain.ViewModeEdit {
		return domain.ViewModeEdit
	}

	return domain.ViewModeReadOnly
}
