package middleware

import (
	"net/http"

	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
)

// RoleMiddleware restringe a rota aos papéis informados
func RoleMiddleware(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.ForContext(r.Context()).WithField("role", claims.Role).Warn("Acesso negado por papel")
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
		})
	}
}

func DirectorOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleDirector)
}

func ManagerOrDirector() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleManager, domain.RoleDirector)
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleSeller, domain.RoleManager, domain.RoleDirector)
}
