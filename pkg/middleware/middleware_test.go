package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/authenticating"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/apiErrors"
)

type validatorFunc func(token string) (*domain.Claims, error)

func (f validatorFunc) ValidateToken(token string) (*domain.Claims, error) { return f(token) }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func claimsValidator(claims *domain.Claims) validatorFunc {
	return func(token string) (*domain.Claims, error) {
		switch token {
		case "valido":
			return claims, nil
		case "expirado":
			return nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: "v1", Role: domain.RoleSeller}

	tests := []struct {
		name   string
		path   string
		header string
		status int
		code   string
	}{
		{name: "Login é público", path: "/v1/login", status: http.StatusOK},
		{name: "Healthcheck é público", path: "/healthcheck", status: http.StatusOK},
		{name: "Sem cabeçalho", path: "/v1/me", status: http.StatusUnauthorized, code: apiErrors.ErrInvalidToken},
		{name: "Sem prefixo Bearer", path: "/v1/me", header: "valido", status: http.StatusUnauthorized, code: apiErrors.ErrInvalidToken},
		{name: "Token expirado", path: "/v1/me", header: "Bearer expirado", status: http.StatusUnauthorized, code: apiErrors.ErrExpiredToken},
		{name: "Token inválido", path: "/v1/me", header: "Bearer lixo", status: http.StatusUnauthorized, code: apiErrors.ErrInvalidToken},
		{name: "Token válido", path: "/v1/me", header: "Bearer valido", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(claimsValidator(claims))(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Contains(t, rec.Body.String(), tt.code)
			}
			if tt.header == "Bearer valido" {
				assert.Equal(t, claims, got)
			}
		})
	}
}

func TestPasswordChangeRequired(t *testing.T) {
	pending := &domain.Claims{UserID: "v1", Role: domain.RoleSeller, MustChangePassword: true}
	handler := AuthMiddleware(claimsValidator(pending))(PasswordChangeRequired()(okHandler()))

	tests := []struct {
		path   string
		status int
	}{
		{path: "/v1/me", status: http.StatusOK},
		{path: "/v1/me/change-password", status: http.StatusOK},
		{path: "/v1/sellers/v1/calendar", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer valido")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		middleware func(http.Handler) http.Handler
		status     int
	}{
		{name: "Diretor em rota de diretor", claims: &domain.Claims{Role: domain.RoleDirector}, middleware: DirectorOnly(), status: http.StatusOK},
		{name: "Gerente em rota de diretor", claims: &domain.Claims{Role: domain.RoleManager}, middleware: DirectorOnly(), status: http.StatusForbidden},
		{name: "Gerente em rota de gestão", claims: &domain.Claims{Role: domain.RoleManager}, middleware: ManagerOrDirector(), status: http.StatusOK},
		{name: "Vendedor em rota de gestão", claims: &domain.Claims{Role: domain.RoleSeller}, middleware: ManagerOrDirector(), status: http.StatusForbidden},
		{name: "Vendedor em rota comum", claims: &domain.Claims{Role: domain.RoleSeller}, middleware: AllRoles(), status: http.StatusOK},
		{name: "Sem autenticação", middleware: AllRoles(), status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/qualquer", nil)
			if tt.claims != nil {
				req = req.WithContext(contextWithClaims(req, tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:5173"})(okHandler())

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Origin", "http://malicioso.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde sem chamar o handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/me", nil)
		rec := httptest.NewRecorder()

		Cors(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler não deveria ser chamado")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}
