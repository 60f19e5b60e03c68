package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/sellers/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(httprouter.ParamsFromContext(r.Context()).ByName("id")))
		}),
		Middlewares: []func(http.Handler) http.Handler{mark("primeiro"), mark("segundo")},
	}))

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{name: "Rota registrada recebe o parâmetro", method: http.MethodGet, path: "/v1/sellers/abc", status: http.StatusOK, body: "abc"},
		{name: "Rota inexistente", method: http.MethodGet, path: "/v1/nada", status: http.StatusNotFound, body: "RES_001"},
		{name: "Método não permitido", method: http.MethodPost, path: "/v1/sellers/abc", status: http.StatusMethodNotAllowed, body: "VAL_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order = nil
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), tt.body), rec.Body.String())
		})
	}

	t.Run("Middlewares executam na ordem da lista", func(t *testing.T) {
		order = nil
		rt.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/sellers/abc", nil))
		assert.Equal(t, []string{"primeiro", "segundo"}, order)
	})

	assert.Len(t, rt.Routes(), 1)
}
