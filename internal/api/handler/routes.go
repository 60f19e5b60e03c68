package handler

import (
	"net/http"
	"time"

	"github.com/thiberio-patricio/Controle-Vendas/internal/api/handler/router"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/authenticating"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/branching"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/performance"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/selling"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/staffing"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/targeting"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: middlewares{middleware.ManagerOrDirector()},
		},
	}
}

// Calendar agrupa as rotas do calendário do vendedor. O acesso fino
// (próprio vendedor, filial do gerente) é decidido nos casos de uso.
func Calendar(seller selling.Seller, performer performance.Performer, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sellers/:id/calendar",
			Method:      http.MethodGet,
			Handler:     GetCalendar(seller, location),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sellers/:id/sales/:date",
			Method:      http.MethodGet,
			Handler:     GetDay(seller),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sellers/:id/sales/:date",
			Method:      http.MethodPut,
			Handler:     SaveDay(seller),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sellers/:id/summary",
			Method:      http.MethodGet,
			Handler:     GetSellerSummary(performer, location),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Targets(service targeting.Targeter, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sellers/:id/target",
			Method:      http.MethodPut,
			Handler:     SetTarget(service),
			Middlewares: middlewares{middleware.ManagerOrDirector()},
		},
		{
			Path:        "/v1/sellers/:id/target",
			Method:      http.MethodGet,
			Handler:     GetTarget(service, location),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Team(staffer staffing.Staffer, performer performance.Performer, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/team/performance",
			Method:      http.MethodGet,
			Handler:     TeamPerformance(performer, location),
			Middlewares: middlewares{middleware.ManagerOrDirector()},
		},
		{
			Path:        "/v1/team/sellers",
			Method:      http.MethodGet,
			Handler:     ListSellers(staffer),
			Middlewares: middlewares{middleware.ManagerOrDirector()},
		},
		{
			Path:        "/v1/team/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(staffer),
			Middlewares: middlewares{middleware.ManagerOrDirector()},
		},
		{
			Path:        "/v1/team/sellers/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSeller(staffer),
			Middlewares: middlewares{middleware.ManagerOrDirector()},
		},
		{
			Path:        "/v1/managers",
			Method:      http.MethodGet,
			Handler:     ListManagers(staffer),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
		{
			Path:        "/v1/managers/:id",
			Method:      http.MethodDelete,
			Handler:     RemoveManager(staffer),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
	}
}

func Branches(service branching.Brancher) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/branches",
			Method:      http.MethodGet,
			Handler:     ListBranches(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/branches",
			Method:      http.MethodPost,
			Handler:     CreateBranch(service),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
		{
			Path:        "/v1/branches/:id",
			Method:      http.MethodGet,
			Handler:     GetBranch(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/branches/:id",
			Method:      http.MethodPut,
			Handler:     UpdateBranch(service),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
		{
			Path:        "/v1/branches/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteBranch(service),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
	}
}

func Overview(service performance.Performer, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/overview",
			Method:      http.MethodGet,
			Handler:     GetOverview(service, location),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.DirectorOnly()},
		},
	}
}
