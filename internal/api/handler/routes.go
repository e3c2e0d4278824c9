package handler

import (
	"net/http"

	"github.com/vfg2006/profit-manager-api/infrastructure/repository"
	"github.com/vfg2006/profit-manager-api/internal/api/handler/router"
	"github.com/vfg2006/profit-manager-api/internal/usecases/costing"
	"github.com/vfg2006/profit-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/profit-manager-api/internal/usecases/syncing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Dashboard(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
	}
}

func AdSpend(orchestrator syncing.Orchestrator, brandRepo repository.BrandRepository, adSpendRepo repository.AdSpendRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/adspend/sync",
			Method:  http.MethodPost,
			Handler: TriggerAdSpendSync(orchestrator),
		},
		{
			Path:    "/v1/adspend",
			Method:  http.MethodPost,
			Handler: UpsertAdSpend(brandRepo, adSpendRepo),
		},
	}
}

func ProfitSettings(engine costing.Engine) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/settings/profit",
			Method:  http.MethodGet,
			Handler: GetProfitSettings(engine),
		},
		{
			Path:    "/v1/settings/profit",
			Method:  http.MethodPut,
			Handler: UpdateProfitSettings(engine),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
