package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/profit-manager-api/internal/scheduler"
)

// CronJobServices contém os serviços agendados expostos para diagnóstico
type CronJobServices struct {
	AdSpendSyncService *scheduler.AdSpendSyncService
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"ad_spend_sync": services.AdSpendSyncService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
