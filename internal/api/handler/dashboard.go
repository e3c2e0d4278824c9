package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/profit-manager-api/pkg/apiErrors"
	"github.com/vfg2006/profit-manager-api/pkg/log"
	"github.com/vfg2006/profit-manager-api/pkg/utils"
)

// GetDashboard calcula e retorna o dashboard de lucro do período filtrado
func GetDashboard(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startParam := r.URL.Query().Get("start_date")
		endParam := r.URL.Query().Get("end_date")
		if startParam == "" || endParam == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros start_date e end_date são obrigatórios", nil)
			return
		}

		startDate, err := utils.ParseDate(startParam)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": startParam,
				"error":      err.Error(),
			}).Warn("dashboard: parâmetro start_date inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(endParam)
		if err != nil {
			logger.WithFields(log.Fields{
				"end_date": endParam,
				"error":    err.Error(),
			}).Warn("dashboard: parâmetro end_date inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		if endDate.Before(*startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Data final anterior à data inicial", nil)
			return
		}

		filters := &domain.DashboardFilters{
			StartDate: startDate,
			EndDate:   endDate,
			BrandCode: r.URL.Query().Get("brand"),
			Channel:   domain.SalesChannel(r.URL.Query().Get("channel")),
		}

		logger.WithFields(log.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
			"brand":      filters.BrandCode,
			"channel":    string(filters.Channel),
		}).Info("dashboard: calculando números do período")

		response, err := service.GetDashboard(r.Context(), filters)
		if err != nil {
			switch {
			case errors.Is(err, reporting.ErrInvalidPeriod):
				apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			case errors.Is(err, reporting.ErrNoBrands):
				apiErrors.WriteError(w, apiErrors.ErrConfigurationMissing, err.Error(), nil)
			case errors.Is(err, reporting.ErrBrandNotFound):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			default:
				logger.WithError(err).Error("dashboard: erro ao calcular números do período")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("dashboard: erro ao serializar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
