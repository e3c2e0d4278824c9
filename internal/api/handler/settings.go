package handler

import (
	"net/http"

	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/costing"
	"github.com/vfg2006/profit-manager-api/pkg/apiErrors"
	"github.com/vfg2006/profit-manager-api/pkg/log"
)

// GetProfitSettings retorna as regras de custo vigentes
func GetProfitSettings(engine costing.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		settings, err := engine.GetSettings(r.Context())
		if err != nil {
			logger.WithError(err).Error("settings: erro ao buscar configurações de lucro")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(settings); err != nil {
			logger.WithError(err).Error("settings: erro ao serializar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// UpdateProfitSettings valida e persiste as regras de custo
func UpdateProfitSettings(engine costing.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		settings := &domain.ProfitSettings{}
		if err := json.NewDecoder(r.Body).Decode(settings); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		updated, err := engine.UpdateSettings(r.Context(), settings)
		if err != nil {
			logger.WithError(err).Warn("settings: configurações de lucro rejeitadas")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"variable_costs": len(updated.VariableCosts),
			"fixed_costs":    len(updated.FixedCosts),
			"vat_enabled":    updated.VATEnabled,
		}).Info("settings: configurações de lucro atualizadas")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logger.WithError(err).Error("settings: erro ao serializar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
