package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/profit-manager-api/infrastructure/repository"
	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/syncing"
	"github.com/vfg2006/profit-manager-api/pkg/apiErrors"
	"github.com/vfg2006/profit-manager-api/pkg/log"
	"github.com/vfg2006/profit-manager-api/pkg/utils"
)

type syncRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TriggerAdSpendSync dispara a sincronização de gasto de anúncios do período
// informado e aguarda todas as tarefas terminarem antes de responder
func TriggerAdSpendSync(orchestrator syncing.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req syncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.StartDate == "" || req.EndDate == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos start_date e end_date são obrigatórios", nil)
			return
		}

		startDate, err := utils.ParseDate(req.StartDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(req.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		if endDate.Before(*startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Data final anterior à data inicial", nil)
			return
		}

		period := domain.NewPeriod(*startDate, *endDate)

		logger.WithFields(log.Fields{
			"start_date": period.Start.Format(time.DateOnly),
			"end_date":   period.End.Format(time.DateOnly),
		}).Info("sync: sincronização manual de gasto de anúncios solicitada")

		summary, err := orchestrator.Sync(r.Context(), period)
		if err != nil {
			switch {
			case errors.Is(err, syncing.ErrSyncAlreadyRunning):
				apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, err.Error(), nil)
			case errors.Is(err, syncing.ErrNothingToSync):
				apiErrors.WriteError(w, apiErrors.ErrNothingToSync, err.Error(), nil)
			default:
				logger.WithError(err).Error("sync: erro ao sincronizar gasto de anúncios")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("sync: erro ao serializar resumo da sincronização")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

type adSpendRequest struct {
	BrandCode string  `json:"brand_code"`
	Platform  string  `json:"platform"`
	Date      string  `json:"date"`
	Spend     float64 `json:"spend"`
}

// UpsertAdSpend grava manualmente uma linha diária de gasto de anúncios.
// Usado para correções e para plataformas sem sincronização automática.
func UpsertAdSpend(brandRepo repository.BrandRepository, adSpendRepo repository.AdSpendRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req adSpendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.BrandCode == "" || req.Platform == "" || req.Date == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos brand_code, platform e date são obrigatórios", nil)
			return
		}

		if req.Spend < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Gasto não pode ser negativo", nil)
			return
		}

		date, err := utils.ParseDate(req.Date)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		brand, err := brandRepo.GetByCode(req.BrandCode)
		if err != nil {
			logger.WithError(err).Error("sync: erro ao buscar marca pelo código")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		if brand == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Marca não encontrada", nil)
			return
		}

		record := &domain.AdSpendRecord{
			BrandID:  brand.ID,
			Platform: domain.AdPlatform(req.Platform),
			Date:     *date,
			Spend:    req.Spend,
		}

		if err := adSpendRepo.SaveOrUpdate(record); err != nil {
			logger.WithFields(log.Fields{
				"brand_code": req.BrandCode,
				"platform":   req.Platform,
				"date":       req.Date,
				"error":      err.Error(),
			}).Error("sync: erro ao gravar gasto de anúncios manual")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"brand_code": req.BrandCode,
			"platform":   req.Platform,
			"date":       req.Date,
		}).Info("sync: gasto de anúncios gravado manualmente")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Gasto de anúncios gravado com sucesso",
		})
	})
}
