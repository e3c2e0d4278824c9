package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/profit-manager-api/internal/config"
	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/syncing"
)

// AdSpendSyncConfig representa a configuração do agendador de sincronização
// de gasto de anúncios
type AdSpendSyncConfig struct {
	CronSchedule   string
	LookbackDays   int
	SyncEnabled    bool
	AutoSyncOnBoot bool
}

// AdSpendSyncService gerencia o agendamento da sincronização de gasto de
// anúncios. A lógica de sincronização em si fica no orquestrador; aqui só
// mora o disparo periódico e o disparo automático na subida.
type AdSpendSyncService struct {
	scheduler    *gocron.Scheduler
	config       AdSpendSyncConfig
	orchestrator syncing.Orchestrator
}

// NewAdSpendSyncService cria o serviço de agendamento
func NewAdSpendSyncService(
	orchestrator syncing.Orchestrator,
	appConfig *config.Config,
) *AdSpendSyncService {
	syncConfig := AdSpendSyncConfig{
		CronSchedule:   appConfig.AdSync.CronSchedule,
		LookbackDays:   appConfig.AdSync.LookbackDays,
		SyncEnabled:    appConfig.AdSync.Enabled,
		AutoSyncOnBoot: appConfig.AdSync.AutoSyncOnBoot,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":     syncConfig.CronSchedule,
		"lookback_days":     syncConfig.LookbackDays,
		"sync_enabled":      syncConfig.SyncEnabled,
		"auto_sync_on_boot": syncConfig.AutoSyncOnBoot,
	}).Info("Configuração do agendador de sincronização de gasto de anúncios carregada")

	return &AdSpendSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		orchestrator: orchestrator,
	}
}

// Start inicia o agendador e, quando configurado, dispara a sincronização
// automática de subida
func (s *AdSpendSyncService) Start(ctx context.Context) error {
	if s.config.AutoSyncOnBoot {
		go s.orchestrator.AutoSyncOnce(ctx, s.lookbackPeriod())
	}

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de gasto de anúncios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de gasto de anúncios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduledSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de gasto de anúncios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de gasto de anúncios")
		s.scheduler.Stop()
	}()

	return nil
}

// runScheduledSync executa a sincronização do período de retrovisão. Chamadas
// rejeitadas por sincronização em andamento são só registradas; a próxima
// execução do cron tenta de novo.
func (s *AdSpendSyncService) runScheduledSync(ctx context.Context) {
	period := s.lookbackPeriod()

	logrus.WithFields(logrus.Fields{
		"start_date": period.Start.Format(time.DateOnly),
		"end_date":   period.End.Format(time.DateOnly),
	}).Info("Disparando sincronização agendada de gasto de anúncios")

	summary, err := s.orchestrator.Sync(ctx, period)
	if err != nil {
		if errors.Is(err, syncing.ErrSyncAlreadyRunning) || errors.Is(err, syncing.ErrNothingToSync) {
			logrus.WithError(err).Info("Sincronização agendada não executada")
			return
		}
		logrus.WithError(err).Error("Erro na sincronização agendada de gasto de anúncios")
		return
	}

	logrus.WithFields(logrus.Fields{
		"success_count": summary.SuccessCount,
		"fail_count":    summary.FailCount,
		"state":         summary.State,
	}).Info("Sincronização agendada de gasto de anúncios concluída")
}

// lookbackPeriod monta o período de retrovisão terminando ontem
func (s *AdSpendSyncService) lookbackPeriod() domain.Period {
	days := s.config.LookbackDays
	if days <= 0 {
		days = 1
	}

	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))

	return domain.NewPeriod(start, end)
}

// GetStatus retorna o status atual do agendador e do orquestrador
func (s *AdSpendSyncService) GetStatus() map[string]any {
	status := s.orchestrator.Status()
	status["sync_enabled"] = s.config.SyncEnabled
	status["sync_cron"] = s.config.CronSchedule
	status["sync_lookback_days"] = s.config.LookbackDays
	status["auto_sync_on_boot"] = s.config.AutoSyncOnBoot
	return status
}
