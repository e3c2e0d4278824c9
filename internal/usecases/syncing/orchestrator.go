package syncing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/profit-manager-api/infrastructure/integrator/adsync"
	"github.com/vfg2006/profit-manager-api/infrastructure/repository"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

var (
	// ErrSyncAlreadyRunning indica que uma sincronização já está em andamento.
	// Chamadas reentrantes são rejeitadas, nunca enfileiradas.
	ErrSyncAlreadyRunning = errors.New("sincronização de gasto de anúncios já em andamento")

	// ErrNothingToSync indica que nenhum par (marca, plataforma) ativo foi
	// encontrado para sincronizar
	ErrNothingToSync = errors.New("nenhuma plataforma de anúncios configurada para sincronização")
)

// RecalcFunc é o gancho de reprocessamento disparado após cada sincronização
// para que os números agregados reflitam o gasto recém sincronizado. Falhas
// aqui viram aviso, nunca abortam a sincronização.
type RecalcFunc func(ctx context.Context, period domain.Period) error

// Orchestrator coordena a sincronização concorrente de gasto de anúncios de
// todas as marcas nas plataformas configuradas
type Orchestrator interface {
	Sync(ctx context.Context, period domain.Period) (*domain.SyncSummary, error)
	AutoSyncOnce(ctx context.Context, period domain.Period)
	Status() map[string]any
}

// syncTask é uma unidade de trabalho (marca, plataforma) da sincronização
type syncTask struct {
	brandCode string
	platform  domain.AdPlatform
}

// Service implementa a interface Orchestrator
type Service struct {
	brandRepo     repository.BrandRepository
	adAccountRepo repository.AdAccountRepository
	syncer        adsync.Syncer
	recalc        RecalcFunc
	maxConcurrent int

	syncMutex           sync.Mutex
	syncRunning         bool
	anySyncRan          bool
	autoSyncFired       bool
	state               domain.SyncState
	lastSummary         *domain.SyncSummary
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewService cria o orquestrador de sincronização. O recalc pode ser nil
// quando nenhum reprocessamento automático é desejado.
func NewService(
	brandRepo repository.BrandRepository,
	adAccountRepo repository.AdAccountRepository,
	syncer adsync.Syncer,
	recalc RecalcFunc,
	maxConcurrent int,
) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}

	return &Service{
		brandRepo:     brandRepo,
		adAccountRepo: adAccountRepo,
		syncer:        syncer,
		recalc:        recalc,
		maxConcurrent: maxConcurrent,
		state:         domain.SyncStateIdle,
	}
}

// Sync dispara a sincronização de todas as marcas ativas nas plataformas
// configuradas e aguarda todas as tarefas terminarem, independente de falhas
// individuais. A verificação e a marcação da flag de execução acontecem antes
// da montagem do conjunto de tarefas, sem janela para duas chamadas verem o
// estado ocioso ao mesmo tempo.
func (s *Service) Sync(ctx context.Context, period domain.Period) (*domain.SyncSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de gasto de anúncios já em andamento, rejeitando chamada")
		return nil, ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.anySyncRan = true
	s.state = domain.SyncStateRunning
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		// Estados terminais voltam para ocioso depois que o resumo é entregue
		s.state = domain.SyncStateIdle
		s.syncMutex.Unlock()
	}()

	startedAt := time.Now()
	s.syncMutex.Lock()
	s.lastSyncStartedAt = startedAt
	s.syncMutex.Unlock()

	tasks, err := s.buildTasks()
	if err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		logrus.Info("Nenhum par (marca, plataforma) ativo para sincronizar")
		return nil, ErrNothingToSync
	}

	logrus.WithFields(logrus.Fields{
		"tasks":      len(tasks),
		"start_date": period.Start.Format(time.DateOnly),
		"end_date":   period.End.Format(time.DateOnly),
	}).Info("Iniciando sincronização de gasto de anúncios")

	outcomes := s.runTasks(ctx, tasks, period)

	summary := s.buildSummary(outcomes, startedAt)

	// Status() lê esses campos sob o mutex; a escrita também precisa dele
	s.syncMutex.Lock()
	s.lastSyncCompletedAt = summary.FinishedAt
	s.lastSummary = summary
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"success_count": summary.SuccessCount,
		"fail_count":    summary.FailCount,
		"state":         summary.State,
		"duration":      summary.FinishedAt.Sub(summary.StartedAt).String(),
	}).Info("Sincronização de gasto de anúncios concluída")

	// Reprocessamento dos números agregados com o gasto recém sincronizado.
	// Falha aqui é aviso, o resumo da sincronização já está fechado.
	if s.recalc != nil {
		if err := s.recalc(ctx, period); err != nil {
			logrus.WithError(err).Warn("Erro ao reprocessar números após sincronização")
		}
	}

	return summary, nil
}

// buildTasks monta o conjunto de tarefas: um par (marca, plataforma) para
// cada vínculo ativo de conta de anúncio de uma marca ativa
func (s *Service) buildTasks() ([]syncTask, error) {
	brands, err := s.brandRepo.ListActiveBrands()
	if err != nil {
		return nil, err
	}

	brandByID := make(map[string]*domain.Brand, len(brands))
	for _, brand := range brands {
		brandByID[brand.ID] = brand
	}

	accounts, err := s.adAccountRepo.ListActive()
	if err != nil {
		return nil, err
	}

	tasks := make([]syncTask, 0, len(accounts))
	for _, account := range accounts {
		brand, ok := brandByID[account.BrandID]
		if !ok {
			logrus.WithField("brand_id", account.BrandID).Warn("Conta de anúncio vinculada a marca inativa ou desconhecida. Pulando.")
			continue
		}

		tasks = append(tasks, syncTask{
			brandCode: brand.Code,
			platform:  account.Platform,
		})
	}

	return tasks, nil
}

// runTasks executa todas as tarefas concorrentemente, limitadas pelo
// semáforo, e só retorna depois que todas terminam. Falha de tarefa vira
// dado no resultado, nunca curto-circuito.
func (s *Service) runTasks(ctx context.Context, tasks []syncTask, period domain.Period) []*domain.SyncOutcome {
	semaphore := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex

	outcomes := make([]*domain.SyncOutcome, 0, len(tasks))

	for _, task := range tasks {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(t syncTask) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			outcome := s.runTask(ctx, t, period)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		}(task)
	}

	wg.Wait()

	return outcomes
}

func (s *Service) runTask(ctx context.Context, task syncTask, period domain.Period) *domain.SyncOutcome {
	logrus.WithFields(logrus.Fields{
		"brand_code": task.brandCode,
		"platform":   task.platform,
	}).Info("Sincronizando gasto de anúncios para marca e plataforma")

	result, err := s.syncer.SyncAdSpend(ctx, task.platform, task.brandCode, period)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"brand_code": task.brandCode,
			"platform":   task.platform,
			"error":      err.Error(),
		}).Error("Erro ao sincronizar gasto de anúncios")

		return &domain.SyncOutcome{
			BrandCode: task.brandCode,
			Platform:  task.platform,
			Success:   false,
			Message:   err.Error(),
		}
	}

	if result == nil || !result.Success {
		message := "sincronização recusada pela plataforma"
		if result != nil && result.Message != "" {
			message = result.Message
		}

		return &domain.SyncOutcome{
			BrandCode: task.brandCode,
			Platform:  task.platform,
			Success:   false,
			Message:   message,
		}
	}

	return &domain.SyncOutcome{
		BrandCode: task.brandCode,
		Platform:  task.platform,
		Success:   true,
		Message:   result.Message,
	}
}

func (s *Service) buildSummary(outcomes []*domain.SyncOutcome, startedAt time.Time) *domain.SyncSummary {
	summary := &domain.SyncSummary{
		Outcomes:   outcomes,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}

	for _, outcome := range outcomes {
		if outcome.Success {
			summary.SuccessCount++
			continue
		}

		summary.FailCount++
		summary.Failures = append(summary.Failures, domain.SyncFailure{
			PlatformLabel: outcome.Platform.Label(),
			Message:       outcome.Message,
		})
		if summary.FirstError == "" {
			summary.FirstError = outcome.Message
		}
	}

	if summary.FailCount > 0 {
		summary.State = domain.SyncStatePartiallyFailed
	} else {
		summary.State = domain.SyncStateCompleted
	}

	return summary
}

// AutoSyncOnce dispara uma sincronização automática no máximo uma vez durante
// a vida do orquestrador, somente se existir ao menos um par (marca,
// plataforma) ativo e nenhuma sincronização tiver sido executada ainda.
// Recargas de dados posteriores nunca disparam de novo.
func (s *Service) AutoSyncOnce(ctx context.Context, period domain.Period) {
	s.syncMutex.Lock()
	if s.autoSyncFired || s.anySyncRan {
		s.syncMutex.Unlock()
		return
	}
	s.autoSyncFired = true
	s.syncMutex.Unlock()

	tasks, err := s.buildTasks()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao verificar plataformas para sincronização automática")
		return
	}

	if len(tasks) == 0 {
		logrus.Info("Nenhuma plataforma configurada, sincronização automática não disparada")
		return
	}

	logrus.Info("Disparando sincronização automática de gasto de anúncios")

	if _, err := s.Sync(ctx, period); err != nil {
		logrus.WithError(err).Warn("Sincronização automática de gasto de anúncios falhou")
	}
}

// Status retorna o estado atual do orquestrador para diagnóstico
func (s *Service) Status() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"state":                  s.state,
		"sync_running":           s.syncRunning,
		"auto_sync_fired":        s.autoSyncFired,
		"max_concurrent":         s.maxConcurrent,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastSummary != nil {
		status["last_success_count"] = s.lastSummary.SuccessCount
		status["last_fail_count"] = s.lastSummary.FailCount
	}

	return status
}
