package syncing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/profit-manager-api/infrastructure/integrator/adsync"
	adsyncmocks "github.com/vfg2006/profit-manager-api/infrastructure/integrator/adsync/mocks"
	"github.com/vfg2006/profit-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/profit-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testPeriod() domain.Period {
	return domain.NewPeriod(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	)
}

func testBrands() []*domain.Brand {
	return []*domain.Brand{
		{ID: "BRD001", Code: "aurora", Name: "Aurora Cosméticos", Active: true},
	}
}

func testAccounts() []*domain.AdAccount {
	return []*domain.AdAccount{
		{ID: "ACC001", BrandID: "BRD001", Platform: domain.PlatformMeta, Active: true},
		{ID: "ACC002", BrandID: "BRD001", Platform: domain.PlatformGoogle, Active: true},
		{ID: "ACC003", BrandID: "BRD001", Platform: domain.PlatformTikTok, Active: true},
	}
}

func TestService_Sync_FalhaParcial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return(testAccounts(), nil)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformMeta, "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: true}, nil)
	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformGoogle, "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: true}, nil)
	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformTikTok, "aurora", gomock.Any()).
		Return(nil, errors.New("timeout na plataforma"))

	recalcCalls := 0
	recalc := func(ctx context.Context, period domain.Period) error {
		recalcCalls++
		return nil
	}

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, recalc, 3)

	summary, err := service.Sync(context.Background(), testPeriod())

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailCount)
	assert.Equal(t, domain.SyncStatePartiallyFailed, summary.State)
	assert.Len(t, summary.Outcomes, 3)
	assert.Len(t, summary.Failures, 1)
	assert.Equal(t, "TikTok Ads", summary.Failures[0].PlatformLabel)
	assert.Equal(t, "timeout na plataforma", summary.FirstError)

	// Reprocessamento roda mesmo com falha parcial
	assert.Equal(t, 1, recalcCalls)
}

func TestService_Sync_TodasComSucesso(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return(testAccounts(), nil)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), gomock.Any(), "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: true}, nil).
		Times(3)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	summary, err := service.Sync(context.Background(), testPeriod())

	assert.NoError(t, err)
	assert.Equal(t, domain.SyncStateCompleted, summary.State)
	assert.Equal(t, 3, summary.SuccessCount)
	assert.Equal(t, 0, summary.FailCount)
	// Toda tarefa aparece no resumo, sucesso mais falha fecha com o total
	assert.Equal(t, len(testAccounts()), summary.SuccessCount+summary.FailCount)
	assert.Empty(t, summary.Failures)
	assert.Empty(t, summary.FirstError)
}

func TestService_Sync_RespostaRecusada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return([]*domain.AdAccount{
		{ID: "ACC001", BrandID: "BRD001", Platform: domain.PlatformMeta, Active: true},
	}, nil)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformMeta, "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: false, Message: "token expirado"}, nil)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	summary, err := service.Sync(context.Background(), testPeriod())

	assert.NoError(t, err)
	assert.Equal(t, domain.SyncStatePartiallyFailed, summary.State)
	assert.Equal(t, 1, summary.FailCount)
	assert.Equal(t, "token expirado", summary.FirstError)
}

func TestService_Sync_NadaParaSincronizar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return([]*domain.AdAccount{}, nil)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	summary, err := service.Sync(context.Background(), testPeriod())

	assert.ErrorIs(t, err, ErrNothingToSync)
	assert.Nil(t, summary)
}

func TestService_Sync_ContaDeMarcaDesconhecidaEhIgnorada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return([]*domain.AdAccount{
		{ID: "ACC001", BrandID: "BRD001", Platform: domain.PlatformMeta, Active: true},
		{ID: "ACC999", BrandID: "BRD999", Platform: domain.PlatformGoogle, Active: true},
	}, nil)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformMeta, "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: true}, nil)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	summary, err := service.Sync(context.Background(), testPeriod())

	assert.NoError(t, err)
	assert.Len(t, summary.Outcomes, 1)
}

func TestService_Sync_ChamadaReentranteEhRejeitada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return([]*domain.AdAccount{
		{ID: "ACC001", BrandID: "BRD001", Platform: domain.PlatformMeta, Active: true},
	}, nil)

	started := make(chan struct{})
	release := make(chan struct{})

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformMeta, "aurora", gomock.Any()).
		DoAndReturn(func(ctx context.Context, platform domain.AdPlatform, brandCode string, period domain.Period) (*adsync.SyncResult, error) {
			close(started)
			<-release
			return &adsync.SyncResult{Success: true}, nil
		})

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		summary, err := service.Sync(context.Background(), testPeriod())
		assert.NoError(t, err)
		assert.Equal(t, 1, summary.SuccessCount)
	}()

	// Esperar a primeira sincronização estar de fato em andamento
	<-started

	summary, err := service.Sync(context.Background(), testPeriod())
	assert.ErrorIs(t, err, ErrSyncAlreadyRunning)
	assert.Nil(t, summary)

	close(release)
	wg.Wait()
}

func TestService_AutoSyncOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	// Uma consulta para verificar se há o que sincronizar e outra dentro do
	// próprio Sync
	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil).Times(2)
	mockAdAccountRepo.EXPECT().ListActive().Return([]*domain.AdAccount{
		{ID: "ACC001", BrandID: "BRD001", Platform: domain.PlatformMeta, Active: true},
	}, nil).Times(2)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformMeta, "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: true}, nil)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	service.AutoSyncOnce(context.Background(), testPeriod())

	// Segunda chamada não dispara nada (nenhuma expectativa extra nos mocks)
	service.AutoSyncOnce(context.Background(), testPeriod())
}

func TestService_AutoSyncOnce_NaoDisparaDepoisDeSyncManual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return([]*domain.AdAccount{
		{ID: "ACC001", BrandID: "BRD001", Platform: domain.PlatformMeta, Active: true},
	}, nil)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), domain.PlatformMeta, "aurora", gomock.Any()).
		Return(&adsync.SyncResult{Success: true}, nil)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	_, err := service.Sync(context.Background(), testPeriod())
	assert.NoError(t, err)

	// Depois de uma sincronização manual a automática nunca dispara
	service.AutoSyncOnce(context.Background(), testPeriod())
}

func TestService_Status_DuranteSincronizacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	mockBrandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	mockAdAccountRepo.EXPECT().ListActive().Return(testAccounts(), nil)

	mockSyncer.EXPECT().
		SyncAdSpend(gomock.Any(), gomock.Any(), "aurora", gomock.Any()).
		DoAndReturn(func(ctx context.Context, platform domain.AdPlatform, brandCode string, period domain.Period) (*adsync.SyncResult, error) {
			time.Sleep(20 * time.Millisecond)
			return &adsync.SyncResult{Success: true}, nil
		}).
		Times(3)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 3)

	done := make(chan struct{})
	go func() {
		defer close(done)
		summary, err := service.Sync(context.Background(), testPeriod())
		assert.NoError(t, err)
		assert.Equal(t, 3, summary.SuccessCount)
	}()

	// Consultar o status enquanto a sincronização está em andamento não pode
	// disputar com as escritas internas do Sync
	for {
		select {
		case <-done:
			status := service.Status()
			assert.Equal(t, false, status["sync_running"])
			return
		default:
			service.Status()
		}
	}
}

func TestService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockAdAccountRepo := mocks.NewMockAdAccountRepository(ctrl)
	mockSyncer := adsyncmocks.NewMockSyncer(ctrl)

	service := NewService(mockBrandRepo, mockAdAccountRepo, mockSyncer, nil, 5)

	status := service.Status()

	assert.Equal(t, domain.SyncStateIdle, status["state"])
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, 5, status["max_concurrent"])
}
