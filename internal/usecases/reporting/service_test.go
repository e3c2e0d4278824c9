package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/profit-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/costing"
	"go.uber.org/mock/gomock"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func testFilters() *domain.DashboardFilters {
	return &domain.DashboardFilters{
		StartDate: timePtr(day(8)),
		EndDate:   timePtr(day(14)),
	}
}

func testBrands() []*domain.Brand {
	return []*domain.Brand{
		{ID: "BRD001", Code: "aurora", Name: "Aurora Cosméticos", Aliases: []string{"aurora"}, Active: true},
		{ID: "BRD002", Code: "lumina", Name: "Lumina Skincare", Aliases: []string{"lumina"}, Active: true},
	}
}

type fixture struct {
	orderRepo    *mocks.MockOrderRepository
	brandRepo    *mocks.MockBrandRepository
	adSpendRepo  *mocks.MockAdSpendRepository
	settingsRepo *mocks.MockProfitSettingsRepository
	service      *Service
}

func newFixture(t *testing.T) (*fixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	f := &fixture{
		orderRepo:    mocks.NewMockOrderRepository(ctrl),
		brandRepo:    mocks.NewMockBrandRepository(ctrl),
		adSpendRepo:  mocks.NewMockAdSpendRepository(ctrl),
		settingsRepo: mocks.NewMockProfitSettingsRepository(ctrl),
	}

	f.service = NewService(f.orderRepo, f.brandRepo, f.adSpendRepo, costing.NewService(f.settingsRepo))

	return f, ctrl
}

func TestService_GetDashboard(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	f.brandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	f.settingsRepo.EXPECT().Get().Return(&domain.ProfitSettings{VATEnabled: true, VATRate: 10}, nil)

	currentOrders := []*domain.Order{
		{
			Channel:     domain.ChannelMercadoLivre,
			ProductName: "Creme aurora",
			TotalPrice:  1000,
			CostPrice:   400,
			Quantity:    1,
			ChannelFee:  50,
			ShippingFee: 20,
			OrderDate:   day(9),
		},
		{
			Channel:     domain.ChannelShopee,
			ProductName: "Produto genérico",
			TotalPrice:  200,
			CostPrice:   100,
			Quantity:    1,
			OrderDate:   day(10),
		},
	}
	previousOrders := []*domain.Order{
		{
			Channel:     domain.ChannelMercadoLivre,
			ProductName: "Creme aurora",
			TotalPrice:  500,
			CostPrice:   200,
			Quantity:    1,
			OrderDate:   day(2),
		},
	}

	gomock.InOrder(
		f.orderRepo.EXPECT().ListByPeriod(domain.NewPeriod(day(8), day(14))).Return(currentOrders, nil),
		f.orderRepo.EXPECT().ListByPeriod(domain.NewPeriod(day(1), day(7))).Return(previousOrders, nil),
	)

	f.adSpendRepo.EXPECT().
		SumByPlatform("BRD001", gomock.Any()).
		Return([]*domain.PlatformSpend{
			{Platform: domain.PlatformMeta, Spend: 100},
			{Platform: domain.PlatformGoogle, Spend: 30},
		}, nil)
	f.adSpendRepo.EXPECT().
		SumByPlatform("BRD002", gomock.Any()).
		Return(nil, nil)

	response, err := f.service.GetDashboard(context.Background(), testFilters())

	assert.NoError(t, err)
	assert.Len(t, response.Brands, 2)
	assert.Len(t, response.Channels, 2)

	aurora := response.Brands[0]
	assert.Equal(t, "aurora", aurora.Stats.BrandCode)
	assert.Equal(t, 1000.0, aurora.Stats.Revenue)
	assert.Equal(t, 130.0, aurora.Stats.AdCost)
	assert.Equal(t, 430.0, aurora.Stats.ContributionProfit)
	// Nível final da cascata desconta o gasto de anúncios
	assert.Equal(t, 300.0, aurora.FinalProfit.ContributionProfit)
	assert.Equal(t, 500.0, aurora.Previous.Revenue)
	assert.Equal(t, 100.0, aurora.Comparison.RevenueDelta)

	// Canais incluem o pedido não atribuído; marcas não
	assert.Equal(t, 1200.0, response.TotalRevenue)
	assert.Equal(t, 200.0, response.UnattributedRevenue)

	assert.Equal(t, domain.NewPeriod(day(1), day(7)), response.PreviousPeriod)
}

func TestService_GetDashboard_FiltroDeMarca(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	f.brandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	f.settingsRepo.EXPECT().Get().Return(domain.DefaultProfitSettings(), nil)
	f.orderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(nil, nil).Times(2)
	f.adSpendRepo.EXPECT().SumByPlatform("BRD002", gomock.Any()).Return(nil, nil)

	filters := testFilters()
	filters.BrandCode = "lumina"

	response, err := f.service.GetDashboard(context.Background(), filters)

	assert.NoError(t, err)
	assert.Len(t, response.Brands, 1)
	assert.Equal(t, "lumina", response.Brands[0].Stats.BrandCode)
}

func TestService_GetDashboard_FiltroDeCanal(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	f.brandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	f.settingsRepo.EXPECT().Get().Return(domain.DefaultProfitSettings(), nil)

	mlOrders := []*domain.Order{
		{
			Channel:     domain.ChannelMercadoLivre,
			ProductName: "Creme aurora",
			TotalPrice:  300,
			CostPrice:   100,
			Quantity:    1,
			OrderDate:   day(9),
		},
	}

	// Com o filtro de canal, a consulta restrita ao canal é usada para o
	// período atual e para o anterior
	gomock.InOrder(
		f.orderRepo.EXPECT().
			ListByPeriodAndChannel(domain.NewPeriod(day(8), day(14)), domain.ChannelMercadoLivre).
			Return(mlOrders, nil),
		f.orderRepo.EXPECT().
			ListByPeriodAndChannel(domain.NewPeriod(day(1), day(7)), domain.ChannelMercadoLivre).
			Return(nil, nil),
	)

	f.adSpendRepo.EXPECT().SumByPlatform(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	filters := testFilters()
	filters.Channel = domain.ChannelMercadoLivre

	response, err := f.service.GetDashboard(context.Background(), filters)

	assert.NoError(t, err)
	assert.Len(t, response.Channels, 1)
	assert.Equal(t, domain.ChannelMercadoLivre, response.Channels[0].Channel)
	assert.Equal(t, 300.0, response.TotalRevenue)
}

func TestService_GetDashboard_Erros(t *testing.T) {
	tests := []struct {
		name     string
		filters  *domain.DashboardFilters
		setup    func(f *fixture)
		expected error
	}{
		{
			name:     "Filtro sem datas",
			filters:  &domain.DashboardFilters{},
			setup:    func(f *fixture) {},
			expected: ErrInvalidPeriod,
		},
		{
			name:    "Nenhuma marca ativa cadastrada",
			filters: testFilters(),
			setup: func(f *fixture) {
				f.brandRepo.EXPECT().ListActiveBrands().Return(nil, nil)
			},
			expected: ErrNoBrands,
		},
		{
			name: "Marca do filtro não existe",
			filters: &domain.DashboardFilters{
				StartDate: timePtr(day(8)),
				EndDate:   timePtr(day(14)),
				BrandCode: "inexistente",
			},
			setup: func(f *fixture) {
				f.brandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
			},
			expected: ErrBrandNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ctrl := newFixture(t)
			defer ctrl.Finish()

			tt.setup(f)

			response, err := f.service.GetDashboard(context.Background(), tt.filters)

			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, response)
		})
	}
}

func TestService_GetDashboard_FalhaDeConsultaEhPropagada(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	f.brandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	f.settingsRepo.EXPECT().Get().Return(domain.DefaultProfitSettings(), nil)
	f.orderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	response, err := f.service.GetDashboard(context.Background(), testFilters())

	// Falha de consulta é erro duro, sem fallback silencioso
	assert.Error(t, err)
	assert.Nil(t, response)
}

func TestService_Recalculate(t *testing.T) {
	f, ctrl := newFixture(t)
	defer ctrl.Finish()

	f.brandRepo.EXPECT().ListActiveBrands().Return(testBrands(), nil)
	f.settingsRepo.EXPECT().Get().Return(domain.DefaultProfitSettings(), nil)
	f.orderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(nil, nil).Times(2)
	f.adSpendRepo.EXPECT().SumByPlatform(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	err := f.service.Recalculate(context.Background(), domain.NewPeriod(day(8), day(14)))

	assert.NoError(t, err)
}
