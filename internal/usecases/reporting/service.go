package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/profit-manager-api/infrastructure/repository"
	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/aggregating"
	"github.com/vfg2006/profit-manager-api/internal/usecases/classifying"
	"github.com/vfg2006/profit-manager-api/internal/usecases/costing"
	"github.com/vfg2006/profit-manager-api/pkg/utils"
)

var (
	// ErrInvalidPeriod indica que o intervalo de datas do filtro é inválido
	ErrInvalidPeriod = errors.New("intervalo de datas inválido")

	// ErrNoBrands indica que não há marcas ativas cadastradas. Sem marcas o
	// dashboard não tem o que calcular.
	ErrNoBrands = errors.New("nenhuma marca ativa cadastrada")

	// ErrBrandNotFound indica que a marca do filtro não existe ou está inativa
	ErrBrandNotFound = errors.New("marca não encontrada")
)

// Reporter monta o dashboard de lucro multimarcas a partir dos pedidos, das
// regras de custo e do gasto de anúncios sincronizado
type Reporter interface {
	GetDashboard(ctx context.Context, filters *domain.DashboardFilters) (*domain.DashboardResponse, error)
	Recalculate(ctx context.Context, period domain.Period) error
}

// Service implementa a interface Reporter
type Service struct {
	orderRepo   repository.OrderRepository
	brandRepo   repository.BrandRepository
	adSpendRepo repository.AdSpendRepository
	costEngine  costing.Engine
}

// NewService cria o serviço de relatórios do dashboard
func NewService(
	orderRepo repository.OrderRepository,
	brandRepo repository.BrandRepository,
	adSpendRepo repository.AdSpendRepository,
	costEngine costing.Engine,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		brandRepo:   brandRepo,
		adSpendRepo: adSpendRepo,
		costEngine:  costEngine,
	}
}

// GetDashboard calcula os números do dashboard para o período filtrado. Tudo
// é recalculado a cada chamada, nada é persistido.
func (s *Service) GetDashboard(ctx context.Context, filters *domain.DashboardFilters) (*domain.DashboardResponse, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, ErrInvalidPeriod
	}

	period := filters.Period()
	if period.Days() == 0 {
		return nil, ErrInvalidPeriod
	}

	brands, err := s.brandRepo.ListActiveBrands()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar marcas ativas: %w", err)
	}

	if len(brands) == 0 {
		return nil, ErrNoBrands
	}

	// O classificador sempre considera todas as marcas ativas, mesmo quando o
	// filtro pede uma marca só. Caso contrário os pedidos das outras marcas
	// inflariam o balde de não atribuídos.
	classifier := classifying.NewService(brands)
	aggregator := aggregating.NewService(classifier)

	selected := brands
	if filters.BrandCode != "" {
		selected = nil
		for _, brand := range brands {
			if brand.Code == filters.BrandCode {
				selected = []*domain.Brand{brand}
				break
			}
		}
		if selected == nil {
			return nil, ErrBrandNotFound
		}
	}

	settings, err := s.costEngine.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.fetchOrders(period, filters.Channel)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos do período: %w", err)
	}

	previousPeriod := aggregator.PreviousPeriod(period)
	previousOrders, err := s.fetchOrders(previousPeriod, filters.Channel)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos do período anterior: %w", err)
	}

	reports := make([]*domain.BrandReport, 0, len(selected))
	for _, brand := range selected {
		report, err := s.buildBrandReport(brand, orders, previousOrders, period, previousPeriod, settings, aggregator)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	channels := aggregator.ChannelBreakdown(orders, period)

	totalRevenue := 0.0
	unattributedRevenue := 0.0
	for _, row := range channels {
		totalRevenue += row.Total
		unattributedRevenue += row.ByBrand[domain.UnattributedBrand]
	}

	return &domain.DashboardResponse{
		Period:              period,
		PreviousPeriod:      previousPeriod,
		Brands:              reports,
		Channels:            channels,
		TotalRevenue:        utils.RoundWithTwoDecimalPlace(totalRevenue),
		UnattributedRevenue: utils.RoundWithTwoDecimalPlace(unattributedRevenue),
		GeneratedAt:         time.Now(),
	}, nil
}

// fetchOrders consulta os pedidos do período, restritos ao canal quando o
// filtro de canal está presente
func (s *Service) fetchOrders(period domain.Period, channel domain.SalesChannel) ([]*domain.Order, error) {
	if channel != "" {
		return s.orderRepo.ListByPeriodAndChannel(period, channel)
	}
	return s.orderRepo.ListByPeriod(period)
}

func (s *Service) buildBrandReport(
	brand *domain.Brand,
	orders, previousOrders []*domain.Order,
	period, previousPeriod domain.Period,
	settings *domain.ProfitSettings,
	aggregator aggregating.Aggregator,
) (*domain.BrandReport, error) {
	stats := aggregator.Aggregate(orders, brand, period, settings)
	previous := aggregator.Aggregate(previousOrders, brand, previousPeriod, settings)
	comparison := aggregator.Compare(stats, previous)

	spends, err := s.adSpendRepo.SumByPlatform(brand.ID, period)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar gasto de anúncios da marca %s: %w", brand.Code, err)
	}

	adCost := domain.TotalSpend(spends)
	stats.AdCost = utils.RoundWithTwoDecimalPlace(adCost)

	final := s.costEngine.ApplyCostRules(stats, adCost, settings, period.Days())

	return &domain.BrandReport{
		Stats:          stats,
		Previous:       previous,
		Comparison:     comparison,
		PlatformSpends: spends,
		FinalProfit:    final,
	}, nil
}

// Recalculate reprocessa os números do período completo. Usado como gancho de
// reprocessamento após a sincronização de gasto de anúncios; o resultado é
// descartado, o objetivo é validar que os dados recém sincronizados agregam
// sem erro.
func (s *Service) Recalculate(ctx context.Context, period domain.Period) error {
	filters := &domain.DashboardFilters{
		StartDate: &period.Start,
		EndDate:   &period.End,
	}

	if _, err := s.GetDashboard(ctx, filters); err != nil {
		return fmt.Errorf("erro ao reprocessar dashboard do período: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"start_date": period.Start.Format(time.DateOnly),
		"end_date":   period.End.Format(time.DateOnly),
	}).Info("Dashboard reprocessado após sincronização de gasto de anúncios")

	return nil
}
