package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/profit-manager-api/infrastructure/repository"
	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/pkg/utils"
)

// Engine aplica as regras de custo configuradas sobre os totais agregados e
// expõe a leitura e a atualização das configurações de lucro
type Engine interface {
	ApplyCostRules(stats *domain.BrandStats, adCost float64, settings *domain.ProfitSettings, rangeDays int) *domain.FinalProfit
	GetSettings(ctx context.Context) (*domain.ProfitSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.ProfitSettings) (*domain.ProfitSettings, error)
}

// Service implementa a interface Engine
type Service struct {
	settingsRepository repository.ProfitSettingsRepository
}

// NewService cria o motor de regras de custo
func NewService(settingsRepository repository.ProfitSettingsRepository) *Service {
	return &Service{
		settingsRepository: settingsRepository,
	}
}

// ApplyCostRules calcula os níveis finais da cascata de lucro: custos
// variáveis, gasto de anúncios, custos fixos rateados e imposto sobre custo
// fixo. Os custos fixos mensais são rateados por rangeDays/30, usando um mês
// comercial de 30 dias.
func (s *Service) ApplyCostRules(
	stats *domain.BrandStats,
	adCost float64,
	settings *domain.ProfitSettings,
	rangeDays int,
) *domain.FinalProfit {
	if stats == nil {
		return nil
	}

	totalVariableCost := 0.0
	for _, cost := range settings.VariableCosts {
		if !cost.Active {
			continue
		}

		switch cost.Kind {
		case domain.CostKindPercentOfRevenue:
			totalVariableCost += stats.Revenue * cost.Value / 100
		case domain.CostKindFixedPerOrder:
			totalVariableCost += cost.Value * float64(stats.OrderCount)
		}
	}

	contributionProfit := stats.ContributionProfit - adCost - totalVariableCost

	proratedFixedCost := 0.0
	if rangeDays > 0 {
		for _, cost := range settings.FixedCosts {
			if !cost.Active {
				continue
			}
			proratedFixedCost += cost.MonthlyAmount * float64(rangeDays) / 30
		}
	}

	fixedCostVAT := 0.0
	if settings.FixedCostVATEnabled {
		fixedCostVAT = proratedFixedCost * settings.VATFraction()
	}

	netProfit := contributionProfit - proratedFixedCost - fixedCostVAT

	final := &domain.FinalProfit{
		ContributionProfit: utils.RoundWithTwoDecimalPlace(contributionProfit),
		TotalVariableCost:  utils.RoundWithTwoDecimalPlace(totalVariableCost),
		ProratedFixedCost:  utils.RoundWithTwoDecimalPlace(proratedFixedCost),
		FixedCostVAT:       utils.RoundWithTwoDecimalPlace(fixedCostVAT),
		NetProfit:          utils.RoundWithTwoDecimalPlace(netProfit),
	}

	// Margens protegidas contra divisão por zero, como na agregação
	if stats.Revenue > 0 {
		final.ContributionProfitRate = utils.RoundWithTwoDecimalPlace(contributionProfit / stats.Revenue * 100)
		final.NetProfitRate = utils.RoundWithTwoDecimalPlace(netProfit / stats.Revenue * 100)
	}

	return final
}

// GetSettings retorna as configurações de lucro vigentes. Quando nada foi
// salvo ainda o repositório devolve as configurações padrão.
func (s *Service) GetSettings(ctx context.Context) (*domain.ProfitSettings, error) {
	settings, err := s.settingsRepository.Get()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar configurações de lucro: %w", err)
	}

	return settings, nil
}

// UpdateSettings valida e persiste as configurações de lucro. Entradas novas
// de custo recebem um identificador curto gerado no servidor.
func (s *Service) UpdateSettings(ctx context.Context, settings *domain.ProfitSettings) (*domain.ProfitSettings, error) {
	if settings == nil {
		return nil, fmt.Errorf("configurações de lucro não informadas")
	}

	if settings.VATRate < 0 || settings.VATRate > 100 {
		return nil, fmt.Errorf("alíquota de imposto inválida: %.2f", settings.VATRate)
	}

	for i := range settings.VariableCosts {
		cost := &settings.VariableCosts[i]

		if cost.Name == "" {
			return nil, fmt.Errorf("custo variável sem nome")
		}

		if !cost.Kind.Valid() {
			return nil, fmt.Errorf("tipo de custo variável inválido: %s", cost.Kind)
		}

		if cost.Value < 0 {
			return nil, fmt.Errorf("custo variável %q com valor negativo", cost.Name)
		}

		if cost.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar identificador de custo variável: %w", err)
			}
			cost.ID = id
		}
	}

	for i := range settings.FixedCosts {
		cost := &settings.FixedCosts[i]

		if cost.Name == "" {
			return nil, fmt.Errorf("custo fixo sem nome")
		}

		if cost.MonthlyAmount < 0 {
			return nil, fmt.Errorf("custo fixo %q com valor negativo", cost.Name)
		}

		if cost.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar identificador de custo fixo: %w", err)
			}
			cost.ID = id
		}
	}

	settings.UpdatedAt = time.Now()

	if err := s.settingsRepository.Save(settings); err != nil {
		return nil, fmt.Errorf("erro ao salvar configurações de lucro: %w", err)
	}

	return settings, nil
}
