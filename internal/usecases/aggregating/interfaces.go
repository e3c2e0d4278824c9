package aggregating

import (
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

// Aggregator transforma pedidos + período em totais financeiros por marca e
// na quebra de receita por canal. Computação pura, sem estado escondido:
// duas chamadas com as mesmas entradas produzem o mesmo resultado.
type Aggregator interface {
	Aggregate(orders []*domain.Order, brand *domain.Brand, period domain.Period, settings *domain.ProfitSettings) *domain.BrandStats
	PreviousPeriod(period domain.Period) domain.Period
	Compare(current, previous *domain.BrandStats) *domain.PeriodComparison
	ChannelBreakdown(orders []*domain.Order, period domain.Period) []*domain.ChannelRow
}
