package aggregating

import (
	"sort"

	"github.com/vfg2006/profit-manager-api/internal/domain"
	"github.com/vfg2006/profit-manager-api/internal/usecases/classifying"
	"github.com/vfg2006/profit-manager-api/pkg/utils"
)

// Service implementa a interface Aggregator
type Service struct {
	classifier classifying.Classifier
}

// NewService cria o agregador de períodos usando o classificador de marcas
func NewService(classifier classifying.Classifier) *Service {
	return &Service{
		classifier: classifier,
	}
}

// Aggregate calcula os totais financeiros de uma marca dentro do período.
// Pedidos não atribuídos à marca são ignorados; o gasto de anúncios entra
// depois, pelo motor de regras de custo.
func (s *Service) Aggregate(
	orders []*domain.Order,
	brand *domain.Brand,
	period domain.Period,
	settings *domain.ProfitSettings,
) *domain.BrandStats {
	stats := &domain.BrandStats{
		BrandCode: brand.Code,
		BrandName: brand.Name,
	}

	var revenue, cost, channelFee, shippingFee float64
	orderCount := 0

	for _, order := range orders {
		if order == nil || !period.Contains(order.OrderDate) {
			continue
		}

		if s.classifier.Classify(order) != brand.Code {
			continue
		}

		revenue += order.TotalPrice
		cost += order.CostPrice * float64(order.Quantity)
		channelFee += order.ChannelFee
		shippingFee += order.ShippingFee
		orderCount++
	}

	stats.Revenue = utils.RoundWithTwoDecimalPlace(revenue)
	stats.OrderCount = orderCount
	stats.Cost = utils.RoundWithTwoDecimalPlace(cost)
	stats.ChannelFee = utils.RoundWithTwoDecimalPlace(channelFee)
	stats.ShippingFee = utils.RoundWithTwoDecimalPlace(shippingFee)

	// Ticket médio, protegido contra divisão por zero
	if orderCount > 0 {
		stats.AvgOrderValue = utils.RoundWithTwoDecimalPlace(revenue / float64(orderCount))
	}

	// Imposto aplicado como dedução direta sobre a receita, usando a
	// alíquota configurada
	vatAmount := revenue * settings.VATFraction()
	stats.VATAmount = utils.RoundWithTwoDecimalPlace(vatAmount)

	grossProfit := revenue - cost - vatAmount
	stats.GrossProfit = utils.RoundWithTwoDecimalPlace(grossProfit)
	if revenue > 0 {
		stats.GrossProfitRate = utils.RoundWithTwoDecimalPlace(grossProfit / revenue * 100)
	}

	// Lucro de contribuição base: sem gasto de anúncios e sem custos
	// variáveis, que entram no nível final calculado pelo motor de custos
	contributionProfit := grossProfit - channelFee - shippingFee
	stats.ContributionProfit = utils.RoundWithTwoDecimalPlace(contributionProfit)
	if revenue > 0 {
		stats.ContributionProfitRate = utils.RoundWithTwoDecimalPlace(contributionProfit / revenue * 100)
	}

	return stats
}

// PreviousPeriod retorna o período anterior de mesmo tamanho, terminando no
// dia imediatamente anterior ao início do período atual
func (s *Service) PreviousPeriod(period domain.Period) domain.Period {
	return period.Previous()
}

// Compare calcula as variações percentuais entre dois períodos. Quando o
// período anterior é zero a variação é 0, nunca infinito.
func (s *Service) Compare(current, previous *domain.BrandStats) *domain.PeriodComparison {
	if current == nil || previous == nil {
		return nil
	}

	return &domain.PeriodComparison{
		RevenueDelta:            utils.RoundWithTwoDecimalPlace(domain.DeltaPercent(current.Revenue, previous.Revenue)),
		OrderCountDelta:         utils.RoundWithTwoDecimalPlace(domain.DeltaPercent(float64(current.OrderCount), float64(previous.OrderCount))),
		AvgOrderValueDelta:      utils.RoundWithTwoDecimalPlace(domain.DeltaPercent(current.AvgOrderValue, previous.AvgOrderValue)),
		GrossProfitDelta:        utils.RoundWithTwoDecimalPlace(domain.DeltaPercent(current.GrossProfit, previous.GrossProfit)),
		ContributionProfitDelta: utils.RoundWithTwoDecimalPlace(domain.DeltaPercent(current.ContributionProfit, previous.ContributionProfit)),
	}
}

// channelAccumulator acompanha os totais de um canal durante a agregação
type channelAccumulator struct {
	total      float64
	orderCount int
	byBrand    map[string]float64
}

// ChannelBreakdown agrupa todos os pedidos do período por canal de venda,
// independente da atribuição de marca. Pedidos sem marca entram no balde
// "unattributed" de cada canal.
func (s *Service) ChannelBreakdown(orders []*domain.Order, period domain.Period) []*domain.ChannelRow {
	accumulators := make(map[domain.SalesChannel]*channelAccumulator)

	grandTotal := 0.0

	for _, order := range orders {
		if order == nil || !period.Contains(order.OrderDate) {
			continue
		}

		acc, exists := accumulators[order.Channel]
		if !exists {
			acc = &channelAccumulator{
				byBrand: make(map[string]float64),
			}
			accumulators[order.Channel] = acc
		}

		brandCode := s.classifier.Classify(order)

		acc.total += order.TotalPrice
		acc.orderCount++
		acc.byBrand[brandCode] += order.TotalPrice
		grandTotal += order.TotalPrice
	}

	rows := make([]*domain.ChannelRow, 0, len(accumulators))
	for channel, acc := range accumulators {
		row := &domain.ChannelRow{
			Channel:    channel,
			Total:      utils.RoundWithTwoDecimalPlace(acc.total),
			OrderCount: acc.orderCount,
			ByBrand:    make(map[string]float64, len(acc.byBrand)),
		}

		for brandCode, total := range acc.byBrand {
			row.ByBrand[brandCode] = utils.RoundWithTwoDecimalPlace(total)
		}

		// Participação no total geral, protegida contra divisão por zero
		if grandTotal > 0 {
			row.Share = utils.RoundWithTwoDecimalPlace(acc.total / grandTotal * 100)
		}

		rows = append(rows, row)
	}

	// Ordenação decrescente por total; empate decidido pelo código do canal
	// para manter o resultado determinístico
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Channel < rows[j].Channel
	})

	return rows
}
