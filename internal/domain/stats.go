package domain

// BrandStats são os números derivados de uma marca em um período. São
// recalculados a cada requisição e nunca persistidos.
type BrandStats struct {
	BrandCode              string  `json:"brand_code"`
	BrandName              string  `json:"brand_name"`
	Revenue                float64 `json:"revenue"`
	OrderCount             int     `json:"order_count"`
	AvgOrderValue          float64 `json:"avg_order_value"`
	Cost                   float64 `json:"cost"`
	ChannelFee             float64 `json:"channel_fee"`
	ShippingFee            float64 `json:"shipping_fee"`
	VATAmount              float64 `json:"vat_amount"`
	GrossProfit            float64 `json:"gross_profit"`
	GrossProfitRate        float64 `json:"gross_profit_rate"`
	AdCost                 float64 `json:"ad_cost"`
	ContributionProfit     float64 `json:"contribution_profit"`
	ContributionProfitRate float64 `json:"contribution_profit_rate"`
}

// FinalProfit são os níveis finais da cascata de lucro depois da aplicação
// das regras de custo (custos variáveis, custos fixos rateados e imposto
// sobre custo fixo)
type FinalProfit struct {
	ContributionProfit     float64 `json:"contribution_profit"`
	ContributionProfitRate float64 `json:"contribution_profit_rate"`
	TotalVariableCost      float64 `json:"total_variable_cost"`
	ProratedFixedCost      float64 `json:"prorated_fixed_cost"`
	FixedCostVAT           float64 `json:"fixed_cost_vat"`
	NetProfit              float64 `json:"net_profit"`
	NetProfitRate          float64 `json:"net_profit_rate"`
}

// PeriodComparison traz as variações percentuais entre o período atual e o
// período anterior de mesmo tamanho
type PeriodComparison struct {
	RevenueDelta            float64 `json:"revenue_delta"`
	OrderCountDelta         float64 `json:"order_count_delta"`
	AvgOrderValueDelta      float64 `json:"avg_order_value_delta"`
	GrossProfitDelta        float64 `json:"gross_profit_delta"`
	ContributionProfitDelta float64 `json:"contribution_profit_delta"`
}

// DeltaPercent calcula a variação percentual entre dois valores. Quando o
// valor anterior é zero o resultado é 0 (nunca divisão por zero ou infinito).
func DeltaPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
