package domain

import (
	"time"
)

// BrandReport reúne os números de uma marca no período: totais agregados,
// comparação com o período anterior, gasto por plataforma e os níveis finais
// da cascata de lucro
type BrandReport struct {
	Stats          *BrandStats       `json:"stats"`
	Previous       *BrandStats       `json:"previous,omitempty"`
	Comparison     *PeriodComparison `json:"comparison,omitempty"`
	PlatformSpends []*PlatformSpend  `json:"platform_spends,omitempty"`
	FinalProfit    *FinalProfit      `json:"final_profit"`
}

// DashboardResponse é a resposta completa do dashboard de lucro
type DashboardResponse struct {
	Period              Period         `json:"period"`
	PreviousPeriod      Period         `json:"previous_period"`
	Brands              []*BrandReport `json:"brands"`
	Channels            []*ChannelRow  `json:"channels"`
	TotalRevenue        float64        `json:"total_revenue"`
	UnattributedRevenue float64        `json:"unattributed_revenue"`
	GeneratedAt         time.Time      `json:"generated_at"`
}
