package domain

import (
	"time"
)

// AdPlatform identifica a plataforma de anúncios de onde o gasto é sincronizado
type AdPlatform string

const (
	PlatformMeta   AdPlatform = "meta"
	PlatformGoogle AdPlatform = "google"
	PlatformTikTok AdPlatform = "tiktok"
)

// Label retorna o nome de exibição da plataforma
func (p AdPlatform) Label() string {
	switch p {
	case PlatformMeta:
		return "Meta Ads"
	case PlatformGoogle:
		return "Google Ads"
	case PlatformTikTok:
		return "TikTok Ads"
	default:
		return string(p)
	}
}

// AdAccount representa o vínculo (marca, plataforma) que define quais
// plataformas estão configuradas para cada marca
type AdAccount struct {
	ID        string     `json:"id"`
	BrandID   string     `json:"brand_id"`
	Platform  AdPlatform `json:"platform"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AdSpendRecord representa o gasto diário de anúncios de uma marca em uma
// plataforma. Valores são aditivos dentro de um intervalo de datas.
type AdSpendRecord struct {
	ID        int64      `json:"id"`
	BrandID   string     `json:"brand_id"`
	Platform  AdPlatform `json:"platform"`
	Date      time.Time  `json:"date"`
	Spend     float64    `json:"spend"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PlatformSpend representa o gasto já agregado por plataforma em um período
type PlatformSpend struct {
	Platform AdPlatform `json:"platform"`
	Spend    float64    `json:"spend"`
}

// TotalSpend soma o gasto de todas as plataformas
func TotalSpend(spends []*PlatformSpend) float64 {
	total := 0.0
	for _, s := range spends {
		if s != nil {
			total += s.Spend
		}
	}
	return total
}
