package domain

import (
	"time"
)

// CostKind define como um custo variável é calculado
type CostKind string

const (
	// CostKindPercentOfRevenue aplica o valor como percentual sobre a receita
	CostKindPercentOfRevenue CostKind = "percent_of_revenue"
	// CostKindFixedPerOrder aplica o valor como custo fixo por pedido
	CostKindFixedPerOrder CostKind = "fixed_per_order"
)

// Valid verifica se o tipo de custo é conhecido
func (k CostKind) Valid() bool {
	return k == CostKindPercentOfRevenue || k == CostKindFixedPerOrder
}

// VariableCost é uma regra de custo variável configurável (embalagem,
// taxa de gateway, comissão etc.)
type VariableCost struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Kind   CostKind `json:"kind"`
	Value  float64  `json:"value"`
	Active bool     `json:"active"`
}

// FixedCost é uma regra de custo fixo mensal (aluguel, salários, software)
// rateada pelo tamanho do período consultado
type FixedCost struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MonthlyAmount float64 `json:"monthly_amount"`
	Active        bool    `json:"active"`
}

// ProfitSettings agrupa as regras de custo usadas pelo motor de lucro.
// Somente as operações de configurações alteram esses dados; durante a
// agregação eles são somente leitura.
type ProfitSettings struct {
	VATEnabled          bool           `json:"vat_enabled"`
	VATRate             float64        `json:"vat_rate"`
	VariableCosts       []VariableCost `json:"variable_costs"`
	FixedCosts          []FixedCost    `json:"fixed_costs"`
	FixedCostVATEnabled bool           `json:"fixed_cost_vat_enabled"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// DefaultProfitSettings retorna as configurações usadas quando nada foi
// salvo ainda
func DefaultProfitSettings() *ProfitSettings {
	return &ProfitSettings{
		VATEnabled:          true,
		VATRate:             10,
		VariableCosts:       []VariableCost{},
		FixedCosts:          []FixedCost{},
		FixedCostVATEnabled: false,
	}
}

// VATFraction retorna a alíquota como fração (10% -> 0.10), ou 0 quando o
// imposto está desabilitado
func (s *ProfitSettings) VATFraction() float64 {
	if s == nil || !s.VATEnabled {
		return 0
	}
	return s.VATRate / 100
}
