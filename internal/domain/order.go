package domain

import (
	"time"
)

// SalesChannel identifica o marketplace/loja onde o pedido foi realizado
type SalesChannel string

const (
	ChannelMercadoLivre SalesChannel = "mercadolivre"
	ChannelShopee       SalesChannel = "shopee"
	ChannelAmazon       SalesChannel = "amazon"
	ChannelMagalu       SalesChannel = "magalu"
	ChannelOwnStore     SalesChannel = "site"
)

// Order representa um registro de pedido vindo da loja (somente leitura).
// O motor de agregação nunca modifica pedidos.
type Order struct {
	ID          string       `json:"id"`
	Channel     SalesChannel `json:"channel"`
	BrandID     *string      `json:"brand_id,omitempty"`
	ProductName string       `json:"product_name"`
	UnitPrice   float64      `json:"unit_price"`
	TotalPrice  float64      `json:"total_price"`
	CostPrice   float64      `json:"cost_price"`
	Quantity    int          `json:"quantity"`
	ChannelFee  float64      `json:"channel_fee"`
	ShippingFee float64      `json:"shipping_fee"`
	OrderDate   time.Time    `json:"order_date"`
}
