package domain

// ChannelRow é a linha da quebra de receita por canal de venda. Inclui todos
// os pedidos do período, mesmo os não atribuídos a nenhuma marca.
type ChannelRow struct {
	Channel    SalesChannel       `json:"channel"`
	Total      float64            `json:"total"`
	OrderCount int                `json:"order_count"`
	Share      float64            `json:"share"`
	ByBrand    map[string]float64 `json:"by_brand"`
}
