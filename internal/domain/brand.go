package domain

import (
	"time"
)

// UnattributedBrand é o código reservado para pedidos que não puderam ser
// atribuídos a nenhuma marca conhecida. Esses pedidos entram nos totais por
// canal, mas nunca nos números de nenhuma marca.
const UnattributedBrand = "unattributed"

// Brand representa uma marca/linha de produtos cujo faturamento é
// acompanhado separadamente
type Brand struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Aliases   []string  `json:"aliases"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
