package classifying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func testBrands() []*domain.Brand {
	return []*domain.Brand{
		{
			ID:      "BRD001",
			Code:    "aurora",
			Name:    "Aurora Cosméticos",
			Aliases: []string{"aurora", "avrora"},
			Active:  true,
		},
		{
			ID:      "BRD002",
			Code:    "lumina",
			Name:    "Lumina Skincare",
			Aliases: []string{"lumina", "lvmina"},
			Active:  true,
		},
	}
}

func TestService_Classify(t *testing.T) {
	service := NewService(testBrands())

	tests := []struct {
		name     string
		order    *domain.Order
		expected string
	}{
		{
			name:     "Pedido nulo é não atribuído",
			order:    nil,
			expected: domain.UnattributedBrand,
		},
		{
			name: "Referência explícita resolve direto pelo cadastro",
			order: &domain.Order{
				BrandID:     stringPtr("BRD002"),
				ProductName: "Sérum Facial",
			},
			expected: "lumina",
		},
		{
			name: "Referência explícita vence o apelido de outra marca",
			order: &domain.Order{
				BrandID:     stringPtr("BRD001"),
				ProductName: "Kit Lumina Hidratante",
			},
			expected: "aurora",
		},
		{
			name: "Apelido casa sem diferenciar maiúsculas",
			order: &domain.Order{
				ProductName: "Creme AURORA Noturno",
			},
			expected: "aurora",
		},
		{
			name: "Apelido transliterado também casa",
			order: &domain.Order{
				ProductName: "Máscara lvmina renovadora",
			},
			expected: "lumina",
		},
		{
			name: "Primeiro apelido que casa vence, na ordem do cadastro",
			order: &domain.Order{
				ProductName: "Combo aurora + lumina",
			},
			expected: "aurora",
		},
		{
			name: "Sem referência e sem apelido é não atribuído",
			order: &domain.Order{
				ProductName: "Nécessaire Transparente",
			},
			expected: domain.UnattributedBrand,
		},
		{
			name: "Nome de produto vazio é não atribuído",
			order: &domain.Order{
				ProductName: "",
			},
			expected: domain.UnattributedBrand,
		},
		{
			name: "Referência explícita desconhecida cai para os apelidos",
			order: &domain.Order{
				BrandID:     stringPtr("BRD999"),
				ProductName: "Creme aurora",
			},
			expected: "aurora",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Classify(tt.order))
		})
	}
}

func TestService_Classify_OrdemDoCadastroMudaResultado(t *testing.T) {
	brands := testBrands()

	// Invertendo a ordem do cadastro, o combo que casa com as duas marcas
	// passa a ser atribuído à outra
	reversed := []*domain.Brand{brands[1], brands[0]}
	service := NewService(reversed)

	order := &domain.Order{ProductName: "Combo aurora + lumina"}
	assert.Equal(t, "lumina", service.Classify(order))
}
