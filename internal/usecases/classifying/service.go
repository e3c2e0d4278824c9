package classifying

import (
	"strings"

	"github.com/vfg2006/profit-manager-api/internal/domain"
)

// Classifier atribui um pedido a uma marca. A referência explícita de marca
// no pedido sempre vence; na ausência dela a classificação é feita por
// apelidos (aliases) no nome do produto.
type Classifier interface {
	Classify(order *domain.Order) string
}

// Service implementa a interface Classifier sobre o cadastro de marcas
type Service struct {
	brands  []*domain.Brand
	brandID map[string]*domain.Brand
}

// NewService cria um classificador a partir da lista de marcas. A ordem das
// marcas determina a ordem de avaliação dos apelidos; mudar essa ordem muda
// números de relatórios históricos.
func NewService(brands []*domain.Brand) *Service {
	brandByID := make(map[string]*domain.Brand, len(brands))
	for _, brand := range brands {
		brandByID[brand.ID] = brand
	}

	return &Service{
		brands:  brands,
		brandID: brandByID,
	}
}

// Classify retorna o código da marca do pedido, ou domain.UnattributedBrand
// quando nenhuma marca pode ser atribuída.
func (s *Service) Classify(order *domain.Order) string {
	if order == nil {
		return domain.UnattributedBrand
	}

	// A referência explícita tem precedência incondicional sobre os apelidos
	if order.BrandID != nil && *order.BrandID != "" {
		if brand, ok := s.brandID[*order.BrandID]; ok {
			return brand.Code
		}
	}

	productName := strings.ToLower(order.ProductName)
	if productName == "" {
		return domain.UnattributedBrand
	}

	// Primeiro apelido que casar vence, na ordem do cadastro
	for _, brand := range s.brands {
		for _, alias := range brand.Aliases {
			if alias == "" {
				continue
			}
			if strings.Contains(productName, strings.ToLower(alias)) {
				return brand.Code
			}
		}
	}

	return domain.UnattributedBrand
}
