package domain

import (
	"time"
)

// DashboardFilters são os filtros aceitos pelas consultas de dashboard
type DashboardFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	BrandCode string
	Channel   SalesChannel
}

// Period monta o período normalizado a partir dos filtros
func (f *DashboardFilters) Period() Period {
	if f == nil || f.StartDate == nil || f.EndDate == nil {
		return Period{}
	}
	return NewPeriod(*f.StartDate, *f.EndDate)
}
