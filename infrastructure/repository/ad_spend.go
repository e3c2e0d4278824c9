package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/profit-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

const (
	adSpendsTable = "ad_spends ads"
)

// AdSpendRepository consulta e grava o gasto diário de anúncios por marca e
// plataforma
type AdSpendRepository interface {
	SumByPlatform(brandID string, period domain.Period) ([]*domain.PlatformSpend, error)
	SaveOrUpdate(record *domain.AdSpendRecord) error
}

type adSpendRepository struct {
	conn *postgres.Connection
}

func NewAdSpendRepository(conn *postgres.Connection) AdSpendRepository {
	return &adSpendRepository{
		conn: conn,
	}
}

// SumByPlatform agrega o gasto do período por plataforma. Linhas diárias são
// aditivas dentro do intervalo.
func (r *adSpendRepository) SumByPlatform(brandID string, period domain.Period) ([]*domain.PlatformSpend, error) {
	query, args, err := squirrel.
		Select("ads.platform, COALESCE(SUM(ads.spend), 0) AS total_spend").
		From(adSpendsTable).
		Where(squirrel.Eq{"ads.brand_id": brandID}).
		Where(squirrel.GtOrEq{"ads.date": period.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ads.date": period.End.Format(time.DateOnly)}).
		GroupBy("ads.platform").
		OrderBy("ads.platform ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	spends := make([]*domain.PlatformSpend, 0)
	for rows.Next() {
		spend := &domain.PlatformSpend{}
		var platform string

		if err := rows.Scan(&platform, &spend.Spend); err != nil {
			return nil, fmt.Errorf("erro ao escanear gasto de anúncio: %w", err)
		}

		spend.Platform = domain.AdPlatform(platform)
		spends = append(spends, spend)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return spends, nil
}

func (r *adSpendRepository) SaveOrUpdate(record *domain.AdSpendRecord) error {
	query := squirrel.StatementBuilder.
		Insert("ad_spends").
		Columns("brand_id", "platform", "date", "spend").
		Values(
			record.BrandID,
			string(record.Platform),
			record.Date.Format(time.DateOnly),
			record.Spend,
		).
		Suffix(`
			ON CONFLICT (brand_id, platform, date) DO UPDATE SET
				spend = EXCLUDED.spend,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
