package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/profit-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

const (
	adAccountsTable = "ad_accounts aa"
)

// AdAccountRepository consulta os vínculos (marca, plataforma) que definem
// quais plataformas de anúncio estão configuradas para cada marca
type AdAccountRepository interface {
	ListByBrand(brandID string) ([]*domain.AdAccount, error)
	ListActive() ([]*domain.AdAccount, error)
}

type adAccountRepository struct {
	conn *postgres.Connection
}

func NewAdAccountRepository(conn *postgres.Connection) AdAccountRepository {
	return &adAccountRepository{
		conn: conn,
	}
}

func (r *adAccountRepository) ListByBrand(brandID string) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.brand_id, aa.platform, aa.active, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.brand_id": brandID}).
		OrderBy("aa.platform ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.query(query, args)
}

func (r *adAccountRepository) ListActive() ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.brand_id, aa.platform, aa.active, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.active": true}).
		OrderBy("aa.brand_id ASC, aa.platform ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.query(query, args)
}

func (r *adAccountRepository) query(query string, args []interface{}) ([]*domain.AdAccount, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account := &domain.AdAccount{}
		var platform string

		err := rows.Scan(
			&account.ID,
			&account.BrandID,
			&platform,
			&account.Active,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conta de anúncio: %w", err)
		}

		account.Platform = domain.AdPlatform(platform)
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}
