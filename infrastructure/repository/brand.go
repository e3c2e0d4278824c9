package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/profit-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

const (
	brandsTable = "brands b"
)

// BrandRepository consulta o cadastro de marcas. Dados estáveis, buscados uma
// vez por execução de agregação.
type BrandRepository interface {
	ListActiveBrands() ([]*domain.Brand, error)
	GetByCode(code string) (*domain.Brand, error)
}

type brandRepository struct {
	conn *postgres.Connection
}

func NewBrandRepository(conn *postgres.Connection) BrandRepository {
	return &brandRepository{
		conn: conn,
	}
}

func (r *brandRepository) ListActiveBrands() ([]*domain.Brand, error) {
	query, args, err := squirrel.
		Select("b.id, b.code, b.name, b.aliases, b.active, b.created_at, b.updated_at").
		From(brandsTable).
		Where(squirrel.Eq{"b.active": true}).
		OrderBy("b.code ASC").
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

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		brand, err := r.scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear marca: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return brands, nil
}

func (r *brandRepository) GetByCode(code string) (*domain.Brand, error) {
	query, args, err := squirrel.
		Select("b.id, b.code, b.name, b.aliases, b.active, b.created_at, b.updated_at").
		From(brandsTable).
		Where(squirrel.Eq{"b.code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	brand := &domain.Brand{}
	err = row.Scan(
		&brand.ID,
		&brand.Code,
		&brand.Name,
		pq.Array(&brand.Aliases),
		&brand.Active,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear marca: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) scanBrand(rows *sql.Rows) (*domain.Brand, error) {
	brand := &domain.Brand{}

	err := rows.Scan(
		&brand.ID,
		&brand.Code,
		&brand.Name,
		pq.Array(&brand.Aliases),
		&brand.Active,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return brand, nil
}
