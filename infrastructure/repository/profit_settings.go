package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/profit-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

const (
	profitSettingsTable = "profit_settings ps"

	// A tabela guarda uma única linha com o payload completo das regras de custo
	profitSettingsRowID = 1
)

// ProfitSettingsRepository lê e grava as regras de custo do motor de lucro.
// Durante a agregação as configurações são somente leitura.
type ProfitSettingsRepository interface {
	Get() (*domain.ProfitSettings, error)
	Save(settings *domain.ProfitSettings) error
}

type profitSettingsRepository struct {
	conn *postgres.Connection
}

func NewProfitSettingsRepository(conn *postgres.Connection) ProfitSettingsRepository {
	return &profitSettingsRepository{
		conn: conn,
	}
}

// Get retorna as configurações salvas, ou as configurações padrão quando
// nada foi salvo ainda
func (r *profitSettingsRepository) Get() (*domain.ProfitSettings, error) {
	query, args, err := squirrel.
		Select("ps.payload, ps.updated_at").
		From(profitSettingsTable).
		Where(squirrel.Eq{"ps.id": profitSettingsRowID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var payload []byte
	settings := &domain.ProfitSettings{}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&payload, &settings.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.DefaultProfitSettings(), nil
		}
		return nil, fmt.Errorf("erro ao escanear configurações de lucro: %w", err)
	}

	if err := json.Unmarshal(payload, settings); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON de configurações: %w", err)
	}

	return settings, nil
}

func (r *profitSettingsRepository) Save(settings *domain.ProfitSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("erro ao serializar configurações para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("profit_settings").
		Columns("id", "payload").
		Values(profitSettingsRowID, payload).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				payload = EXCLUDED.payload,
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
