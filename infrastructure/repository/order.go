package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/profit-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

// OrderRepository consulta os pedidos da loja. Os pedidos são dados externos
// somente leitura para o motor de agregação.
type OrderRepository interface {
	ListByPeriod(period domain.Period) ([]*domain.Order, error)
	ListByPeriodAndChannel(period domain.Period, channel domain.SalesChannel) ([]*domain.Order, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) ListByPeriod(period domain.Period) ([]*domain.Order, error) {
	return r.list(period, nil)
}

func (r *orderRepository) ListByPeriodAndChannel(period domain.Period, channel domain.SalesChannel) ([]*domain.Order, error) {
	return r.list(period, &channel)
}

func (r *orderRepository) list(period domain.Period, channel *domain.SalesChannel) ([]*domain.Order, error) {
	builder := squirrel.
		Select("o.id, o.channel, o.brand_id, o.product_name, o.unit_price, o.total_price, o.cost_price, o.quantity, o.channel_fee, o.shipping_fee, o.order_date").
		From(ordersTable).
		Where(squirrel.GtOrEq{"o.order_date": period.Start.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"o.order_date": period.End.Format(time.DateOnly)}).
		OrderBy("o.order_date ASC, o.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if channel != nil {
		builder = builder.Where(squirrel.Eq{"o.channel": string(*channel)})
	}

	query, args, err := builder.ToSql()
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	var brandID sql.NullString
	var channel string

	err := rows.Scan(
		&order.ID,
		&channel,
		&brandID,
		&order.ProductName,
		&order.UnitPrice,
		&order.TotalPrice,
		&order.CostPrice,
		&order.Quantity,
		&order.ChannelFee,
		&order.ShippingFee,
		&order.OrderDate,
	)
	if err != nil {
		return nil, err
	}

	order.Channel = domain.SalesChannel(channel)
	if brandID.Valid {
		order.BrandID = &brandID.String
	}

	return order, nil
}
