package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, consumer_id, status, payment_status, total_amount, delivery_address, created_at, updated_at`

func (s *DB) scanOrder(row interface{ Scan(dest ...any) error }) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.ConsumerID, &o.Status, &o.PaymentStatus,
		&o.TotalAmount, &o.DeliveryAddress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// CreateOrder writes the order, its item snapshots, and the stock decrements
// in one transaction. A listing without enough remaining stock aborts the
// whole order with a conflict.
func (s *DB) CreateOrder(ctx context.Context, order entity.Order) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOrder")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	orderQuery := `
		INSERT INTO orders (id, consumer_id, status, payment_status, total_amount, delivery_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err = tx.Exec(ctx, orderQuery,
		order.ID, order.ConsumerID, order.Status, order.PaymentStatus,
		order.TotalAmount, order.DeliveryAddress, order.CreatedAt, order.UpdatedAt,
	); err != nil {
		err = s.mapError(err)
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	stockQuery := `UPDATE products SET quantity = quantity - $2 WHERE id = $1 AND quantity >= $2`

	for _, item := range order.Items {
		if _, err = tx.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.ProductName, item.Price, item.Quantity,
		); err != nil {
			err = s.mapError(err)
			return err
		}

		tag, execErr := tx.Exec(ctx, stockQuery, item.ProductID, item.Quantity)
		if execErr != nil {
			err = s.mapError(execErr)
			return err
		}
		if tag.RowsAffected() == 0 {
			err = goerror.ErrConflict
			return err
		}
	}

	err = tx.Commit(ctx)
	return err
}

func (s *DB) getOrderItems(ctx context.Context, orderIDs []int64) (map[int64][]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC`

	rows, err := s.conn.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]entity.OrderItem)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}

	return items, rows.Err()
}

func (s *DB) GetOrderByID(ctx context.Context, id int64) (_ *entity.Order, err error) {
	ctx, span := s.startSpan(ctx, "GetOrderByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := s.scanOrder(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := s.getOrderItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, s.mapError(err)
	}
	order.Items = items[order.ID]

	return order, nil
}

func (s *DB) GetOrdersByConsumer(ctx context.Context, consumerID int64) (_ []entity.Order, err error) {
	ctx, span := s.startSpan(ctx, "GetOrdersByConsumer")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE consumer_id = $1 ORDER BY created_at DESC`
	rows, err := s.conn.Query(ctx, query, consumerID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		order, err := s.scanOrder(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := s.getOrderItems(ctx, ids)
	if err != nil {
		return nil, s.mapError(err)
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

func (s *DB) GetOrderConsumer(ctx context.Context, orderID int64) (_ *entity.OrderConsumer, err error) {
	ctx, span := s.startSpan(ctx, "GetOrderConsumer")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT o.id, o.status, a.id, a.email, a.full_name
		FROM orders o
		JOIN accounts a ON a.id = o.consumer_id
		WHERE o.id = $1`

	var oc entity.OrderConsumer
	err = s.conn.QueryRow(ctx, query, orderID).Scan(
		&oc.OrderID, &oc.Status, &oc.ConsumerID, &oc.ConsumerEmail, &oc.ConsumerName,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &oc, nil
}

func (s *DB) UpdateOrderPayment(ctx context.Context, id int64, status entity.PaymentStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateOrderPayment")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE orders SET payment_status = $2, updated_at = now() WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, status)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// UpdateOrderStatus is conditional on the current status. The delivered
// transition is terminal, so losing the race means zero rows and not-found.
func (s *DB) UpdateOrderStatus(ctx context.Context, id int64, oldStatus, newStatus entity.OrderStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateOrderStatus")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`

	tag, err := s.conn.Exec(ctx, query, id, oldStatus, newStatus)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
