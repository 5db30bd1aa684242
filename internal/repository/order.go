package repository

import (
	"database/sql"
	"fmt"

	"wholesale/internal/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder writes the order header and its supplier lines in one
// transaction; the delivery window values are the frozen snapshot
// computed at placement time.
func (r *OrderRepository) CreateOrder(o *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO orders (id, placed_at, total_cost, status, delivery_start, delivery_end)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.PlacedAt, o.TotalCost, o.Status, o.DeliveryStart, o.DeliveryEnd,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	for _, line := range o.Suppliers {
		for _, item := range line.Items {
			_, err = tx.Exec(`INSERT INTO order_lines (order_id, supplier_id, product_id, quantity, subtotal, delivery_date)
				VALUES ($1,$2,$3,$4,$5,$6)`,
				o.ID, line.SupplierID, item.ProductID, item.Quantity, line.Subtotal, line.DeliveryDate,
			)
			if err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (r *OrderRepository) GetOrder(id string) (*models.Order, error) {
	row := r.db.QueryRow(`SELECT id, placed_at, total_cost, status, delivery_start, delivery_end
		FROM orders WHERE id=$1`, id)

	o := &models.Order{}
	err := row.Scan(&o.ID, &o.PlacedAt, &o.TotalCost, &o.Status, &o.DeliveryStart, &o.DeliveryEnd)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	if err := r.loadLines(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) ListOrders(cursor string, limit int64) ([]*models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, placed_at, total_cost, status, delivery_start, delivery_end FROM orders`
	var args []interface{}
	idx := 1
	if cursor != "" {
		query += fmt.Sprintf(" WHERE id>$%d", idx)
		args = append(args, cursor)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", idx)
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var res []*models.Order
	for rows.Next() {
		o := &models.Order{}
		err := rows.Scan(&o.ID, &o.PlacedAt, &o.TotalCost, &o.Status, &o.DeliveryStart, &o.DeliveryEnd)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		res = append(res, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range res {
		if err := r.loadLines(o); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *OrderRepository) loadLines(o *models.Order) error {
	rows, err := r.db.Query(`SELECT supplier_id, product_id, quantity, subtotal, delivery_date
		FROM order_lines WHERE order_id=$1 ORDER BY supplier_id, product_id`, o.ID)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	bySupplier := make(map[string]*models.SupplierLine)
	var order []string
	for rows.Next() {
		var supplierID string
		var item models.CartItem
		var subtotal float64
		var deliveryDate sql.NullTime
		if err := rows.Scan(&supplierID, &item.ProductID, &item.Quantity, &subtotal, &deliveryDate); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		line, ok := bySupplier[supplierID]
		if !ok {
			line = &models.SupplierLine{SupplierID: supplierID, Subtotal: subtotal}
			if deliveryDate.Valid {
				line.DeliveryDate = deliveryDate.Time
			}
			bySupplier[supplierID] = line
			order = append(order, supplierID)
		}
		line.Items = append(line.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	o.Suppliers = make([]models.SupplierLine, 0, len(order))
	for _, id := range order {
		o.Suppliers = append(o.Suppliers, *bySupplier[id])
	}
	return nil
}
