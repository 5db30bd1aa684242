package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"wholesale/internal/models"
)

type SupplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

const supplierColumns = `id, name, verified, rating, delivery_days, cutoff_time, description`

func scanSupplier(row interface{ Scan(...interface{}) error }) (*models.Supplier, error) {
	s := &models.Supplier{}
	err := row.Scan(&s.ID, &s.Name, &s.Verified, &s.Rating, pq.Array(&s.DeliveryDays), &s.CutoffTime, &s.Description)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SupplierRepository) GetSupplier(id string) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id=$1`
	s, err := scanSupplier(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier by id: %w", err)
	}
	return s, nil
}

func (r *SupplierRepository) ListSuppliers(cursor string, limit int64) ([]models.Supplier, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
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
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var res []models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

func (r *SupplierRepository) AllSuppliers() ([]models.Supplier, error) {
	rows, err := r.db.Query(`SELECT ` + supplierColumns + ` FROM suppliers ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all suppliers: %w", err)
	}
	defer rows.Close()

	var res []models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

const productColumns = `id, name, description, price, minimum_qty, unit, category, supplier_id, in_stock`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.MinimumQty, &p.Unit, &p.Category, &p.SupplierID, &p.InStock)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SupplierRepository) ListProducts(supplierID, category string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var filters []string
	var args []interface{}
	idx := 1
	if supplierID != "" {
		filters = append(filters, fmt.Sprintf("supplier_id=$%d", idx))
		args = append(args, supplierID)
		idx++
	}
	if category != "" {
		filters = append(filters, fmt.Sprintf("category=$%d", idx))
		args = append(args, category)
		idx++
	}
	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var res []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *SupplierRepository) AllProducts() ([]models.Product, error) {
	return r.ListProducts("", "")
}
