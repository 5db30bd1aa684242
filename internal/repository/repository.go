package repository

import "wholesale/internal/models"

// SupplierStore serves the read-only catalog. Lookups return nil (not
// an error) on a missing id.
type SupplierStore interface {
	ListSuppliers(cursor string, limit int64) ([]models.Supplier, error)
	GetSupplier(id string) (*models.Supplier, error)
	AllSuppliers() ([]models.Supplier, error)
	ListProducts(supplierID, category string) ([]models.Product, error)
	AllProducts() ([]models.Product, error)
}

type OrderStore interface {
	CreateOrder(o *models.Order) error
	GetOrder(id string) (*models.Order, error)
	ListOrders(cursor string, limit int64) ([]*models.Order, error)
}

type IssueStore interface {
	CreateIssue(i *models.QualityIssue) error
	ListIssues(orderID string) ([]*models.QualityIssue, error)
}
