package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Supplier is a read-only catalog record. DeliveryDays holds lowercase
// weekday names or the sentinel "daily"; CutoffTime is a 12-hour clock
// string such as "2:00 PM".
type Supplier struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Verified     bool     `json:"verified"`
	Rating       float64  `json:"rating"`
	DeliveryDays []string `json:"delivery_days"`
	CutoffTime   string   `json:"cutoff_time"`
	Description  string   `json:"description"`
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MinimumQty  int     `json:"minimum_order_quantity"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	SupplierID  string  `json:"supplier_id"`
	InStock     bool    `json:"in_stock"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SupplierLine is one supplier's slice of an order, frozen at
// placement time together with its computed delivery date.
type SupplierLine struct {
	SupplierID   string     `json:"supplier_id"`
	Items        []CartItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	DeliveryDate time.Time  `json:"delivery_date"`
}

type Order struct {
	ID            string         `json:"id"`
	PlacedAt      time.Time      `json:"placed_at"`
	TotalCost     float64        `json:"total_cost"`
	Status        OrderStatus    `json:"status"`
	DeliveryStart time.Time      `json:"delivery_start"`
	DeliveryEnd   time.Time      `json:"delivery_end"`
	Suppliers     []SupplierLine `json:"supplier_breakdown"`
}

type IssueType string

const (
	IssueMissing IssueType = "missing"
	IssueDamaged IssueType = "damaged"
	IssueWrong   IssueType = "wrong"
)

func ValidIssueType(t IssueType) bool {
	switch t {
	case IssueMissing, IssueDamaged, IssueWrong:
		return true
	}
	return false
}

type QualityIssue struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	IssueType   IssueType `json:"issue_type"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
}
