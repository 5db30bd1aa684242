package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"wholesale/internal/audit"
	"wholesale/internal/catalog"
	"wholesale/internal/delivery"
	"wholesale/internal/models"
	"wholesale/internal/repository"
)

// CheckoutService computes delivery quotes and turns carts into
// persisted orders. The clock is a field so tests can pin "now".
type CheckoutService struct {
	orders  repository.OrderStore
	issues  repository.IssueStore
	catalog *catalog.Catalog
	tasks   repository.TaskRepository
	pool    *audit.AuditWorkerPool
	nowFn   func() time.Time
}

func NewCheckoutService(orders repository.OrderStore, issues repository.IssueStore, cat *catalog.Catalog, tasks repository.TaskRepository, pool *audit.AuditWorkerPool) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		issues:  issues,
		catalog: cat,
		tasks:   tasks,
		pool:    pool,
		nowFn:   time.Now,
	}
}

// SetClock replaces the time source. Calculations stay reproducible in
// tests when the clock is pinned.
func (s *CheckoutService) SetClock(fn func() time.Time) {
	s.nowFn = fn
}

// Quote is what the checkout page renders before an order is placed.
// OptimalDay is nil when no supplier can deliver inside the horizon.
type Quote struct {
	Deliveries []delivery.SupplierDelivery `json:"supplier_deliveries"`
	Window     delivery.Window             `json:"consolidated_window"`
	Label      string                      `json:"window_label"`
	OptimalDay *time.Time                  `json:"optimal_day,omitempty"`
}

func (s *CheckoutService) Quote(supplierIDs []string) Quote {
	now := s.nowFn()
	suppliers := s.catalog.Suppliers(supplierIDs)

	deliveries := delivery.SupplierDeliveries(suppliers, now)
	window := delivery.Consolidate(deliveries, now)

	q := Quote{
		Deliveries: deliveries,
		Window:     window,
		Label:      delivery.FormatWindow(window),
	}
	if day, ok := delivery.OptimalDay(suppliers, now); ok {
		q.OptimalDay = &day
	}
	return q
}

// PlaceOrder groups the cart by supplier, computes each supplier's
// next delivery date, snapshots the consolidated window into the order
// and persists it. The stored window is frozen: nothing recomputes it
// after placement.
func (s *CheckoutService) PlaceOrder(items []models.CartItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("empty cart")
	}
	now := s.nowFn()

	type group struct {
		supplier models.Supplier
		items    []models.CartItem
		subtotal float64
	}
	groups := make(map[string]*group)
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity for product %s", item.ProductID)
		}
		product, ok := s.catalog.Product(item.ProductID)
		if !ok {
			return nil, fmt.Errorf("unknown product %s", item.ProductID)
		}
		g, ok := groups[product.SupplierID]
		if !ok {
			supplier, found := s.catalog.Supplier(product.SupplierID)
			if !found {
				return nil, fmt.Errorf("unknown supplier %s for product %s", product.SupplierID, item.ProductID)
			}
			g = &group{supplier: supplier}
			groups[product.SupplierID] = g
		}
		g.items = append(g.items, item)
		g.subtotal += product.Price * float64(item.Quantity)
	}

	supplierIDs := make([]string, 0, len(groups))
	for id := range groups {
		supplierIDs = append(supplierIDs, id)
	}
	sort.Strings(supplierIDs)

	var lines []models.SupplierLine
	var deliveries []delivery.SupplierDelivery
	var total float64
	for _, id := range supplierIDs {
		g := groups[id]
		date := delivery.NextDeliveryDate(g.supplier, now)
		lines = append(lines, models.SupplierLine{
			SupplierID:   id,
			Items:        g.items,
			Subtotal:     g.subtotal,
			DeliveryDate: date,
		})
		deliveries = append(deliveries, delivery.SupplierDelivery{
			SupplierID:   id,
			SupplierName: g.supplier.Name,
			Date:         date,
		})
		total += g.subtotal
	}

	window := delivery.Consolidate(deliveries, now)
	order := &models.Order{
		ID:            uuid.NewString(),
		PlacedAt:      now,
		TotalCost:     total,
		Status:        models.OrderStatusPending,
		DeliveryStart: window.Start,
		DeliveryEnd:   window.End,
		Suppliers:     lines,
	}

	if err := s.orders.CreateOrder(order); err != nil {
		return nil, err
	}
	s.recordAudit(order, "order_placed", fmt.Sprintf("order placed, %d suppliers, window %s", len(lines), delivery.FormatWindow(window)))
	return order, nil
}

// ReportIssue files a quality complaint against an existing order.
func (s *CheckoutService) ReportIssue(orderID string, issueType models.IssueType, description string) (*models.QualityIssue, error) {
	if !models.ValidIssueType(issueType) {
		return nil, fmt.Errorf("unknown issue type %q", issueType)
	}
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}

	issue := &models.QualityIssue{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		IssueType:   issueType,
		Description: description,
		ReportedAt:  s.nowFn(),
	}
	if err := s.issues.CreateIssue(issue); err != nil {
		return nil, err
	}
	s.recordAudit(order, "issue_reported", fmt.Sprintf("quality issue %s reported", issueType))
	return issue, nil
}

func (s *CheckoutService) recordAudit(order *models.Order, event, message string) {
	rec := audit.AuditLog{
		Timestamp: s.nowFn().UTC(),
		OrderID:   order.ID,
		Event:     event,
		Message:   message,
	}
	if s.pool != nil {
		s.pool.Log(rec)
	}
	if s.tasks != nil {
		data, err := json.Marshal(rec)
		if err != nil {
			log.Printf("Error marshaling audit record: %v", err)
			return
		}
		if err := s.tasks.CreateTask(context.Background(), data); err != nil {
			log.Printf("Error enqueueing audit task: %v", err)
		}
	}
}
