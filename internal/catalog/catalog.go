package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"wholesale/internal/models"
	"wholesale/internal/repository"
)

// Catalog is an in-memory snapshot of the supplier/product tables,
// keyed by id. Lookups report misses explicitly instead of handing
// back a default record.
type Catalog struct {
	mu        sync.RWMutex
	suppliers map[string]models.Supplier
	products  map[string]models.Product
}

func New() *Catalog {
	return &Catalog{
		suppliers: make(map[string]models.Supplier),
		products:  make(map[string]models.Product),
	}
}

func (c *Catalog) Refresh(store repository.SupplierStore) error {
	suppliers, err := store.AllSuppliers()
	if err != nil {
		return err
	}
	products, err := store.AllProducts()
	if err != nil {
		return err
	}

	newSuppliers := make(map[string]models.Supplier, len(suppliers))
	for _, s := range suppliers {
		newSuppliers[s.ID] = s
	}
	newProducts := make(map[string]models.Product, len(products))
	for _, p := range products {
		newProducts[p.ID] = p
	}

	c.mu.Lock()
	c.suppliers = newSuppliers
	c.products = newProducts
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Supplier(id string) (models.Supplier, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.suppliers[id]
	return s, ok
}

func (c *Catalog) Product(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// Suppliers returns the cached suppliers for the given ids, skipping
// unknown ones.
func (c *Catalog) Suppliers(ids []string) []models.Supplier {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]models.Supplier, 0, len(ids))
	for _, id := range ids {
		if s, ok := c.suppliers[id]; ok {
			res = append(res, s)
		}
	}
	return res
}

func (c *Catalog) StartAutoRefresh(ctx context.Context, store repository.SupplierStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// Keep serving the old snapshot on a failed refresh.
			if err := c.Refresh(store); err != nil {
				log.Printf("Error refreshing catalog: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
