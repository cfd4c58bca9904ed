package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

// catalogRepository keeps catalog items in memory for the lifetime of the process.
type catalogRepository struct {
	mu     sync.RWMutex
	byName map[string]*domain.CatalogItem
	order  []*domain.CatalogItem
}

func NewCatalog(items ...*domain.CatalogItem) (port.CatalogRepository, error) {
	r := &catalogRepository{
		byName: make(map[string]*domain.CatalogItem, len(items)),
	}

	for _, item := range items {
		if err := r.add(item); err != nil {
			return nil, fmt.Errorf("r.add: %w", err)
		}
	}

	return r, nil
}

func (r *catalogRepository) GetItem(_ context.Context, name string) (*domain.CatalogItem, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("item[%s]: %w", name, port.ErrNotFound)
	}

	return item, nil
}

func (r *catalogRepository) ListItems(_ context.Context) ([]*domain.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*domain.CatalogItem, len(r.order))
	copy(items, r.order)

	return items, nil
}

func (r *catalogRepository) AddItem(_ context.Context, item *domain.CatalogItem) error {
	return r.add(item)
}

func (r *catalogRepository) add(item *domain.CatalogItem) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}
	if item.Name == "" {
		return fmt.Errorf("name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[item.Name]; ok {
		return fmt.Errorf("item[%s] already exists", item.Name)
	}

	r.byName[item.Name] = item
	r.order = append(r.order, item)

	return nil
}
