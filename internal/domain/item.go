package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItem is a purchasable product. Weight is valid only for items that need physical shipping.
type CatalogItem struct {
	ID      uuid.UUID
	Name    string
	Price   Money
	Weight  decimal.NullDecimal // grams
	Expired bool

	mu        sync.RWMutex
	available int
}

type ItemOption func(*CatalogItem)

// WithWeight marks the item as shippable with the given unit weight in grams.
func WithWeight(grams decimal.Decimal) ItemOption {
	return func(item *CatalogItem) {
		item.Weight = decimal.NewNullDecimal(grams)
	}
}

func WithExpired(expired bool) ItemOption {
	return func(item *CatalogItem) {
		item.Expired = expired
	}
}

func NewCatalogItem(name string, price Money, quantity int, opts ...ItemOption) (*CatalogItem, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price[%s] is negative", price.Amount)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity[%d] is negative", quantity)
	}

	item := &CatalogItem{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		available: quantity,
	}
	for _, opt := range opts {
		opt(item)
	}

	if item.Weight.Valid && item.Weight.Decimal.IsNegative() {
		return nil, fmt.Errorf("weight[%s] is negative", item.Weight.Decimal)
	}

	return item, nil
}

func (i *CatalogItem) Available() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.available
}

func (i *CatalogItem) Shippable() bool {
	return i.Weight.Valid
}

// ReduceQuantity takes n units out of stock. Stock never goes negative.
func (i *CatalogItem) ReduceQuantity(n int) error {
	if n < 0 {
		return fmt.Errorf("quantity[%d] is negative", n)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if n > i.available {
		return newItemError(i.Name, ErrInsufficientStock)
	}
	i.available -= n

	return nil
}

// Restock puts n units back, e.g. when a settlement is rolled back.
func (i *CatalogItem) Restock(n int) error {
	if n < 0 {
		return fmt.Errorf("quantity[%d] is negative", n)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.available += n

	return nil
}

func (i *CatalogItem) String() string {
	return fmt.Sprintf("%s (%d left)", i.Name, i.Available())
}
