package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

type customerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer
}

func NewCustomer(customers ...*domain.Customer) (port.CustomerRepository, error) {
	r := &customerRepository{
		customers: make(map[uuid.UUID]*domain.Customer, len(customers)),
	}

	for _, customer := range customers {
		if err := r.AddCustomer(context.Background(), customer); err != nil {
			return nil, fmt.Errorf("r.AddCustomer: %w", err)
		}
	}

	return r, nil
}

func (r *customerRepository) GetCustomer(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("customerID is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer[%s]: %w", id, port.ErrNotFound)
	}

	return customer, nil
}

func (r *customerRepository) AddCustomer(_ context.Context, customer *domain.Customer) error {
	if customer == nil {
		return fmt.Errorf("customer is nil")
	}
	if customer.ID == uuid.Nil {
		return fmt.Errorf("customerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; ok {
		return fmt.Errorf("customer[%s] already exists", customer.ID)
	}
	r.customers[customer.ID] = customer

	return nil
}
