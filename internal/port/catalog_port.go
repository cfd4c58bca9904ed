package port

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
)

var ErrNotFound = errors.New("not found")

type CatalogRepository interface {
	GetItem(ctx context.Context, name string) (*domain.CatalogItem, error)
	ListItems(ctx context.Context) ([]*domain.CatalogItem, error)
	AddItem(ctx context.Context, item *domain.CatalogItem) error
}

type CustomerRepository interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	AddCustomer(ctx context.Context, customer *domain.Customer) error
}
