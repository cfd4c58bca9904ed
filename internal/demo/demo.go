// Package demo builds the fixed catalog, customer, and cart of the demo run.
package demo

import (
	"fmt"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Scenario struct {
	Cheese      *domain.CatalogItem
	Biscuits    *domain.CatalogItem
	TV          *domain.CatalogItem
	ScratchCard *domain.CatalogItem

	Customer *domain.Customer
}

func NewScenario(unit currency.Unit) (*Scenario, error) {
	money := func(amount int64) domain.Money {
		return domain.NewMoney(decimal.NewFromInt(amount), unit)
	}
	grams := func(g int64) domain.ItemOption {
		return domain.WithWeight(decimal.NewFromInt(g))
	}

	var (
		s   Scenario
		err error
	)

	if s.Cheese, err = domain.NewCatalogItem("Cheese", money(100), 5, grams(200), domain.WithExpired(false)); err != nil {
		return nil, fmt.Errorf("cheese: %w", err)
	}
	if s.Biscuits, err = domain.NewCatalogItem("Biscuits", money(150), 3, grams(700), domain.WithExpired(false)); err != nil {
		return nil, fmt.Errorf("biscuits: %w", err)
	}
	if s.TV, err = domain.NewCatalogItem("TV", money(1000), 2, grams(10000)); err != nil {
		return nil, fmt.Errorf("tv: %w", err)
	}
	if s.ScratchCard, err = domain.NewCatalogItem("ScratchCard", money(50), 10); err != nil {
		return nil, fmt.Errorf("scratch card: %w", err)
	}
	if s.Customer, err = domain.NewCustomer("Ahmed", money(1000)); err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}

	return &s, nil
}

func (s *Scenario) Items() []*domain.CatalogItem {
	return []*domain.CatalogItem{s.Cheese, s.Biscuits, s.TV, s.ScratchCard}
}

// Cart returns the demo cart: 2x Cheese, 1x Biscuits, 1x ScratchCard.
func (s *Scenario) Cart(opts ...domain.CartOption) *domain.Cart {
	cart := domain.NewCart(opts...)
	cart.Add(s.Cheese, 2)
	cart.Add(s.Biscuits, 1)
	cart.Add(s.ScratchCard, 1)
	return cart
}
