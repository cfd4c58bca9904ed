package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Customer struct {
	ID   uuid.UUID
	Name string

	mu      sync.RWMutex
	balance Money
}

func NewCustomer(name string, balance Money) (*Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("balance[%s] is negative", balance.Amount)
	}

	return &Customer{
		ID:      uuid.New(),
		Name:    name,
		balance: balance,
	}, nil
}

func (c *Customer) Balance() Money {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.balance
}

// Debit subtracts amount from the balance, refusing to overdraw it.
func (c *Customer) Debit(amount Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount[%s] is negative", amount.Amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.balance.SameCurrency(amount) {
		return ErrCurrencyMismatch
	}
	if c.balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	c.balance = c.balance.Sub(amount)

	return nil
}

func (c *Customer) Credit(amount Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount[%s] is negative", amount.Amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.balance.SameCurrency(amount) {
		return ErrCurrencyMismatch
	}
	c.balance = c.balance.Add(amount)

	return nil
}
