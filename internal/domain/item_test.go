package domain_test

import (
	"errors"
	"testing"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogItem(t *testing.T) {
	price := domain.NewMoney(decimal.NewFromInt(100), egpUnit)

	tests := []struct {
		name          string
		itemName      string
		price         domain.Money
		quantity      int
		opts          []domain.ItemOption
		wantShippable bool
		wantExpired   bool
		wantError     string
	}{
		{
			name:     "non-shippable item: ok",
			itemName: "ScratchCard",
			price:    price,
			quantity: 10,
		},
		{
			name:          "shippable expired item: ok",
			itemName:      "Cheese",
			price:         price,
			quantity:      5,
			opts:          []domain.ItemOption{domain.WithWeight(decimal.NewFromInt(200)), domain.WithExpired(true)},
			wantShippable: true,
			wantExpired:   true,
		},
		{
			name:     "zero price and zero stock: ok",
			itemName: "Sample",
			price:    domain.Zero(egpUnit),
			quantity: 0,
		},
		{
			name:      "empty name: error",
			itemName:  "",
			price:     price,
			quantity:  1,
			wantError: "name is empty",
		},
		{
			name:      "negative price: error",
			itemName:  "TV",
			price:     domain.NewMoney(decimal.NewFromInt(-1), egpUnit),
			quantity:  1,
			wantError: "price[-1] is negative",
		},
		{
			name:      "negative quantity: error",
			itemName:  "TV",
			price:     price,
			quantity:  -2,
			wantError: "quantity[-2] is negative",
		},
		{
			name:      "negative weight: error",
			itemName:  "TV",
			price:     price,
			quantity:  1,
			opts:      []domain.ItemOption{domain.WithWeight(decimal.NewFromInt(-5))},
			wantError: "weight[-5] is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := domain.NewCatalogItem(tt.itemName, tt.price, tt.quantity, tt.opts...)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.itemName, item.Name)
			assert.Equal(t, tt.quantity, item.Available())
			assert.Equal(t, tt.wantShippable, item.Shippable())
			assert.Equal(t, tt.wantExpired, item.Expired)
			assert.NotEmpty(t, item.ID)
		})
	}
}

func TestCatalogItemReduceQuantity(t *testing.T) {
	item, err := domain.NewCatalogItem("Cheese", domain.NewMoney(decimal.NewFromInt(100), egpUnit), 5)
	require.NoError(t, err)

	require.NoError(t, item.ReduceQuantity(2))
	assert.Equal(t, 3, item.Available())

	err = item.ReduceQuantity(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.EqualError(t, err, "product Cheese: insufficient stock")
	assert.Equal(t, 3, item.Available())

	require.EqualError(t, item.ReduceQuantity(-1), "quantity[-1] is negative")

	require.NoError(t, item.ReduceQuantity(3))
	assert.Equal(t, 0, item.Available())
	assert.Equal(t, "Cheese (0 left)", item.String())
}

func TestItemErrorUnwrap(t *testing.T) {
	var err error = &domain.ItemError{Item: "Biscuits", Err: domain.ErrItemExpired}

	var itemErr *domain.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, "Biscuits", itemErr.Item)
	assert.ErrorIs(t, err, domain.ErrItemExpired)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
}
