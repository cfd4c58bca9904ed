package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

var egpUnit = currency.MustParseISO("EGP")

type catalogRepositorySuite struct {
	suite.Suite

	repo port.CatalogRepository
}

// entry point to run the tests in the suite
func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

// before each test in the suite
func (suite *catalogRepositorySuite) SetupTest() {
	var err error

	suite.repo, err = repository.NewCatalog()
	suite.NoError(err)
}

func (suite *catalogRepositorySuite) TestAddItem() {
	tests := []struct {
		name      string
		item      *domain.CatalogItem
		wantError string
	}{
		{
			name: "add item to catalog: ok",
			item: randomItem(suite.T()),
		},
		{
			name:      "add nil item: error",
			item:      nil,
			wantError: "item is nil",
		},
		{
			name:      "add item with empty name: error",
			item:      &domain.CatalogItem{},
			wantError: "name is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.AddItem(ctx, tt.item)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			// Verify the item was added
			item, err := suite.repo.GetItem(ctx, tt.item.Name)
			require.NoError(t, err)
			assert.Same(t, tt.item, item)
		})
	}
}

func (suite *catalogRepositorySuite) TestAddDuplicateItem() {
	t := suite.T()
	ctx := t.Context()

	item := randomItem(t)
	require.NoError(t, suite.repo.AddItem(ctx, item))

	err := suite.repo.AddItem(ctx, item)
	require.EqualError(t, err, "item["+item.Name+"] already exists")
}

func (suite *catalogRepositorySuite) TestGetItem() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.repo.GetItem(ctx, "")
	require.EqualError(t, err, "name is empty")

	_, err = suite.repo.GetItem(ctx, "missing")
	require.ErrorIs(t, err, port.ErrNotFound)
}

func (suite *catalogRepositorySuite) TestListItemsKeepsInsertionOrder() {
	t := suite.T()
	ctx := t.Context()

	var want []*domain.CatalogItem
	for range 5 {
		item := randomItem(t)
		require.NoError(t, suite.repo.AddItem(ctx, item))
		want = append(want, item)
	}

	items, err := suite.repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(want))
	for i := range want {
		assert.Same(t, want[i], items[i])
	}
}

func TestNewCatalogWithDuplicates(t *testing.T) {
	item := randomItem(t)

	_, err := repository.NewCatalog(item, item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func randomItem(t *testing.T) *domain.CatalogItem {
	t.Helper()

	item, err := domain.NewCatalogItem(
		gofakeit.UUID(),
		domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)), egpUnit),
		gofakeit.IntRange(0, 50),
	)
	require.NoError(t, err)

	return item
}
