package domain

import "github.com/shopspring/decimal"

var gramsPerKilogram = decimal.NewFromInt(1000)

// ShippableUnit is one physical unit of a shippable item.
type ShippableUnit struct {
	Name   string
	Weight decimal.Decimal // grams
}

// ShipmentEntry aggregates all units of one item name.
type ShipmentEntry struct {
	Name   string
	Count  int
	Weight decimal.Decimal // grams, Count × unit weight
}

type Manifest struct {
	Entries     []ShipmentEntry
	TotalWeight decimal.Decimal // grams
}

func (m Manifest) IsEmpty() bool {
	return len(m.Entries) == 0
}

func (m Manifest) TotalWeightKg() decimal.Decimal {
	return m.TotalWeight.Div(gramsPerKilogram)
}
