// Package shipping aggregates shippable units into a shipment manifest.
package shipping

import (
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/shopspring/decimal"
)

// Ship groups units by item name in first-seen order. Each group weight is count × unit weight,
// and the manifest total is the sum over every unit.
func Ship(units []domain.ShippableUnit) domain.Manifest {
	manifest := domain.Manifest{TotalWeight: decimal.Zero}
	if len(units) == 0 {
		return manifest
	}

	index := make(map[string]int, len(units))
	unitWeight := make(map[string]decimal.Decimal, len(units))

	for _, unit := range units {
		pos, ok := index[unit.Name]
		if !ok {
			pos = len(manifest.Entries)
			index[unit.Name] = pos
			manifest.Entries = append(manifest.Entries, domain.ShipmentEntry{Name: unit.Name})
		}
		manifest.Entries[pos].Count++
		// last unit weight wins per name; units of one item all carry the same weight
		unitWeight[unit.Name] = unit.Weight
		manifest.TotalWeight = manifest.TotalWeight.Add(unit.Weight)
	}

	for i := range manifest.Entries {
		entry := &manifest.Entries[i]
		entry.Weight = unitWeight[entry.Name].Mul(decimal.NewFromInt(int64(entry.Count)))
	}

	return manifest
}

// Units expands a cart line into one unit per requested quantity. Non-shippable lines yield nothing.
func Units(line domain.CartLine) []domain.ShippableUnit {
	if !line.Item.Shippable() || line.Quantity <= 0 {
		return nil
	}

	units := make([]domain.ShippableUnit, line.Quantity)
	for i := range units {
		units[i] = domain.ShippableUnit{Name: line.Item.Name, Weight: line.Item.Weight.Decimal}
	}
	return units
}
