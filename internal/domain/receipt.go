package domain

import "github.com/google/uuid"

type ReceiptLine struct {
	Name      string
	Quantity  int
	LineTotal Money
}

// Receipt is the outcome of a successful checkout. Shipment is nil when nothing was shipped.
type Receipt struct {
	CustomerID uuid.UUID
	Lines      []ReceiptLine
	Shipment   *Manifest

	Subtotal Money
	Shipping Money
	Total    Money
	Balance  Money
}
