package port

import (
	"context"

	"github.com/nikolayk812/checkout-demo/internal/domain"
)

// ReportSink receives the shipment notice and the receipt of a successful checkout, in that order.
type ReportSink interface {
	ShipmentNotice(ctx context.Context, manifest domain.Manifest) error
	Receipt(ctx context.Context, receipt domain.Receipt) error
}
