package report

import (
	"context"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogSink reports through a zap logger instead of a terminal.
type LogSink struct {
	logger *zap.Logger
}

var _ port.ReportSink = (*LogSink)(nil)

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) ShipmentNotice(_ context.Context, manifest domain.Manifest) error {
	s.logger.Info("shipment notice",
		zap.Array("entries", shipmentEntries(manifest.Entries)),
		zap.String("total_weight_kg", manifest.TotalWeightKg().StringFixed(1)),
	)
	return nil
}

func (s *LogSink) Receipt(_ context.Context, receipt domain.Receipt) error {
	s.logger.Info("checkout receipt",
		zap.Stringer("customer_id", receipt.CustomerID),
		zap.Array("lines", receiptLines(receipt.Lines)),
		zap.Stringer("subtotal", receipt.Subtotal),
		zap.Stringer("shipping", receipt.Shipping),
		zap.Stringer("amount", receipt.Total),
		zap.Stringer("balance", receipt.Balance),
	)
	return nil
}

type shipmentEntries []domain.ShipmentEntry

func (entries shipmentEntries) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, entry := range entries {
		err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(obj zapcore.ObjectEncoder) error {
			obj.AddString("name", entry.Name)
			obj.AddInt("count", entry.Count)
			obj.AddString("weight_g", integer(entry.Weight))
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

type receiptLines []domain.ReceiptLine

func (lines receiptLines) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, line := range lines {
		err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(obj zapcore.ObjectEncoder) error {
			obj.AddString("name", line.Name)
			obj.AddInt("quantity", line.Quantity)
			obj.AddString("line_total", line.LineTotal.Amount.String())
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}
