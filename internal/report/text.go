// Package report renders shipment notices and receipts.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/shopspring/decimal"
)

const (
	shipmentHeader = "** Shipment notice **"
	receiptHeader  = ">> Checkout receipt <<"
	receiptRule    = "----------------------"
)

// TextSink writes human readable reports to w. Each report is a single Write call.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ port.ReportSink = (*TextSink)(nil)

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) ShipmentNotice(_ context.Context, manifest domain.Manifest) error {
	return s.write(FormatManifest(manifest))
}

func (s *TextSink) Receipt(_ context.Context, receipt domain.Receipt) error {
	return s.write(FormatReceipt(receipt))
}

func (s *TextSink) write(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}

func FormatManifest(manifest domain.Manifest) string {
	var b strings.Builder

	b.WriteString(shipmentHeader + "\n")
	for _, entry := range manifest.Entries {
		fmt.Fprintf(&b, "%dx %s %sg\n", entry.Count, entry.Name, integer(entry.Weight))
	}
	fmt.Fprintf(&b, "Total package weight %skg\n", manifest.TotalWeightKg().StringFixed(1))

	return b.String()
}

func FormatReceipt(receipt domain.Receipt) string {
	var b strings.Builder

	b.WriteString(receiptHeader + "\n")
	for _, line := range receipt.Lines {
		fmt.Fprintf(&b, "%dx %s %s\n", line.Quantity, line.Name, integer(line.LineTotal.Amount))
	}
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Subtotal %s\n", integer(receipt.Subtotal.Amount))
	fmt.Fprintf(&b, "Shipping %s\n", integer(receipt.Shipping.Amount))
	fmt.Fprintf(&b, "Amount %s\n", integer(receipt.Total.Amount))
	fmt.Fprintf(&b, "Customer balance %s\n", integer(receipt.Balance.Amount))

	return b.String()
}

// integer rounds half away from zero.
func integer(d decimal.Decimal) string {
	return d.StringFixed(0)
}
