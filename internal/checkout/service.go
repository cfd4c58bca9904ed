// Package checkout validates a cart against a customer and settles it.
//
// Every rejection happens before any state changes: a failed checkout leaves catalog stock and the customer
// balance exactly as they were. Concurrent checkouts that share a customer or a catalog item are serialized.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/metrics"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/nikolayk812/checkout-demo/internal/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// DefaultShippingFee is charged once per checkout when at least one line needs shipping.
var DefaultShippingFee = decimal.NewFromInt(30)

type Service struct {
	shippingFee decimal.Decimal
	sink        port.ReportSink
	metrics     *metrics.CheckoutMetrics
	logger      *zap.Logger

	locker keyedLocker
}

type Option func(*Service)

func WithShippingFee(fee decimal.Decimal) Option {
	return func(s *Service) {
		s.shippingFee = fee
	}
}

func WithSink(sink port.ReportSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		shippingFee: DefaultShippingFee,
		sink:        nopSink{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout runs the whole pipeline for one cart. On a validation failure the returned error wraps one of the
// domain sentinels and nothing is mutated. If the receipt cannot be reported after settlement, the settled
// receipt is returned together with the error.
func (s *Service) Checkout(ctx context.Context, customer *domain.Customer, cart *domain.Cart) (domain.Receipt, error) {
	start := time.Now()

	receipt, err := s.checkout(ctx, customer, cart)
	s.observe(start, receipt, err)

	if err != nil {
		s.logger.Info("checkout rejected", customerField(customer), zap.Error(err))
		return domain.Receipt{}, err
	}

	s.logger.Info("checkout completed",
		customerField(customer),
		zap.Int("lines", len(receipt.Lines)),
		zap.Stringer("total", receipt.Total),
		zap.Stringer("balance", receipt.Balance),
	)

	if err := s.sink.Receipt(ctx, receipt); err != nil {
		s.logger.Error("receipt not reported", customerField(customer), zap.Error(err))
		return receipt, fmt.Errorf("sink.Receipt: %w", err)
	}

	return receipt, nil
}

func (s *Service) checkout(ctx context.Context, customer *domain.Customer, cart *domain.Cart) (domain.Receipt, error) {
	if customer == nil {
		return domain.Receipt{}, fmt.Errorf("customer is nil")
	}
	if cart == nil || cart.IsEmpty() {
		return domain.Receipt{}, domain.ErrCartEmpty
	}

	lines := cart.Lines()

	receipt, err := withLocks(ctx, &s.locker, lockKeys(customer, lines), func() (domain.Receipt, error) {
		return s.settle(ctx, customer, lines)
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	return receipt, nil
}

// settle runs with the customer and every referenced item locked.
func (s *Service) settle(ctx context.Context, customer *domain.Customer, lines []domain.CartLine) (domain.Receipt, error) {
	balance := customer.Balance()

	order, err := validateLines(lines, balance.Currency)
	if err != nil {
		return domain.Receipt{}, err
	}

	fee := domain.Zero(balance.Currency)
	if len(order.units) > 0 {
		fee = domain.NewMoney(s.shippingFee, balance.Currency)
	}
	total := order.subtotal.Add(fee)

	if balance.LessThan(total) {
		return domain.Receipt{}, domain.ErrInsufficientBalance
	}

	var shipment *domain.Manifest
	if len(order.units) > 0 {
		manifest := shipping.Ship(order.units)
		if err := s.sink.ShipmentNotice(ctx, manifest); err != nil {
			return domain.Receipt{}, fmt.Errorf("sink.ShipmentNotice: %w", err)
		}
		shipment = &manifest
	}

	if err := customer.Debit(total); err != nil {
		return domain.Receipt{}, fmt.Errorf("customer.Debit: %w", err)
	}

	receiptLines := make([]domain.ReceiptLine, 0, len(lines))
	for i, line := range lines {
		if err := line.Item.ReduceQuantity(line.Quantity); err != nil {
			return domain.Receipt{}, errors.Join(
				fmt.Errorf("item.ReduceQuantity: %w", err),
				rollback(customer, total, lines[:i]),
			)
		}
		receiptLines = append(receiptLines, domain.ReceiptLine{
			Name:      line.Item.Name,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
		})
	}

	return domain.Receipt{
		CustomerID: customer.ID,
		Lines:      receiptLines,
		Shipment:   shipment,
		Subtotal:   order.subtotal,
		Shipping:   fee,
		Total:      total,
		Balance:    customer.Balance(),
	}, nil
}

type validatedOrder struct {
	subtotal domain.Money
	units    []domain.ShippableUnit
}

// validateLines checks lines in insertion order and stops at the first failure.
func validateLines(lines []domain.CartLine, unit currency.Unit) (validatedOrder, error) {
	order := validatedOrder{subtotal: domain.Zero(unit)}
	requested := make(map[uuid.UUID]int, len(lines))

	for _, line := range lines {
		item := line.Item

		if item.Price.Currency != unit {
			return validatedOrder{}, &domain.ItemError{Item: item.Name, Err: domain.ErrCurrencyMismatch}
		}
		if item.Expired {
			return validatedOrder{}, &domain.ItemError{Item: item.Name, Err: domain.ErrItemExpired}
		}
		// lines for the same item draw on one stock
		requested[item.ID] += line.Quantity
		if requested[item.ID] > item.Available() {
			return validatedOrder{}, &domain.ItemError{Item: item.Name, Err: domain.ErrInsufficientStock}
		}

		order.units = append(order.units, shipping.Units(line)...)
		order.subtotal = order.subtotal.Add(line.LineTotal())
	}

	return order, nil
}

// rollback undoes a settlement that failed halfway. It only runs if stock changed outside the service.
func rollback(customer *domain.Customer, total domain.Money, applied []domain.CartLine) error {
	var errs []error

	for _, line := range applied {
		if err := line.Item.Restock(line.Quantity); err != nil {
			errs = append(errs, fmt.Errorf("item.Restock: %w", err))
		}
	}
	if err := customer.Credit(total); err != nil {
		errs = append(errs, fmt.Errorf("customer.Credit: %w", err))
	}

	return errors.Join(errs...)
}

func lockKeys(customer *domain.Customer, lines []domain.CartLine) []string {
	keys := make([]string, 0, len(lines)+1)
	keys = append(keys, "customer:"+customer.ID.String())
	for _, line := range lines {
		keys = append(keys, "item:"+line.Item.ID.String())
	}
	return keys
}

func (s *Service) observe(start time.Time, receipt domain.Receipt, err error) {
	if s.metrics == nil {
		return
	}

	s.metrics.Attempts.WithLabelValues(resultLabel(err)).Inc()
	s.metrics.Latency.Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err == nil {
		s.metrics.Amount.Observe(receipt.Total.Amount.InexactFloat64())
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCartEmpty):
		return "cart_empty"
	case errors.Is(err, domain.ErrItemExpired):
		return "item_expired"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	default:
		return "error"
	}
}

func customerField(customer *domain.Customer) zap.Field {
	if customer == nil {
		return zap.Skip()
	}
	return zap.String("customer", customer.Name)
}

type nopSink struct{}

func (nopSink) ShipmentNotice(context.Context, domain.Manifest) error { return nil }
func (nopSink) Receipt(context.Context, domain.Receipt) error         { return nil }
