package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nikolayk812/checkout-demo/internal/checkout"
	"github.com/nikolayk812/checkout-demo/internal/config"
	"github.com/nikolayk812/checkout-demo/internal/demo"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/logging"
	"github.com/nikolayk812/checkout-demo/internal/report"
	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging.NewConsole: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	scenario, err := demo.NewScenario(cfg.Currency)
	if err != nil {
		return fmt.Errorf("demo.NewScenario: %w", err)
	}

	cart := scenario.Cart(domain.WithRejectHandler(func(rej domain.Rejection) {
		logger.Debug("cart line rejected", zap.String("item", rej.Item), zap.Int("requested", rej.Requested))
		fmt.Println(rej)
	}))

	svc := checkout.NewService(
		checkout.WithShippingFee(cfg.ShippingFee),
		checkout.WithSink(report.NewTextSink(os.Stdout)),
		checkout.WithLogger(logger),
	)

	if _, err := svc.Checkout(ctx, scenario.Customer, cart); err != nil {
		fmt.Println("Error: " + describe(err))
	}

	return nil
}

// describe turns a checkout error into the line printed for the shopper.
func describe(err error) string {
	var itemErr *domain.ItemError
	hasItem := errors.As(err, &itemErr)

	switch {
	case errors.Is(err, domain.ErrCartEmpty):
		return "Cart is empty."
	case hasItem && errors.Is(err, domain.ErrItemExpired):
		return "Product " + itemErr.Item + " is expired."
	case hasItem && errors.Is(err, domain.ErrInsufficientStock):
		return "Not enough quantity for " + itemErr.Item
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "Insufficient balance."
	default:
		return err.Error()
	}
}
