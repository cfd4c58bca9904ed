package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/metrics"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Checkouter interface {
	Checkout(ctx context.Context, customer *domain.Customer, cart *domain.Cart) (domain.Receipt, error)
}

// Handler is the HTTP layer over the catalog, the customers, and the checkout service.
type Handler struct {
	catalog   port.CatalogRepository
	customers port.CustomerRepository
	checkout  Checkouter
	gatherer  prometheus.Gatherer
	logger    *zap.Logger
}

func NewHandler(
	catalog port.CatalogRepository,
	customers port.CustomerRepository,
	checkout Checkouter,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		customers: customers,
		checkout:  checkout,
		gatherer:  gatherer,
		logger:    logger,
	}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id}", h.GetCustomer).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.Checkout).Methods(http.MethodPost)

	if h.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(h.gatherer)).Methods(http.MethodGet)
	}
}

// --- request / response shapes ---
type checkoutReq struct {
	CustomerID string         `json:"customer_id"`
	Lines      []checkoutLine `json:"lines"`
}

type checkoutLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type productDTO struct {
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Currency    string  `json:"currency"`
	Available   int     `json:"available"`
	WeightGrams *string `json:"weight_grams,omitempty"`
	Expired     bool    `json:"expired"`
}

type customerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type receiptLineDTO struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type shipmentEntryDTO struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	WeightGrams string `json:"weight_grams"`
}

type shipmentDTO struct {
	Entries       []shipmentEntryDTO `json:"entries"`
	TotalWeightKg string             `json:"total_weight_kg"`
}

type receiptDTO struct {
	CustomerID string           `json:"customer_id"`
	Lines      []receiptLineDTO `json:"lines"`
	Shipment   *shipmentDTO     `json:"shipment,omitempty"`
	Subtotal   string           `json:"subtotal"`
	Shipping   string           `json:"shipping"`
	Amount     string           `json:"amount"`
	Balance    string           `json:"balance"`
	Currency   string           `json:"currency"`
	Notices    []string         `json:"notices,omitempty"`
}

type errorDTO struct {
	Error   string   `json:"error"`
	Notices []string `json:"notices,omitempty"`
}

// --- helpers ---
func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Int("status", code), zap.Error(err))
	}
}

func (h *Handler) writeErr(w http.ResponseWriter, code int, msg string, notices ...string) {
	h.writeJSON(w, code, errorDTO{Error: msg, Notices: notices})
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		h.writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]productDTO, 0, len(items))
	for _, item := range items {
		p := productDTO{
			Name:      item.Name,
			Price:     item.Price.Amount.String(),
			Currency:  item.Price.Currency.String(),
			Available: item.Available(),
			Expired:   item.Expired,
		}
		if item.Shippable() {
			grams := item.Weight.Decimal.String()
			p.WeightGrams = &grams
		}
		out = append(out, p)
	}

	h.writeJSON(w, http.StatusOK, out)
}

// GetCustomer handles GET /customers/{id}
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, code, err := h.lookupCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeErr(w, code, err.Error())
		return
	}

	balance := customer.Balance()
	h.writeJSON(w, http.StatusOK, customerDTO{
		ID:       customer.ID.String(),
		Name:     customer.Name,
		Balance:  balance.Amount.String(),
		Currency: balance.Currency.String(),
	})
}

// Checkout handles POST /checkout
// body: { "customer_id": "...", "lines": [{ "name": "Cheese", "quantity": 2 }] }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeErr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx := r.Context()

	customer, code, err := h.lookupCustomer(ctx, req.CustomerID)
	if err != nil {
		h.writeErr(w, code, err.Error())
		return
	}

	var notices []string
	cart := domain.NewCart(domain.WithRejectHandler(func(rej domain.Rejection) {
		h.logger.Info("cart line rejected",
			zap.String("customer", customer.Name),
			zap.String("item", rej.Item),
			zap.Int("requested", rej.Requested),
			zap.Int("available", rej.Available),
		)
		notices = append(notices, rej.String())
	}))

	for _, line := range req.Lines {
		item, err := h.catalog.GetItem(ctx, line.Name)
		if errors.Is(err, port.ErrNotFound) {
			h.writeErr(w, http.StatusNotFound, "product "+line.Name+" not found", notices...)
			return
		}
		if err != nil {
			h.writeErr(w, http.StatusBadRequest, err.Error(), notices...)
			return
		}
		cart.Add(item, line.Quantity)
	}

	receipt, err := h.checkout.Checkout(ctx, customer, cart)
	if err != nil && len(receipt.Lines) == 0 {
		h.writeErr(w, statusFor(err), err.Error(), notices...)
		return
	}
	if err != nil {
		// settled, only the report failed
		h.logger.Warn("checkout settled with report failure", zap.Error(err))
	}

	dto := mapReceipt(receipt)
	dto.Notices = notices
	h.writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) lookupCustomer(ctx context.Context, rawID string) (*domain.Customer, int, error) {
	if rawID == "" {
		return nil, http.StatusBadRequest, errors.New("customer_id required")
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("customer_id is not a valid uuid")
	}

	customer, err := h.customers.GetCustomer(ctx, id)
	if errors.Is(err, port.ErrNotFound) {
		return nil, http.StatusNotFound, errors.New("customer not found")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return customer, http.StatusOK, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCartEmpty), errors.Is(err, domain.ErrItemExpired), errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func mapReceipt(receipt domain.Receipt) receiptDTO {
	dto := receiptDTO{
		CustomerID: receipt.CustomerID.String(),
		Lines:      make([]receiptLineDTO, 0, len(receipt.Lines)),
		Subtotal:   receipt.Subtotal.Amount.String(),
		Shipping:   receipt.Shipping.Amount.String(),
		Amount:     receipt.Total.Amount.String(),
		Balance:    receipt.Balance.Amount.String(),
		Currency:   receipt.Total.Currency.String(),
	}
	for _, line := range receipt.Lines {
		dto.Lines = append(dto.Lines, receiptLineDTO{
			Name:      line.Name,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal.Amount.String(),
		})
	}

	if receipt.Shipment != nil {
		shipment := &shipmentDTO{TotalWeightKg: receipt.Shipment.TotalWeightKg().StringFixed(1)}
		for _, entry := range receipt.Shipment.Entries {
			shipment.Entries = append(shipment.Entries, shipmentEntryDTO{
				Name:        entry.Name,
				Count:       entry.Count,
				WeightGrams: entry.Weight.String(),
			})
		}
		dto.Shipment = shipment
	}

	return dto
}
