package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bepaid-gateway/internal/logger"
	"bepaid-gateway/internal/order"
	"bepaid-gateway/internal/payment"

	"go.uber.org/zap"
)

// CheckoutHandler exposes checkout-session creation to the storefront.
type CheckoutHandler struct {
	orders order.Service
}

func NewCheckoutHandler(orders order.Service) *CheckoutHandler {
	return &CheckoutHandler{orders: orders}
}

// CreateLink opens a checkout attempt for an order and returns the bePaid
// redirect URL. Gateway failures collapse into a generic message so no
// gateway particulars reach the browser; missing credentials surface as a
// merchant-visible configuration error.
func (h *CheckoutHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("orderID"), 10, 64)
	if err != nil {
		writeJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	link, err := h.orders.CreatePaymentLink(r.Context(), uint(id))
	switch {
	case errors.Is(err, payment.ErrMissingCredentials):
		writeJSONError(w, "payment gateway credentials are not configured", http.StatusServiceUnavailable)
	case errors.Is(err, order.ErrOrderNotFound):
		writeJSONError(w, "order not found", http.StatusNotFound)
	case err != nil:
		logger.FromCtx(r.Context()).Error("failed to create payment link",
			zap.Uint64("order_id", id),
			zap.Error(err),
		)
		writeJSONError(w, "payment is temporarily unavailable", http.StatusBadGateway)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"redirect_url": link})
	}
}

func (h *CheckoutHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}
