package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dhruv/estate-hub/backend/internal/models"
)

// OrderCreator defines the interface for order creation at the gateway.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.Order, error)
}

// Handler holds the payment HTTP handlers.
type Handler struct {
	gateway OrderCreator
}

func NewHandler(gateway OrderCreator) *Handler {
	return &Handler{gateway: gateway}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CreateOrder asks the gateway to open a purchase order and relays the
// gateway's order object to the client. The receipt id is time-derived;
// the gateway is the only party checking it for collisions.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Amount == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Amount is required"})
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	order, err := h.gateway.CreateOrder(r.Context(), req.Amount, req.Currency, receipt)
	if err != nil {
		log.Printf("create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Server error",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, order)
}
