package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"ventas-backoffice/models"
	"ventas-backoffice/repository"
	"ventas-backoffice/service"
)

// OrderController handles HTTP requests for sales orders
type OrderController struct {
	repository repository.OrderRepositoryInterface
	catalog    service.CatalogServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, catalog service.CatalogServiceInterface) *OrderController {
	return &OrderController{repository: repo, catalog: catalog}
}

// List handles GET /orders?clientId=
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListOrders: Received %s request to %s", r.Method, r.URL.Path)

	var clientID *int64
	if value := r.URL.Query().Get("clientId"); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid clientId parameter")
			return
		}
		clientID = &parsed
	}

	orders, err := c.repository.List(r.Context(), clientID)
	if err != nil {
		log.Printf("❌ ListOrders: Error fetching orders: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	if orders == nil {
		orders = []models.OrderListItem{}
	}
	respondJSON(w, http.StatusOK, models.OrderListResponse{Orders: orders})
}

// Get handles GET /orders/:id
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetOrder: Received %s request to %s", r.Method, r.URL.Path)

	id, err := c.parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("❌ GetOrder: Error fetching order: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create handles POST /orders
// Example request:
// POST /orders
// {
//   "clientId": 3,
//   "emissionDate": "2026-08-01",
//   "currency": "PEN",
//   "exchangeRate": 3.75,
//   "lines": [{"catalogItemId": 7, "quantity": 2, "unitPrice": 35.5}]
// }
// The response carries the recomputed total plus the derived subtotal/tax view.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateOrder: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateOrder: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	// Rejected here, before any transaction opens.
	accepted, _ := repository.ValidateOrderLines(req.Lines)
	if req.ClientID == 0 || len(accepted) == 0 {
		log.Printf("❌ CreateOrder: Missing client or empty valid line set")
		respondError(w, http.StatusBadRequest, "clientId and a non-empty set of valid lines are required")
		return
	}

	if ok := c.checkLinePrices(r.Context(), w, accepted); !ok {
		return
	}

	order, rejected, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ CreateOrder: Error creating order: %v", err)
		respondError(w, http.StatusInternalServerError, msgTransactionFailed)
		return
	}

	log.Printf("✅ CreateOrder: Created order id=%d", order.ID)
	respondJSON(w, http.StatusCreated, models.OrderWriteResponse{
		Message:       "order created",
		Order:         order,
		RejectedLines: rejected,
	})
}

// Update handles PUT /orders/:id. A present lines collection (even empty)
// replaces the line set and recomputes the total.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateOrder: Received %s request to %s", r.Method, r.URL.Path)

	id, err := c.parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var req models.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateOrder: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Lines != nil {
		accepted, _ := repository.ValidateOrderLines(*req.Lines)
		if ok := c.checkLinePrices(r.Context(), w, accepted); !ok {
			return
		}
	}

	order, rejected, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, repository.ErrVersionConflict):
			respondError(w, http.StatusConflict, msgVersionConflict)
		default:
			log.Printf("❌ UpdateOrder: Error updating order: %v", err)
			respondError(w, http.StatusInternalServerError, msgTransactionFailed)
		}
		return
	}

	log.Printf("✅ UpdateOrder: Updated order id=%d", id)
	respondJSON(w, http.StatusOK, models.OrderWriteResponse{
		Message:       "order updated",
		Order:         order,
		RejectedLines: rejected,
	})
}

// Delete handles DELETE /orders/:id
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteOrder: Received %s request to %s", r.Method, r.URL.Path)

	id, err := c.parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("❌ DeleteOrder: Error deleting order: %v", err)
		respondError(w, http.StatusInternalServerError, msgTransactionFailed)
		return
	}

	log.Printf("✅ DeleteOrder: Deleted order id=%d", id)
	respondJSON(w, http.StatusOK, models.OrderWriteResponse{Message: "order deleted"})
}

// priceTolerance absorbs float noise a client-sent price picks up on the
// JSON round trip. Well below a céntimo, so real price changes still fail.
const priceTolerance = 1e-6

// checkLinePrices re-validates client-sent unit prices against the current
// catalog price before the transaction opens. Lines flagged priceOverride
// and items unknown to the catalog are skipped. Writes the error response
// itself and reports whether the caller may proceed.
func (c *OrderController) checkLinePrices(ctx context.Context, w http.ResponseWriter, lines []models.OrderLineInput) bool {
	for _, line := range lines {
		if line.PriceOverride {
			continue
		}
		catalogPrice, known, err := c.catalog.UnitPrice(ctx, line.CatalogItemID)
		if err != nil {
			log.Printf("❌ Order: Error checking catalog price for catalog_item_id=%d: %v", line.CatalogItemID, err)
			respondError(w, http.StatusInternalServerError, "failed to validate line prices")
			return false
		}
		if known && math.Abs(catalogPrice-line.UnitPrice) > priceTolerance {
			log.Printf("❌ Order: Unit price mismatch for catalog_item_id=%d (got %v, catalog %v)", line.CatalogItemID, line.UnitPrice, catalogPrice)
			respondError(w, http.StatusBadRequest, "unit price does not match the catalog price; set priceOverride to force it")
			return false
		}
	}
	return true
}

// parseID extracts the numeric id from /orders/:id
func (c *OrderController) parseID(r *http.Request) (int64, error) {
	idStr := strings.TrimPrefix(r.URL.Path, "/orders/")
	return strconv.ParseInt(idStr, 10, 64)
}
