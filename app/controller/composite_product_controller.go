package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"ventas-backoffice/models"
	"ventas-backoffice/repository"
)

// CompositeProductController handles HTTP requests for composite products
type CompositeProductController struct {
	repository repository.CompositeProductRepositoryInterface
}

// NewCompositeProductController creates a new CompositeProductController
func NewCompositeProductController(repo repository.CompositeProductRepositoryInterface) *CompositeProductController {
	return &CompositeProductController{repository: repo}
}

// List handles GET /composite-products?name=
func (c *CompositeProductController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListCompositeProducts: Received %s request to %s", r.Method, r.URL.Path)

	var name *string
	if value := r.URL.Query().Get("name"); value != "" {
		name = &value
	}

	products, err := c.repository.List(r.Context(), name)
	if err != nil {
		log.Printf("❌ ListCompositeProducts: Error fetching products: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch composite products")
		return
	}

	if products == nil {
		products = []models.CompositeProductResponse{}
	}
	respondJSON(w, http.StatusOK, models.CompositeProductListResponse{Items: products})
}

// Get handles GET /composite-products/:id
func (c *CompositeProductController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCompositeProduct: Received %s request to %s", r.Method, r.URL.Path)

	id, err := c.parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "composite product not found")
			return
		}
		log.Printf("❌ GetCompositeProduct: Error fetching product: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch composite product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Create handles POST /composite-products
// Example request:
// POST /composite-products
// {
//   "name": "Kit escritorio",
//   "unitSalePrice": 250,
//   "unitPurchasePrice": 180,
//   "associatedItems": [{"catalogItemId": 7, "quantity": 2}]
// }
func (c *CompositeProductController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateCompositeProduct: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateCompositeProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateCompositeProduct: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	// Rejected here, before any transaction opens.
	if strings.TrimSpace(req.Name) == "" || req.UnitSalePrice == nil || req.UnitPurchasePrice == nil {
		log.Printf("❌ CreateCompositeProduct: Missing mandatory fields")
		respondError(w, http.StatusBadRequest, "name, unitSalePrice and unitPurchasePrice are required")
		return
	}

	product, rejected, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ CreateCompositeProduct: Error creating product: %v", err)
		respondError(w, http.StatusInternalServerError, msgTransactionFailed)
		return
	}

	log.Printf("✅ CreateCompositeProduct: Created product id=%d", product.ID)
	respondJSON(w, http.StatusCreated, models.CompositeProductWriteResponse{
		Message:       "composite product created",
		Item:          product,
		RejectedItems: rejected,
	})
}

// Update handles PUT /composite-products/:id. All fields are optional; a
// present associatedItems collection (even empty) replaces the item set.
func (c *CompositeProductController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateCompositeProduct: Received %s request to %s", r.Method, r.URL.Path)

	id, err := c.parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var req models.UpdateCompositeProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateCompositeProduct: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	product, rejected, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(w, http.StatusNotFound, "composite product not found")
		case errors.Is(err, repository.ErrVersionConflict):
			respondError(w, http.StatusConflict, msgVersionConflict)
		default:
			log.Printf("❌ UpdateCompositeProduct: Error updating product: %v", err)
			respondError(w, http.StatusInternalServerError, msgTransactionFailed)
		}
		return
	}

	log.Printf("✅ UpdateCompositeProduct: Updated product id=%d", id)
	respondJSON(w, http.StatusOK, models.CompositeProductWriteResponse{
		Message:       "composite product updated",
		Item:          product,
		RejectedItems: rejected,
	})
}

// Delete handles DELETE /composite-products/:id
func (c *CompositeProductController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteCompositeProduct: Received %s request to %s", r.Method, r.URL.Path)

	id, err := c.parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "composite product not found")
			return
		}
		log.Printf("❌ DeleteCompositeProduct: Error deleting product: %v", err)
		respondError(w, http.StatusInternalServerError, msgTransactionFailed)
		return
	}

	log.Printf("✅ DeleteCompositeProduct: Deleted product id=%d", id)
	respondJSON(w, http.StatusOK, models.CompositeProductWriteResponse{Message: "composite product deleted"})
}

// parseID extracts the numeric id from /composite-products/:id
func (c *CompositeProductController) parseID(r *http.Request) (int64, error) {
	idStr := strings.TrimPrefix(r.URL.Path, "/composite-products/")
	return strconv.ParseInt(idStr, 10, 64)
}
