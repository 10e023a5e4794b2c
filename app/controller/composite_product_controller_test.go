package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventas-backoffice/models"
	"ventas-backoffice/repository"
)

// fakeCompositeProductRepo records calls so tests can assert that rejected
// requests never reach the write path.
type fakeCompositeProductRepo struct {
	createCalled bool
	updateCalled bool
	deleteCalled bool

	resp     *models.CompositeProductResponse
	rejected []models.RejectedItem
	err      error
}

var _ repository.CompositeProductRepositoryInterface = (*fakeCompositeProductRepo)(nil)

func (f *fakeCompositeProductRepo) Create(ctx context.Context, req *models.CreateCompositeProductRequest) (*models.CompositeProductResponse, []models.RejectedItem, error) {
	f.createCalled = true
	return f.resp, f.rejected, f.err
}

func (f *fakeCompositeProductRepo) Update(ctx context.Context, id int64, req *models.UpdateCompositeProductRequest) (*models.CompositeProductResponse, []models.RejectedItem, error) {
	f.updateCalled = true
	return f.resp, f.rejected, f.err
}

func (f *fakeCompositeProductRepo) Delete(ctx context.Context, id int64) error {
	f.deleteCalled = true
	return f.err
}

func (f *fakeCompositeProductRepo) GetByID(ctx context.Context, id int64) (*models.CompositeProductResponse, error) {
	return f.resp, f.err
}

func (f *fakeCompositeProductRepo) List(ctx context.Context, name *string) ([]models.CompositeProductResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.resp == nil {
		return nil, nil
	}
	return []models.CompositeProductResponse{*f.resp}, nil
}

func sampleCompositeProduct() *models.CompositeProductResponse {
	return &models.CompositeProductResponse{
		CompositeProduct: models.CompositeProduct{
			ID:                1,
			Name:              "Kit escritorio",
			UnitSalePrice:     250,
			UnitPurchasePrice: 180,
			Currency:          "PEN",
			IsActive:          true,
			Version:           1,
		},
		Items: []models.CompositeProductItem{
			{ID: 1, CompositeProductID: 1, CatalogItemID: 7, Quantity: 2},
		},
	}
}

func TestCreateCompositeProductMissingFieldsRejectedBeforeWrite(t *testing.T) {
	for name, body := range map[string]string{
		"no name":           `{"unitSalePrice": 250, "unitPurchasePrice": 180}`,
		"no sale price":     `{"name": "Kit", "unitPurchasePrice": 180}`,
		"no purchase price": `{"name": "Kit", "unitSalePrice": 250}`,
		"blank name":        `{"name": "  ", "unitSalePrice": 250, "unitPurchasePrice": 180}`,
	} {
		t.Run(name, func(t *testing.T) {
			repo := &fakeCompositeProductRepo{}
			ctrl := NewCompositeProductController(repo)

			req := httptest.NewRequest(http.MethodPost, "/composite-products", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()
			ctrl.Create(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, repo.createCalled, "no transaction must be opened for invalid requests")
		})
	}
}

func TestCreateCompositeProduct(t *testing.T) {
	repo := &fakeCompositeProductRepo{
		resp: sampleCompositeProduct(),
		rejected: []models.RejectedItem{
			{Index: 1, CatalogItemID: 9, Reason: repository.ReasonMissingQuantity},
		},
	}
	ctrl := NewCompositeProductController(repo)

	body := `{"name": "Kit escritorio", "unitSalePrice": 250, "unitPurchasePrice": 180,
		"associatedItems": [{"catalogItemId": 7, "quantity": 2}, {"catalogItemId": 9, "quantity": 0}]}`
	req := httptest.NewRequest(http.MethodPost, "/composite-products", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, repo.createCalled)

	var resp models.CompositeProductWriteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "composite product created", resp.Message)
	require.NotNil(t, resp.Item)
	assert.Equal(t, int64(1), resp.Item.ID)
	assert.Len(t, resp.Item.Items, 1)
	require.Len(t, resp.RejectedItems, 1)
	assert.Equal(t, repository.ReasonMissingQuantity, resp.RejectedItems[0].Reason)
}

func TestCreateCompositeProductTransactionFailure(t *testing.T) {
	repo := &fakeCompositeProductRepo{err: errors.New("connection reset")}
	ctrl := NewCompositeProductController(repo)

	body := `{"name": "Kit", "unitSalePrice": 250, "unitPurchasePrice": 180}`
	req := httptest.NewRequest(http.MethodPost, "/composite-products", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The underlying cause stays server-side.
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestUpdateCompositeProductNotFound(t *testing.T) {
	repo := &fakeCompositeProductRepo{err: repository.ErrNotFound}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodPut, "/composite-products/999", bytes.NewBufferString(`{"name": "x"}`))
	rec := httptest.NewRecorder()
	ctrl.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCompositeProductVersionConflict(t *testing.T) {
	repo := &fakeCompositeProductRepo{err: repository.ErrVersionConflict}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodPut, "/composite-products/5", bytes.NewBufferString(`{"name": "x", "version": 1}`))
	rec := httptest.NewRecorder()
	ctrl.Update(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateCompositeProduct(t *testing.T) {
	repo := &fakeCompositeProductRepo{resp: sampleCompositeProduct()}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodPut, "/composite-products/1", bytes.NewBufferString(`{"associatedItems": []}`))
	rec := httptest.NewRecorder()
	ctrl.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.updateCalled)
}

func TestUpdateCompositeProductInvalidID(t *testing.T) {
	repo := &fakeCompositeProductRepo{}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodPut, "/composite-products/abc", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	ctrl.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, repo.updateCalled)
}

func TestDeleteCompositeProductNotFound(t *testing.T) {
	repo := &fakeCompositeProductRepo{err: repository.ErrNotFound}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodDelete, "/composite-products/999", nil)
	rec := httptest.NewRecorder()
	ctrl.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "composite product not found", resp["message"])
}

func TestDeleteCompositeProduct(t *testing.T) {
	repo := &fakeCompositeProductRepo{}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodDelete, "/composite-products/5", nil)
	rec := httptest.NewRecorder()
	ctrl.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.deleteCalled)
}

func TestListCompositeProducts(t *testing.T) {
	repo := &fakeCompositeProductRepo{resp: sampleCompositeProduct()}
	ctrl := NewCompositeProductController(repo)

	req := httptest.NewRequest(http.MethodGet, "/composite-products?name=kit", nil)
	rec := httptest.NewRecorder()
	ctrl.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CompositeProductListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Items, 1)
}
