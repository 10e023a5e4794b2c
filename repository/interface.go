package repository

import (
	"context"

	"ventas-backoffice/models"
)

// CompositeProductRepositoryInterface defines the contract for composite product write and read operations
type CompositeProductRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateCompositeProductRequest) (*models.CompositeProductResponse, []models.RejectedItem, error)
	Update(ctx context.Context, id int64, req *models.UpdateCompositeProductRequest) (*models.CompositeProductResponse, []models.RejectedItem, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.CompositeProductResponse, error)
	List(ctx context.Context, name *string) ([]models.CompositeProductResponse, error)
}

// OrderRepositoryInterface defines the contract for order write and read operations
type OrderRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, []models.RejectedItem, error)
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.OrderResponse, []models.RejectedItem, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.OrderResponse, error)
	List(ctx context.Context, clientID *int64) ([]models.OrderListItem, error)
}
