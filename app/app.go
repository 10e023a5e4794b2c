package app

import (
	"database/sql"
	"fmt"

	"ventas-backoffice/app/controller"
	"ventas-backoffice/app/router"
	"ventas-backoffice/config"
	"ventas-backoffice/db"
	"ventas-backoffice/repository"
	"ventas-backoffice/service"
)

// Initialize wires the application: database handle, repositories, services
// and controllers. Returns the database handle so the caller can close it.
func Initialize(cfg *config.Config) (*sql.DB, error) {
	// Initialize database connection
	database, err := db.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	compositeProductRepo := repository.NewCompositeProductRepository(database)
	orderRepo := repository.NewOrderRepository(database, cfg.TaxRate)

	// Initialize catalog lookup service
	catalogService := service.NewCatalogService(database)

	// Create controllers
	controllers := &router.Controllers{
		CompositeProduct: controller.NewCompositeProductController(compositeProductRepo),
		Order:            controller.NewOrderController(orderRepo, catalogService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return database, nil
}
