package router

import (
	"net/http"

	"ventas-backoffice/app/controller"
)

type Controllers struct {
	CompositeProduct *controller.CompositeProductController
	Order            *controller.OrderController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Composite products routes
	http.HandleFunc("/composite-products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.CompositeProduct.List(w, r)
		case http.MethodPost:
			controllers.CompositeProduct.Create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Composite product by id - GET, PUT and DELETE
	http.HandleFunc("/composite-products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.CompositeProduct.Get(w, r)
		case http.MethodPut:
			controllers.CompositeProduct.Update(w, r)
		case http.MethodDelete:
			controllers.CompositeProduct.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Orders routes
	http.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Order.List(w, r)
		case http.MethodPost:
			controllers.Order.Create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Order by id - GET, PUT and DELETE
	http.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Order.Get(w, r)
		case http.MethodPut:
			controllers.Order.Update(w, r)
		case http.MethodDelete:
			controllers.Order.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
