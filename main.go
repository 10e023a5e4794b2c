package main

import (
	"log"
	"net/http"

	"ventas-backoffice/app"
	"ventas-backoffice/config"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	// Initialize application
	database, err := app.Initialize(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces
	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server starting on %s", addr)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
