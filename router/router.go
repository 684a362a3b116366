// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/avikashyap/tableside/handlers"
	"github.com/avikashyap/tableside/middleware"
)

func NewRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard (status and order_type query filters)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(orderHandler.Dashboard))

	// Order lifecycle
	mux.HandleFunc("POST /add", middleware.WithLogging(orderHandler.AddOrder))
	mux.HandleFunc("GET /update_status/{order_id}/{status}", middleware.WithLogging(orderHandler.UpdateStatus))
	mux.HandleFunc("GET /delete/{order_id}", middleware.WithLogging(orderHandler.DeleteOrder))

	// Customers
	mux.HandleFunc("GET /delete_customer/{customer_id}", middleware.WithLogging(customerHandler.DeleteCustomer))

	return mux
}
