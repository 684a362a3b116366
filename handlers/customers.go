// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avikashyap/tableside/middleware"
)

type CustomerHandler struct {
	db *sql.DB
}

func NewCustomerHandler(db *sql.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// resolveCustomer returns the customer id an order should reference. An
// explicit id is trusted as-is; otherwise the phone number is the natural
// key: an existing customer with that phone is reused (any differing name
// or email in the form is ignored), a new one is inserted if none exists.
// A non-empty userMsg is a validation failure to surface as a warning.
func resolveCustomer(tx *sql.Tx, rawID, name, phone, email, address string) (int64, string, error) {
	if rawID != "" && rawID != "new" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return 0, "Invalid customer selection", nil
		}
		return id, "", nil
	}

	if phone == "" || name == "" {
		return 0, "Phone number and name are required for new customers", nil
	}

	var id int64
	err := tx.QueryRow(`SELECT id FROM customers WHERE phone = $1`, phone).Scan(&id)
	if err == nil {
		return id, "", nil
	}
	if err != sql.ErrNoRows {
		return 0, "", fmt.Errorf("failed to look up customer by phone: %w", err)
	}

	var emailVal, addressVal any
	if email != "" {
		emailVal = email
	}
	if address != "" {
		addressVal = address
	}

	err = tx.QueryRow(`
		INSERT INTO customers (name, phone, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, name, phone, emailVal, addressVal).Scan(&id)
	if err != nil {
		if isConstraintViolation(err) {
			return 0, "A customer with this phone number already exists", nil
		}
		return 0, "", fmt.Errorf("failed to insert customer: %w", err)
	}

	slog.Info("customer created", "customer_id", id)
	return id, "", nil
}

// DeleteCustomer handles GET /delete_customer/{customer_id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.PathValue("customer_id"), 10, 64)
	if err != nil {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Customer not found")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete customer")
		return
	}
	defer tx.Rollback()

	// Friendly pre-check; the foreign key still backstops a race.
	var orderCount int
	err = tx.QueryRow(`SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID).Scan(&orderCount)
	if err != nil {
		slog.Error("failed to count customer orders", "customer_id", customerID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete customer")
		return
	}
	if orderCount > 0 {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Cannot delete customer with existing orders")
		return
	}

	res, err := tx.Exec(`DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		if isConstraintViolation(err) {
			middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Cannot delete customer with existing orders")
			return
		}
		slog.Error("failed to delete customer", "customer_id", customerID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete customer")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete customer")
		return
	}
	if affected == 0 {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Customer not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit customer deletion", "customer_id", customerID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete customer")
		return
	}

	slog.Info("customer deleted", "customer_id", customerID)
	middleware.RedirectWithFlash(w, r, middleware.FlashSuccess, "Customer deleted successfully")
}
