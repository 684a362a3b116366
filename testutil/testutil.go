// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/avikashyap/tableside/db"
	"github.com/avikashyap/tableside/middleware"
	"github.com/avikashyap/tableside/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// No external services are required to run the tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A pooled :memory: DSN would give each connection its own database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestCustomer inserts a customer and returns its id
func CreateTestCustomer(t *testing.T, conn *sql.DB, name, phone string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO customers (name, phone) VALUES ($1, $2) RETURNING id
	`, name, phone).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return id
}

// CreateTestMenuItem inserts a menu item and returns its id
func CreateTestMenuItem(t *testing.T, conn *sql.DB, name, category string, price float64, available bool) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO menu_items (name, category, price, is_available)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, name, category, price, available).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test menu item: %v", err)
	}
	return id
}

// CreateTestTable inserts a table with the given status and returns its id
func CreateTestTable(t *testing.T, conn *sql.DB, number string, capacity int, status string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO tables (table_number, capacity, status)
		VALUES ($1, $2, $3) RETURNING id
	`, number, capacity, status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}
	return id
}

// CreateTestOrder inserts an order and returns its id. tableNumber may be
// empty for orders without a table.
func CreateTestOrder(t *testing.T, conn *sql.DB, customerID int64, status, orderType, tableNumber string, items models.ItemList, total float64) int64 {
	t.Helper()

	itemsJSON, err := items.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal test items: %v", err)
	}

	var tableVal any
	if tableNumber != "" {
		tableVal = tableNumber
	}

	var id int64
	err = conn.QueryRow(`
		INSERT INTO orders (customer_id, items, total_amount, payment_method, status, order_type, table_number)
		VALUES ($1, $2, $3, 'Cash', $4, $5, $6) RETURNING id
	`, customerID, itemsJSON, total, status, orderType, tableVal).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return id
}

// MakeFormRequest creates a form-encoded POST request
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for the 303 redirect to the dashboard that every
// mutating route responds with
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d. Body: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
}

// PoppedFlash decodes the flash notice a handler attached to its response
func PoppedFlash(t *testing.T, w *httptest.ResponseRecorder) (middleware.Flash, bool) {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return middleware.PopFlash(httptest.NewRecorder(), req)
}

// AssertFlash checks the category of the flash notice set by a handler
func AssertFlash(t *testing.T, w *httptest.ResponseRecorder, category string) middleware.Flash {
	t.Helper()

	flash, ok := PoppedFlash(t, w)
	if !ok {
		t.Fatal("Expected a flash notice")
	}
	if flash.Category != category {
		t.Errorf("Expected flash category %q, got %q (message %q)", category, flash.Category, flash.Message)
	}
	return flash
}
