// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/avikashyap/tableside/db"
	"github.com/avikashyap/tableside/testutil"
)

// newTestMux mirrors the routes the real router registers. The router
// package imports this one, so the test wires the handlers directly.
func newTestMux(conn *sql.DB) *http.ServeMux {
	orders := NewOrderHandler(conn)
	customers := NewCustomerHandler(conn)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", orders.Dashboard)
	mux.HandleFunc("POST /add", orders.AddOrder)
	mux.HandleFunc("GET /update_status/{order_id}/{status}", orders.UpdateStatus)
	mux.HandleFunc("GET /delete/{order_id}", orders.DeleteOrder)
	mux.HandleFunc("GET /delete_customer/{customer_id}", customers.DeleteCustomer)
	return mux
}

func seededID(t *testing.T, conn *sql.DB, query, key string) string {
	t.Helper()
	var id int64
	if err := conn.QueryRow(query, key).Scan(&id); err != nil {
		t.Fatalf("Failed to look up %q: %v", key, err)
	}
	return itoa(id)
}

// followRedirect replays the mutation's flash cookie into a dashboard GET
// and returns the rendered body, the way a browser would.
func followRedirect(t *testing.T, mux *http.ServeMux, prev *httptest.ResponseRecorder) string {
	t.Helper()
	testutil.AssertRedirect(t, prev)

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range prev.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 200)
	return w.Body.String()
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	if err := db.Seed(conn); err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}
	mux := newTestMux(conn)

	naan := seededID(t, conn, `SELECT id FROM menu_items WHERE name = $1`, "Naan")
	butterChicken := seededID(t, conn, `SELECT id FROM menu_items WHERE name = $1`, "Butter Chicken")

	// Place a dine-in order at T1 for a brand-new customer.
	form := url.Values{
		"customer_id":    {"new"},
		"name":           {"Asha"},
		"phone":          {"9876543210"},
		"payment_method": {"UPI"},
		"order_type":     {"Dine-in"},
		"table_number":   {"T1"},
		"discount":       {"10"},
		"items":          {naan, butterChicken},
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeFormRequest("/add", form))

	body := followRedirect(t, mux, w)
	for _, want := range []string{"Order placed successfully", "Asha", "324"} {
		if !strings.Contains(body, want) {
			t.Errorf("Dashboard after placement missing %q", want)
		}
	}
	if got := tableStatus(t, conn, "T1"); got != "Occupied" {
		t.Fatalf("Expected T1 Occupied after placement, got %s", got)
	}

	var orderID, customerID int64
	if err := conn.QueryRow(`SELECT id, customer_id FROM orders`).Scan(&orderID, &customerID); err != nil {
		t.Fatalf("Expected exactly one order: %v", err)
	}

	// A second table at the same order stays blocked while the first is active.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeFormRequest("/add", url.Values{
		"customer_id":    {itoa(customerID)},
		"payment_method": {"Cash"},
		"order_type":     {"Dine-in"},
		"table_number":   {"T1"},
		"items":          {naan},
	}))
	body = followRedirect(t, mux, w)
	if !strings.Contains(body, "Selected table is already occupied.") {
		t.Error("Expected occupied-table warning on second placement")
	}

	// Walk the order through to completion; the table frees up at the end.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/update_status/"+itoa(orderID)+"/Preparing", nil))
	followRedirect(t, mux, w)
	if got := tableStatus(t, conn, "T1"); got != "Occupied" {
		t.Errorf("Expected T1 still Occupied while Preparing, got %s", got)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/update_status/"+itoa(orderID)+"/Completed", nil))
	body = followRedirect(t, mux, w)
	if !strings.Contains(body, "Order status updated to Completed") {
		t.Error("Expected completion notice on dashboard")
	}
	if got := tableStatus(t, conn, "T1"); got != "Available" {
		t.Errorf("Expected T1 Available after completion, got %s", got)
	}

	// The customer still has an order on file, so deletion is refused.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/delete_customer/"+itoa(customerID), nil))
	body = followRedirect(t, mux, w)
	if !strings.Contains(body, "Cannot delete customer with existing orders") {
		t.Error("Expected customer deletion to be blocked")
	}

	// Remove the order, then the customer goes cleanly.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/delete/"+itoa(orderID), nil))
	followRedirect(t, mux, w)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/delete_customer/"+itoa(customerID), nil))
	body = followRedirect(t, mux, w)
	if !strings.Contains(body, "Customer deleted successfully") {
		t.Error("Expected customer deletion to succeed once orders are gone")
	}

	var remaining int
	conn.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&remaining)
	if remaining != 0 {
		t.Errorf("Expected no customers left, got %d", remaining)
	}
}
