// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/avikashyap/tableside/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	testutil.AssertStatus(t, w, 200)
	if w.Body.String() != "OK" {
		t.Errorf("Expected body OK, got %q", w.Body.String())
	}
}

func TestDashboardEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, 200)
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	// Routes must be registered; anything else 404s. Handlers themselves
	// redirect with a notice even for missing rows, so 303 is a hit.
	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"update status", "GET", "/update_status/1/Completed", http.StatusSeeOther},
		{"delete order", "GET", "/delete/1", http.StatusSeeOther},
		{"delete customer", "GET", "/delete_customer/1", http.StatusSeeOther},
		{"add order wrong method", "GET", "/add", http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/nope", http.StatusNotFound},
		{"nested unknown path", "GET", "/orders/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, w.Code)
			}
		})
	}
}

func TestAddOrderThroughRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	item := testutil.CreateTestMenuItem(t, db, "Masala Chai", "Beverage", 40.00, true)

	form := url.Values{
		"customer_id":    {"new"},
		"name":           {"Asha"},
		"phone":          {"9876543210"},
		"payment_method": {"Cash"},
		"order_type":     {"Takeaway"},
		"items":          {strconv.FormatInt(item, 10)},
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeFormRequest("/add", form))

	testutil.AssertRedirect(t, w)

	var count int
	db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 order placed through router, got %d", count)
	}
}
