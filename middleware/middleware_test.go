// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		category string
		message  string
	}{
		{"success notice", FlashSuccess, "Order placed successfully"},
		{"warning notice", FlashWarning, "Please select at least one item"},
		{"error notice", FlashError, "Failed to place order: boom"},
		{"message with separators", FlashError, "weird; value, with = chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set the flash
			w := httptest.NewRecorder()
			SetFlash(w, tt.category, tt.message)

			cookies := w.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("Expected 1 cookie, got %d", len(cookies))
			}

			// Pop it on the follow-up request
			req := httptest.NewRequest("GET", "/", nil)
			req.AddCookie(cookies[0])
			w2 := httptest.NewRecorder()

			flash, ok := PopFlash(w2, req)
			if !ok {
				t.Fatal("Expected a flash to pop")
			}
			if flash.Category != tt.category {
				t.Errorf("Expected category %q, got %q", tt.category, flash.Category)
			}
			if flash.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, flash.Message)
			}
		})
	}
}

func TestPopFlashClearsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetFlash(w, FlashSuccess, "done")

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(w.Result().Cookies()[0])
	w2 := httptest.NewRecorder()

	if _, ok := PopFlash(w2, req); !ok {
		t.Fatal("Expected a flash to pop")
	}

	// The pop response must expire the cookie
	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == "tableside_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected flash cookie to be cleared")
	}
}

func TestPopFlashNoCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	if _, ok := PopFlash(w, req); ok {
		t.Error("Expected no flash without a cookie")
	}
}

func TestPopFlashGarbageCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "tableside_flash", Value: "not-base64!!"})
	w := httptest.NewRecorder()

	if _, ok := PopFlash(w, req); ok {
		t.Error("Expected no flash for an undecodable cookie")
	}
}

func TestWithLogging(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if !called {
		t.Error("Expected wrapped handler to be called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status to pass through, got %d", w.Code)
	}
}
