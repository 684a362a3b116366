// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides request logging and flash notices.

# Logging

WithLogging wraps a handler with slog request/response lines, tagging each
request with a generated request id:

	mux.HandleFunc("GET /", middleware.WithLogging(handler.Dashboard))

# Flash Notices

Mutating routes redirect back to the dashboard with a one-shot notice in a
cookie, Flask-flash style. Categories: success, warning, error.

	middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Please select at least one item")

The dashboard reads and clears the notice via PopFlash.
*/
package middleware
