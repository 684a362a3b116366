// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

NewRouter builds a ServeMux with the dashboard, the order lifecycle routes,
customer deletion and a health check. All handlers share one *sql.DB and
run behind the logging middleware.
*/
package router
