// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Tableside server.

Tableside is a restaurant order-management web application: staff place
orders against a shared menu, track their status, and manage tables and
the customer roster. The dashboard is server-rendered HTML; every mutation
redirects back to it with a transient notice.

# Starting the Server

With no configuration the server runs against a local sqlite file:

	go run .

Against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..."

A .env file in the working directory is loaded before environment lookups.

# Startup

On boot the server creates the schema (idempotent) and seeds the starter
menu and table roster when those tables are empty, then serves:

	GET  /                                   dashboard with filters
	POST /add                                place an order
	GET  /update_status/{order_id}/{status}  transition an order
	GET  /delete/{order_id}                  delete an order
	GET  /delete_customer/{customer_id}      delete a customer
	GET  /health                             liveness probe
*/
package main
