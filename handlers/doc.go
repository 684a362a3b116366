// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the dashboard.

# Handler Types

Each handler is a struct over the shared database handle:

  - OrderHandler: dashboard listing, order placement, status transitions,
    order deletion
  - CustomerHandler: customer deletion (customer creation happens inside
    order placement)

Handlers are created via constructor functions that accept *sql.DB:

	orderHandler := handlers.NewOrderHandler(db)

# Routes

	GET  /                                   → Dashboard (status/order_type filters)
	POST /add                                → AddOrder
	GET  /update_status/{order_id}/{status}  → UpdateStatus
	GET  /delete/{order_id}                  → DeleteOrder
	GET  /delete_customer/{customer_id}      → DeleteCustomer

Every mutating route redirects back to / with a flash notice.

# Order Placement

AddOrder runs as one transaction: customer resolution (by explicit id or by
phone number), item snapshotting at current menu prices, the dine-in table
pre-check, the order insert and the table update all commit or roll back
together. Item ids that no longer resolve to an available menu item are
skipped; an order whose snapshot ends up empty is rejected.

# Table Occupancy

A table is Occupied iff at least one dine-in order referencing it is
Pending or Preparing. Status transitions and deletions re-derive this from
a count of the remaining active orders rather than reacting to the single
transitioning order, so several orders sharing a table stay consistent.
*/
package handlers
