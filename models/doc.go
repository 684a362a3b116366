// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and view types shared by the handlers.

# Domain Types

  - Customer: guest identity keyed by phone number
  - MenuItem: priced menu entry with an availability flag
  - Table: physical table with Available/Occupied/Reserved status
  - Order: placed order carrying its item snapshot and computed total

# Item Snapshots

Orders persist a denormalized copy of each item's name and unit price taken
at placement time, serialized as a JSON array:

	[{"item": "Naan", "price": 40}, {"item": "Butter Chicken", "price": 320}]

ItemList owns the (de)serialization. A stored blob that fails to parse is
rendered as InvalidItemsLabel rather than failing the listing.

# View Types

  - OrderRow: a listing row joined with the customer name, with the date and
    item snapshot pre-rendered
  - DashboardStats: pending order count, available table count, today's sales

# Constants

Order status:

	StatusPending, StatusPreparing, StatusCompleted

Order type:

	TypeDineIn, TypeTakeaway, TypeDelivery

Payment method:

	PayCash, PayCard, PayUPI, PayOther

Table status:

	TableAvailable, TableOccupied, TableReserved
*/
package models
