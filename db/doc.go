// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and seeding.

# Schema Creation

CreateSchema initializes all required tables for the configured dialect:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Two dialects are supported, sqlite (modernc.org/sqlite) and postgres
(lib/pq). Outside the DDL every query in the application is written in the
shared subset: $N placeholders, TEXT + CHECK constraints instead of enums,
CURRENT_TIMESTAMP defaults, and RETURNING for generated ids.

# Tables

  - customers: guest roster, phone is the unique natural key
  - menu_items: priced menu with an availability flag
  - tables: physical tables with Available/Occupied/Reserved status
  - orders: placed orders; items holds the JSON snapshot taken at order time

# Seeding

Seed inserts the starter menu (22 items) and table roster (T1-T8), each only
when its table is empty:

	if err := db.Seed(conn); err != nil {
		log.Fatal(err)
	}
*/
package db
