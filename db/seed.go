// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

type seedMenuItem struct {
	name     string
	category string
	price    float64
}

type seedTable struct {
	number   string
	capacity int
}

var seedMenu = []seedMenuItem{
	{"Paneer Tikka", "Appetizer", 180.00},
	{"Veg Spring Roll", "Appetizer", 120.00},
	{"Chicken Wings", "Appetizer", 220.00},
	{"French Fries", "Appetizer", 100.00},
	{"Dal Tadka", "Main Course", 150.00},
	{"Paneer Butter Masala", "Main Course", 250.00},
	{"Chicken Curry", "Main Course", 280.00},
	{"Butter Chicken", "Main Course", 320.00},
	{"Fish Curry", "Main Course", 350.00},
	{"Veg Biryani", "Main Course", 200.00},
	{"Chicken Biryani", "Main Course", 280.00},
	{"Naan", "Bread", 40.00},
	{"Roti", "Bread", 20.00},
	{"Garlic Naan", "Bread", 50.00},
	{"Butter Roti", "Bread", 25.00},
	{"Gulab Jamun", "Dessert", 80.00},
	{"Ice Cream", "Dessert", 100.00},
	{"Ras Malai", "Dessert", 120.00},
	{"Cold Coffee", "Beverage", 100.00},
	{"Masala Chai", "Beverage", 40.00},
	{"Fresh Lime Soda", "Beverage", 60.00},
	{"Mango Lassi", "Beverage", 80.00},
}

var seedTables = []seedTable{
	{"T1", 2}, {"T2", 2}, {"T3", 4}, {"T4", 4},
	{"T5", 4}, {"T6", 6}, {"T7", 6}, {"T8", 8},
}

// Seed inserts the starter menu and table roster. Each set is only inserted
// when its table is empty, so repeated startups never duplicate rows.
func Seed(db *sql.DB) error {
	var menuCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM menu_items").Scan(&menuCount); err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if menuCount == 0 {
		for _, item := range seedMenu {
			_, err := db.Exec(`
				INSERT INTO menu_items (name, category, price)
				VALUES ($1, $2, $3)
			`, item.name, item.category, item.price)
			if err != nil {
				return fmt.Errorf("failed to seed menu item %q: %w", item.name, err)
			}
		}
	}

	var tableCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM tables").Scan(&tableCount); err != nil {
		return fmt.Errorf("failed to count tables: %w", err)
	}
	if tableCount == 0 {
		for _, tbl := range seedTables {
			_, err := db.Exec(`
				INSERT INTO tables (table_number, capacity)
				VALUES ($1, $2)
			`, tbl.number, tbl.capacity)
			if err != nil {
				return fmt.Errorf("failed to seed table %q: %w", tbl.number, err)
			}
		}
	}

	return nil
}
