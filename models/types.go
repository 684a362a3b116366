// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"
)

// Order status constants
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusCompleted = "Completed"
)

// Order type constants
const (
	TypeDineIn   = "Dine-in"
	TypeTakeaway = "Takeaway"
	TypeDelivery = "Delivery"
)

// Payment method constants
const (
	PayCash  = "Cash"
	PayCard  = "Card"
	PayUPI   = "UPI"
	PayOther = "Other"
)

// Table status constants
const (
	TableAvailable = "Available"
	TableOccupied  = "Occupied"
	TableReserved  = "Reserved"
)

// ValidStatus reports whether s is one of the three order status labels.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusPreparing || s == StatusCompleted
}

// Domain types

type Customer struct {
	ID       int64
	Name     string
	Phone    string
	Email    *string
	Address  *string
	JoinedOn time.Time
}

type MenuItem struct {
	ID          int64
	Name        string
	Category    string
	Price       float64
	IsAvailable bool
}

type Table struct {
	ID          int64
	TableNumber string
	Capacity    int
	Status      string
}

type Order struct {
	ID            int64
	CustomerID    int64
	Items         ItemList
	TotalAmount   float64
	Discount      float64
	PaymentMethod string
	Status        string
	OrderType     string
	TableNumber   *string
	OrderDate     time.Time
}

// View types

// OrderRow is one row of the dashboard listing: an order joined with its
// customer and with the item snapshot already rendered.
type OrderRow struct {
	ID            int64
	CustomerName  string
	When          string
	TotalAmount   float64
	PaymentMethod string
	Status        string
	OrderType     string
	TableNumber   string
	ItemsLabel    string
}

type DashboardStats struct {
	PendingOrders   int
	AvailableTables int
	TodaySales      float64
}

// Timestamp scans TIMESTAMP columns from either supported driver: lib/pq
// hands back time.Time, sqlite hands back the stored text.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v
		return nil
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (ts *Timestamp) parse(s string) error {
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999-07:00",
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
