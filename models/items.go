// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemSnapshot is a copy of a menu item's name and unit price taken at order
// time. Later edits to the menu never change it.
type ItemSnapshot struct {
	Name  string  `json:"item"`
	Price float64 `json:"price"`
}

// ItemList is the ordered item snapshot sequence persisted on each order.
type ItemList []ItemSnapshot

// InvalidItemsLabel is rendered in place of an item list that failed to
// parse, so one bad row never breaks the whole listing.
const InvalidItemsLabel = "Invalid items"

// Marshal serializes the list to the stored JSON form.
func (l ItemList) Marshal() (string, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("failed to marshal item list: %w", err)
	}
	return string(raw), nil
}

// ParseItemList decodes a stored item blob. Callers decide how to surface a
// parse failure; the listing renders InvalidItemsLabel.
func ParseItemList(raw []byte) (ItemList, error) {
	if len(raw) == 0 {
		return ItemList{}, nil
	}
	var l ItemList
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("failed to parse item list: %w", err)
	}
	return l, nil
}

// Subtotal sums the snapshotted unit prices.
func (l ItemList) Subtotal() float64 {
	var total float64
	for _, it := range l {
		total += it.Price
	}
	return total
}

// Display renders the list for the dashboard, e.g.
// "Naan (₹40.00), Butter Chicken (₹320.00)".
func (l ItemList) Display() string {
	parts := make([]string, len(l))
	for i, it := range l {
		parts[i] = fmt.Sprintf("%s (₹%.2f)", it.Name, it.Price)
	}
	return strings.Join(parts, ", ")
}
