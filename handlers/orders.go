// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/avikashyap/tableside/middleware"
	"github.com/avikashyap/tableside/models"
)

type OrderHandler struct {
	db *sql.DB
}

func NewOrderHandler(db *sql.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// round2 rounds to currency precision, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// isConstraintViolation recognizes unique/foreign-key errors from either
// supported driver.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "violates foreign key constraint")
}

// Dashboard handles GET /
func (h *OrderHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = "All"
	}
	typeFilter := r.URL.Query().Get("order_type")
	if typeFilter == "" {
		typeFilter = "All"
	}

	orders, err := h.loadOrders(statusFilter, typeFilter)
	if err != nil {
		slog.Error("failed to load orders", "error", err)
		http.Error(w, "An error occurred while loading data.", http.StatusInternalServerError)
		return
	}

	menu, err := h.loadMenu()
	if err != nil {
		slog.Error("failed to load menu", "error", err)
		http.Error(w, "An error occurred while loading data.", http.StatusInternalServerError)
		return
	}

	customers, err := h.loadCustomers()
	if err != nil {
		slog.Error("failed to load customers", "error", err)
		http.Error(w, "An error occurred while loading data.", http.StatusInternalServerError)
		return
	}

	tables, err := h.loadTables()
	if err != nil {
		slog.Error("failed to load tables", "error", err)
		http.Error(w, "An error occurred while loading data.", http.StatusInternalServerError)
		return
	}

	stats, err := h.loadStats()
	if err != nil {
		slog.Error("failed to load stats", "error", err)
		http.Error(w, "An error occurred while loading data.", http.StatusInternalServerError)
		return
	}

	flash, hasFlash := middleware.PopFlash(w, r)

	renderDashboard(w, DashboardData{
		Orders:       orders,
		Menu:         menu,
		Customers:    customers,
		Tables:       tables,
		Stats:        stats,
		StatusFilter: statusFilter,
		TypeFilter:   typeFilter,
		Flash:        flash,
		HasFlash:     hasFlash,
	})
}

// AddOrder handles POST /add
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Invalid form submission")
		return
	}

	paymentMethod := r.PostFormValue("payment_method")
	orderType := r.PostFormValue("order_type")
	tableNumber := strings.TrimSpace(r.PostFormValue("table_number"))
	itemIDs := r.PostForm["items"]

	if len(itemIDs) == 0 {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Please select at least one item")
		return
	}

	if orderType != models.TypeDineIn && orderType != models.TypeTakeaway && orderType != models.TypeDelivery {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Invalid order type")
		return
	}
	if paymentMethod != models.PayCash && paymentMethod != models.PayCard &&
		paymentMethod != models.PayUPI && paymentMethod != models.PayOther {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Invalid payment method")
		return
	}

	discount := 0.0
	if raw := r.PostFormValue("discount"); raw != "" {
		var err error
		discount, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Invalid input data")
			return
		}
	}
	if discount < 0 || discount > 100 {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Discount must be between 0 and 100")
		return
	}

	// Customer resolution, item snapshotting, the table pre-check, the order
	// insert and the table update all commit or roll back together.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
		return
	}
	defer tx.Rollback()

	customerID, userMsg, err := resolveCustomer(tx,
		r.PostFormValue("customer_id"),
		strings.TrimSpace(r.PostFormValue("name")),
		strings.TrimSpace(r.PostFormValue("phone")),
		strings.TrimSpace(r.PostFormValue("email")),
		strings.TrimSpace(r.PostFormValue("address")),
	)
	if err != nil {
		slog.Error("failed to resolve customer", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
		return
	}
	if userMsg != "" {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, userMsg)
		return
	}

	// Snapshot name and unit price per item. Ids that no longer resolve to
	// an available item are skipped, not fatal: the item may have been
	// removed between page load and submit.
	var snapshot models.ItemList
	for _, rawID := range itemIDs {
		itemID, convErr := strconv.ParseInt(rawID, 10, 64)
		if convErr != nil {
			slog.Warn("skipping malformed menu item id", "item_id", rawID)
			continue
		}

		var name string
		var price float64
		err := tx.QueryRow(`
			SELECT name, price FROM menu_items
			WHERE id = $1 AND is_available = TRUE
		`, itemID).Scan(&name, &price)
		if err == sql.ErrNoRows {
			slog.Warn("skipping unresolvable menu item", "item_id", itemID)
			continue
		}
		if err != nil {
			slog.Error("failed to look up menu item", "item_id", itemID, "error", err)
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
			return
		}

		snapshot = append(snapshot, models.ItemSnapshot{Name: name, Price: price})
	}

	subtotal := snapshot.Subtotal()
	if len(snapshot) == 0 || subtotal == 0 {
		middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Invalid items selected")
		return
	}

	total := round2(subtotal * (1 - discount/100))

	dineIn := orderType == models.TypeDineIn && tableNumber != ""
	if dineIn {
		var tableStatus string
		err := tx.QueryRow(`SELECT status FROM tables WHERE table_number = $1`, tableNumber).Scan(&tableStatus)
		if err == sql.ErrNoRows {
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Table not found")
			return
		}
		if err != nil {
			slog.Error("failed to check table status", "table_number", tableNumber, "error", err)
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
			return
		}
		if tableStatus != models.TableAvailable {
			middleware.RedirectWithFlash(w, r, middleware.FlashWarning, "Selected table is already occupied.")
			return
		}
	}

	itemsJSON, err := snapshot.Marshal()
	if err != nil {
		slog.Error("failed to serialize item snapshot", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
		return
	}

	var tableVal any
	if tableNumber != "" {
		tableVal = tableNumber
	}

	var orderID int64
	err = tx.QueryRow(`
		INSERT INTO orders (customer_id, items, total_amount, discount, payment_method, order_type, table_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, customerID, itemsJSON, total, discount, paymentMethod, orderType, tableVal).Scan(&orderID)
	if err != nil {
		if isConstraintViolation(err) {
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Order references a customer that no longer exists")
			return
		}
		slog.Error("failed to insert order", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
		return
	}

	if dineIn {
		_, err = tx.Exec(`UPDATE tables SET status = 'Occupied' WHERE table_number = $1`, tableNumber)
		if err != nil {
			slog.Error("failed to occupy table", "table_number", tableNumber, "error", err)
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit order", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to place order")
		return
	}

	slog.Info("order placed",
		"order_id", orderID,
		"customer_id", customerID,
		"order_type", orderType,
		"total_amount", total,
	)
	middleware.RedirectWithFlash(w, r, middleware.FlashSuccess, "Order placed successfully")
}

// UpdateStatus handles GET /update_status/{order_id}/{status}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	status := r.PathValue("status")
	if !models.ValidStatus(status) {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Invalid status")
		return
	}

	orderID, err := strconv.ParseInt(r.PathValue("order_id"), 10, 64)
	if err != nil {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Order not found")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to update status")
		return
	}
	defer tx.Rollback()

	var orderType string
	var tableNumber sql.NullString
	err = tx.QueryRow(`SELECT order_type, table_number FROM orders WHERE id = $1`, orderID).Scan(&orderType, &tableNumber)
	if err == sql.ErrNoRows {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to look up order", "order_id", orderID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to update status")
		return
	}

	if _, err := tx.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID); err != nil {
		slog.Error("failed to update order status", "order_id", orderID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to update status")
		return
	}

	// Occupancy is derived from the remaining active orders on the table,
	// never from which single order happened to transition.
	if orderType == models.TypeDineIn && tableNumber.Valid {
		if err := rederiveTableStatus(tx, tableNumber.String); err != nil {
			slog.Error("failed to rederive table status", "table_number", tableNumber.String, "error", err)
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to update status")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit status update", "order_id", orderID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to update status")
		return
	}

	slog.Info("order status updated", "order_id", orderID, "status", status)
	middleware.RedirectWithFlash(w, r, middleware.FlashSuccess, fmt.Sprintf("Order status updated to %s", status))
}

// DeleteOrder handles GET /delete/{order_id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("order_id"), 10, 64)
	if err != nil {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Order not found")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete order")
		return
	}
	defer tx.Rollback()

	var orderType string
	var tableNumber sql.NullString
	err = tx.QueryRow(`SELECT order_type, table_number FROM orders WHERE id = $1`, orderID).Scan(&orderType, &tableNumber)
	if err == sql.ErrNoRows {
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to look up order", "order_id", orderID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete order")
		return
	}

	if _, err := tx.Exec(`DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		slog.Error("failed to delete order", "order_id", orderID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete order")
		return
	}

	if orderType == models.TypeDineIn && tableNumber.Valid {
		if err := rederiveTableStatus(tx, tableNumber.String); err != nil {
			slog.Error("failed to rederive table status", "table_number", tableNumber.String, "error", err)
			middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete order")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit order deletion", "order_id", orderID, "error", err)
		middleware.RedirectWithFlash(w, r, middleware.FlashError, "Failed to delete order")
		return
	}

	slog.Info("order deleted", "order_id", orderID)
	middleware.RedirectWithFlash(w, r, middleware.FlashSuccess, "Order deleted successfully")
}

// rederiveTableStatus recomputes a table's status from the count of active
// dine-in orders referencing it: Occupied iff at least one is Pending or
// Preparing, Available otherwise.
func rederiveTableStatus(tx *sql.Tx, tableNumber string) error {
	var active int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM orders
		WHERE table_number = $1 AND order_type = 'Dine-in'
		AND status IN ('Pending', 'Preparing')
	`, tableNumber).Scan(&active)
	if err != nil {
		return fmt.Errorf("failed to count active orders: %w", err)
	}

	status := models.TableAvailable
	if active > 0 {
		status = models.TableOccupied
	}

	if _, err := tx.Exec(`UPDATE tables SET status = $1 WHERE table_number = $2`, status, tableNumber); err != nil {
		return fmt.Errorf("failed to update table status: %w", err)
	}
	return nil
}

// Read path

func (h *OrderHandler) loadOrders(statusFilter, typeFilter string) ([]models.OrderRow, error) {
	query := `
		SELECT o.id, c.name, o.order_date, o.total_amount, o.payment_method,
		       o.status, o.order_type, o.table_number, o.items
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE 1=1
	`
	var params []any
	if statusFilter != "All" {
		params = append(params, statusFilter)
		query += fmt.Sprintf(" AND o.status = $%d", len(params))
	}
	if typeFilter != "All" {
		params = append(params, typeFilter)
		query += fmt.Sprintf(" AND o.order_type = $%d", len(params))
	}
	query += " ORDER BY o.order_date DESC"

	rows, err := h.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderRow
	for rows.Next() {
		var row models.OrderRow
		var when models.Timestamp
		var tableNumber sql.NullString
		var itemsRaw []byte

		err := rows.Scan(&row.ID, &row.CustomerName, &when, &row.TotalAmount,
			&row.PaymentMethod, &row.Status, &row.OrderType, &tableNumber, &itemsRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		row.When = formatWhen(when.Time)
		row.TableNumber = "-"
		if tableNumber.Valid {
			row.TableNumber = tableNumber.String
		}

		items, err := models.ParseItemList(itemsRaw)
		if err != nil {
			slog.Warn("order has malformed item snapshot", "order_id", row.ID, "error", err)
			row.ItemsLabel = models.InvalidItemsLabel
		} else {
			row.ItemsLabel = items.Display()
		}

		orders = append(orders, row)
	}
	return orders, rows.Err()
}

func (h *OrderHandler) loadMenu() ([]models.MenuItem, error) {
	rows, err := h.db.Query(`
		SELECT id, name, category, price FROM menu_items
		WHERE is_available = TRUE
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var menu []models.MenuItem
	for rows.Next() {
		item := models.MenuItem{IsAvailable: true}
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		menu = append(menu, item)
	}
	return menu, rows.Err()
}

func (h *OrderHandler) loadCustomers() ([]models.Customer, error) {
	rows, err := h.db.Query(`
		SELECT id, name, phone, email, address, joined_on FROM customers
		ORDER BY joined_on DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		var joined models.Timestamp
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &joined); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		c.JoinedOn = joined.Time
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (h *OrderHandler) loadTables() ([]models.Table, error) {
	rows, err := h.db.Query(`
		SELECT id, table_number, capacity, status FROM tables
		ORDER BY table_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Capacity, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (h *OrderHandler) loadStats() (models.DashboardStats, error) {
	var stats models.DashboardStats

	err := h.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status = 'Pending'`).Scan(&stats.PendingOrders)
	if err != nil {
		return stats, fmt.Errorf("failed to count pending orders: %w", err)
	}

	err = h.db.QueryRow(`SELECT COUNT(*) FROM tables WHERE status = 'Available'`).Scan(&stats.AvailableTables)
	if err != nil {
		return stats, fmt.Errorf("failed to count available tables: %w", err)
	}

	err = h.db.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0) FROM orders
		WHERE DATE(order_date) = CURRENT_DATE
	`).Scan(&stats.TodaySales)
	if err != nil {
		return stats, fmt.Errorf("failed to sum today's sales: %w", err)
	}

	return stats, nil
}
