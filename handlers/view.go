// Copyright (c) 2026 Avi Kashyap.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/avikashyap/tableside/middleware"
	"github.com/avikashyap/tableside/models"
)

// DashboardData is everything the dashboard template renders.
type DashboardData struct {
	Orders       []models.OrderRow
	Menu         []models.MenuItem
	Customers    []models.Customer
	Tables       []models.Table
	Stats        models.DashboardStats
	StatusFilter string
	TypeFilter   string
	Flash        middleware.Flash
	HasFlash     bool
}

// Statuses lists the order status labels for filter and action links.
func (DashboardData) Statuses() []string {
	return []string{models.StatusPending, models.StatusPreparing, models.StatusCompleted}
}

// OrderTypes lists the order type labels for the filter and order form.
func (DashboardData) OrderTypes() []string {
	return []string{models.TypeDineIn, models.TypeTakeaway, models.TypeDelivery}
}

// PaymentMethods lists the payment method labels for the order form.
func (DashboardData) PaymentMethods() []string {
	return []string{models.PayCash, models.PayCard, models.PayUPI, models.PayOther}
}

// formatWhen renders an order date like "31 oct 8:27 pm".
func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return strings.ToLower(t.Format("2 Jan 3:04 pm"))
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"money": func(v float64) string {
		return humanize.FormatFloat("#,###.##", v)
	},
}).Parse(dashboardHTML))

func renderDashboard(w http.ResponseWriter, data DashboardData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tableside</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.flash-success { color: #155724; background: #d4edda; padding: 0.6em; }
.flash-warning { color: #856404; background: #fff3cd; padding: 0.6em; }
.flash-error { color: #721c24; background: #f8d7da; padding: 0.6em; }
.stats span { margin-right: 2em; font-weight: bold; }
</style>
</head>
<body>
<h1>Tableside</h1>

{{if .HasFlash}}<div class="flash-{{.Flash.Category}}">{{.Flash.Message}}</div>{{end}}

<div class="stats">
  <span>Pending orders: {{.Stats.PendingOrders}}</span>
  <span>Available tables: {{.Stats.AvailableTables}}</span>
  <span>Today's sales: &#8377;{{money .Stats.TodaySales}}</span>
</div>

<h2>Orders</h2>
<form method="get" action="/">
  <select name="status">
    <option value="All">All statuses</option>
    {{$sf := .StatusFilter}}
    {{range .Statuses}}<option value="{{.}}"{{if eq . $sf}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="order_type">
    <option value="All">All types</option>
    {{$tf := .TypeFilter}}
    {{range .OrderTypes}}<option value="{{.}}"{{if eq . $tf}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <button type="submit">Filter</button>
</form>
<table>
  <tr><th>#</th><th>Customer</th><th>Date</th><th>Items</th><th>Total</th><th>Payment</th><th>Status</th><th>Type</th><th>Table</th><th></th></tr>
  {{range .Orders}}
  <tr>
    <td>{{.ID}}</td>
    <td>{{.CustomerName}}</td>
    <td>{{.When}}</td>
    <td>{{.ItemsLabel}}</td>
    <td>&#8377;{{money .TotalAmount}}</td>
    <td>{{.PaymentMethod}}</td>
    <td>{{.Status}}</td>
    <td>{{.OrderType}}</td>
    <td>{{.TableNumber}}</td>
    <td>
      <a href="/update_status/{{.ID}}/Pending">Pending</a>
      <a href="/update_status/{{.ID}}/Preparing">Preparing</a>
      <a href="/update_status/{{.ID}}/Completed">Completed</a>
      <a href="/delete/{{.ID}}">Delete</a>
    </td>
  </tr>
  {{else}}
  <tr><td colspan="10">No orders yet</td></tr>
  {{end}}
</table>

<h2>New order</h2>
<form method="post" action="/add">
  <p>
    <select name="customer_id">
      <option value="new">New customer</option>
      {{range .Customers}}<option value="{{.ID}}">{{.Name}} ({{.Phone}})</option>{{end}}
    </select>
    <input name="name" placeholder="Name">
    <input name="phone" placeholder="Phone">
    <input name="email" placeholder="Email">
    <input name="address" placeholder="Address">
  </p>
  <p>
    {{range .Menu}}
    <label><input type="checkbox" name="items" value="{{.ID}}"> {{.Name}} ({{.Category}}, &#8377;{{money .Price}})</label><br>
    {{end}}
  </p>
  <p>
    <select name="order_type">
      {{range .OrderTypes}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <select name="payment_method">
      {{range .PaymentMethods}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <select name="table_number">
      <option value="">No table</option>
      {{range .Tables}}{{if eq .Status "Available"}}<option value="{{.TableNumber}}">{{.TableNumber}} (seats {{.Capacity}})</option>{{end}}{{end}}
    </select>
    <input name="discount" placeholder="Discount %" size="4">
    <button type="submit">Place order</button>
  </p>
</form>

<h2>Customers</h2>
<table>
  <tr><th>#</th><th>Name</th><th>Phone</th><th>Email</th><th>Address</th><th></th></tr>
  {{range .Customers}}
  <tr>
    <td>{{.ID}}</td>
    <td>{{.Name}}</td>
    <td>{{.Phone}}</td>
    <td>{{with .Email}}{{.}}{{else}}-{{end}}</td>
    <td>{{with .Address}}{{.}}{{else}}-{{end}}</td>
    <td><a href="/delete_customer/{{.ID}}">Delete</a></td>
  </tr>
  {{end}}
</table>

<h2>Tables</h2>
<table>
  <tr><th>Table</th><th>Capacity</th><th>Status</th></tr>
  {{range .Tables}}
  <tr><td>{{.TableNumber}}</td><td>{{.Capacity}}</td><td>{{.Status}}</td></tr>
  {{end}}
</table>

</body>
</html>
`
