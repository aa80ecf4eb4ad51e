package models

import (
	"time"
)

// OrderStatus represents the status of an order or delivery
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CustomerLabel is the status text shown in a customer's order history
func (s OrderStatus) CustomerLabel() string {
	switch s {
	case OrderStatusActive:
		return "On the way"
	case OrderStatusCompleted:
		return "Delivered"
	default:
		return "Cancelled"
	}
}

// WorkerLabel is the status text shown in a worker's delivery history
func (s OrderStatus) WorkerLabel() string {
	switch s {
	case OrderStatusActive:
		return "Active"
	case OrderStatusCompleted:
		return "Completed"
	default:
		return "Cancelled"
	}
}

// Order is a row of a customer's order history
type Order struct {
	ID         string      `db:"id" json:"id"`
	Username   string      `db:"username" json:"username"`
	Restaurant string      `db:"restaurant" json:"restaurant"`
	Title      string      `db:"title" json:"title"`
	Details    string      `db:"details" json:"details"`
	ItemCount  int         `db:"item_count" json:"item_count"`
	Total      Cents       `db:"total_cents" json:"total_cents"`
	Status     OrderStatus `db:"status" json:"status"`
	PlacedAt   time.Time   `db:"placed_at" json:"placed_at"`
	Icon       string      `db:"icon" json:"icon"`
}

// Delivery is a row of a worker's delivery history
type Delivery struct {
	ID         string      `db:"id" json:"id"`
	Username   string      `db:"username" json:"username"`
	Restaurant string      `db:"restaurant" json:"restaurant"`
	Title      string      `db:"title" json:"title"`
	Details    string      `db:"details" json:"details"`
	ItemCount  int         `db:"item_count" json:"item_count"`
	Earnings   Cents       `db:"earnings_cents" json:"earnings_cents"`
	Status     OrderStatus `db:"status" json:"status"`
	PlacedAt   time.Time   `db:"placed_at" json:"placed_at"`
	Icon       string      `db:"icon" json:"icon"`
}

// Job is a delivery offered to workers
type Job struct {
	ID         string `db:"id" json:"id"`
	Restaurant string `db:"restaurant" json:"restaurant"`
	Title      string `db:"title" json:"title"`
	Location   string `db:"location" json:"location"`
	ItemCount  int    `db:"item_count" json:"item_count"`
	Pay        Cents  `db:"pay_cents" json:"pay_cents"`
	Icon       string `db:"icon" json:"icon"`
}

// OrderStats summarises a customer's order history
type OrderStats struct {
	TotalOrders int   `json:"total_orders"`
	ThisMonth   int   `json:"this_month"`
	TotalSpent  Cents `json:"total_spent_cents"`
}

// DeliveryStats summarises a worker's delivery history
type DeliveryStats struct {
	Today         int   `json:"today"`
	ThisWeek      int   `json:"this_week"`
	TotalEarnings Cents `json:"total_earnings_cents"`
}
