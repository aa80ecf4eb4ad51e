package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/models"
)

// CustomerDashboard is the data behind the customer home page
type CustomerDashboard struct {
	ActiveOrder *models.Order               `json:"active_order,omitempty"`
	Restaurants []models.Restaurant         `json:"restaurants"`
	Categories  []models.RestaurantCategory `json:"categories"`
	Query       string                      `json:"query,omitempty"`
	Category    string                      `json:"category,omitempty"`
}

// CustomerOrders is the data behind the customer order history page
type CustomerOrders struct {
	Stats  models.OrderStats `json:"stats"`
	Orders []models.Order    `json:"orders"`
}

// WorkerDashboard is the data behind the worker jobs page
type WorkerDashboard struct {
	ActiveDelivery *models.Delivery `json:"active_delivery,omitempty"`
	Jobs           []models.Job     `json:"jobs"`
}

// WorkerOrders is the data behind the worker delivery history page
type WorkerOrders struct {
	Stats      models.DeliveryStats `json:"stats"`
	Deliveries []models.Delivery    `json:"deliveries"`
}

// RestaurantMenu is a restaurant with its menu grouped by category
type RestaurantMenu struct {
	Restaurant models.Restaurant    `json:"restaurant"`
	Sections   []models.MenuSection `json:"sections"`
}

// DashboardService builds page data from the catalog
type DashboardService struct {
	catalog catalog.Provider
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service. A nil clock means time.Now.
func NewDashboardService(provider catalog.Provider, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		catalog: provider,
		now:     now,
	}
}

// Customer returns the customer home page with restaurants filtered by a
// search query and a category
func (s *DashboardService) Customer(ctx context.Context, username, query, category string) (*CustomerDashboard, error) {
	orders, err := s.catalog.ListOrders(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	restaurants, err := s.catalog.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	dashboard := &CustomerDashboard{
		Restaurants: FilterRestaurants(restaurants, query, category),
		Categories:  models.RestaurantCategories(),
		Query:       query,
		Category:    category,
	}
	for i := range orders {
		if orders[i].Status == models.OrderStatusActive {
			dashboard.ActiveOrder = &orders[i]
			break
		}
	}

	return dashboard, nil
}

// CustomerOrders returns the order history with its summary
func (s *DashboardService) CustomerOrders(ctx context.Context, username string) (*CustomerOrders, error) {
	orders, err := s.catalog.ListOrders(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &CustomerOrders{
		Stats:  SummarizeOrders(orders, s.now()),
		Orders: orders,
	}, nil
}

// Menu returns a restaurant's menu grouped by category
func (s *DashboardService) Menu(ctx context.Context, slug string) (*RestaurantMenu, error) {
	restaurants, err := s.catalog.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	var restaurant *models.Restaurant
	for i := range restaurants {
		if restaurants[i].Slug == slug {
			restaurant = &restaurants[i]
			break
		}
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant %q: %w", slug, catalog.ErrNotFound)
	}

	items, err := s.catalog.GetMenu(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return &RestaurantMenu{
		Restaurant: *restaurant,
		Sections:   GroupMenu(items),
	}, nil
}

// Worker returns the worker jobs page
func (s *DashboardService) Worker(ctx context.Context, username string) (*WorkerDashboard, error) {
	deliveries, err := s.catalog.ListDeliveries(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	jobs, err := s.catalog.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	dashboard := &WorkerDashboard{Jobs: jobs}
	for i := range deliveries {
		if deliveries[i].Status == models.OrderStatusActive {
			dashboard.ActiveDelivery = &deliveries[i]
			break
		}
	}

	return dashboard, nil
}

// WorkerOrders returns the delivery history with its summary
func (s *DashboardService) WorkerOrders(ctx context.Context, username string) (*WorkerOrders, error) {
	deliveries, err := s.catalog.ListDeliveries(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	return &WorkerOrders{
		Stats:      SummarizeDeliveries(deliveries, s.now()),
		Deliveries: deliveries,
	}, nil
}

// Jobs lists the available jobs
func (s *DashboardService) Jobs(ctx context.Context) ([]models.Job, error) {
	return s.catalog.ListJobs(ctx)
}

// Restaurants lists every restaurant
func (s *DashboardService) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.catalog.ListRestaurants(ctx)
}

// Orders lists a customer's orders
func (s *DashboardService) Orders(ctx context.Context, username string) ([]models.Order, error) {
	return s.catalog.ListOrders(ctx, username)
}

// Deliveries lists a worker's deliveries
func (s *DashboardService) Deliveries(ctx context.Context, username string) ([]models.Delivery, error) {
	return s.catalog.ListDeliveries(ctx, username)
}

// FilterRestaurants keeps restaurants whose name or info contains query
// (case-insensitive) and whose category matches. An empty category or "All"
// disables the category filter.
func FilterRestaurants(restaurants []models.Restaurant, query, category string) []models.Restaurant {
	query = strings.ToLower(strings.TrimSpace(query))
	if category == "All" {
		category = ""
	}

	out := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if category != "" && string(r.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Name), query) &&
			!strings.Contains(strings.ToLower(r.Info), query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GroupMenu groups items by category, keeping categories in first-seen order
func GroupMenu(items []models.MenuItem) []models.MenuSection {
	var sections []models.MenuSection
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(sections)
			index[item.Category] = i
			sections = append(sections, models.MenuSection{Category: item.Category})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections
}

// SummarizeOrders counts all orders, orders placed in now's month, and the
// amount spent on orders that were not cancelled
func SummarizeOrders(orders []models.Order, now time.Time) models.OrderStats {
	var stats models.OrderStats
	year, month, _ := now.Date()

	for _, o := range orders {
		stats.TotalOrders++
		if y, m, _ := o.PlacedAt.In(now.Location()).Date(); y == year && m == month {
			stats.ThisMonth++
		}
		if o.Status != models.OrderStatusCancelled {
			stats.TotalSpent += o.Total
		}
	}
	return stats
}

// SummarizeDeliveries counts completed deliveries made today and in the last
// seven days, and sums their earnings
func SummarizeDeliveries(deliveries []models.Delivery, now time.Time) models.DeliveryStats {
	var stats models.DeliveryStats
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)

	for _, d := range deliveries {
		if d.Status != models.OrderStatusCompleted {
			continue
		}
		if !d.PlacedAt.Before(startOfDay) && !d.PlacedAt.After(now) {
			stats.Today++
		}
		if d.PlacedAt.After(weekAgo) && !d.PlacedAt.After(now) {
			stats.ThisWeek++
		}
		stats.TotalEarnings += d.Earnings
	}
	return stats
}
