package repository

import (
	"context"
	"fmt"

	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/jmoiron/sqlx"
)

// CatalogRepository reads the demo catalog from Postgres. It never writes.
type CatalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Provider = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListRestaurants retrieves all restaurants
func (r *CatalogRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	query := `
		SELECT slug, name, hours, info, category, icon, image_url
		FROM restaurants
		ORDER BY display_order ASC, name ASC
	`

	var restaurants []models.Restaurant
	err := r.db.SelectContext(ctx, &restaurants, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return restaurants, nil
}

// GetMenu retrieves the menu of a restaurant
func (r *CatalogRepository) GetMenu(ctx context.Context, slug string) ([]models.MenuItem, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM restaurants WHERE slug = $1)`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up restaurant: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("menu for %q: %w", slug, catalog.ErrNotFound)
	}

	query := `
		SELECT id, restaurant_slug, name, description, price_cents, category, icon
		FROM menu_items
		WHERE restaurant_slug = $1
		ORDER BY display_order ASC
	`

	var items []models.MenuItem
	err = r.db.SelectContext(ctx, &items, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return items, nil
}

// ListOrders retrieves a customer's orders, newest first. Rows without an
// owner are demo rows shown to every customer.
func (r *CatalogRepository) ListOrders(ctx context.Context, username string) ([]models.Order, error) {
	query := `
		SELECT id, COALESCE(username, $1) AS username, restaurant, title, details,
		       item_count, total_cents, status, placed_at, icon
		FROM orders
		WHERE username IS NULL OR username = $1
		ORDER BY placed_at DESC
	`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// ListDeliveries retrieves a worker's deliveries, newest first
func (r *CatalogRepository) ListDeliveries(ctx context.Context, username string) ([]models.Delivery, error) {
	query := `
		SELECT id, COALESCE(username, $1) AS username, restaurant, title, details,
		       item_count, earnings_cents, status, placed_at, icon
		FROM deliveries
		WHERE username IS NULL OR username = $1
		ORDER BY placed_at DESC
	`

	var deliveries []models.Delivery
	err := r.db.SelectContext(ctx, &deliveries, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	return deliveries, nil
}

// ListJobs retrieves the jobs open for workers
func (r *CatalogRepository) ListJobs(ctx context.Context) ([]models.Job, error) {
	query := `
		SELECT id, restaurant, title, location, item_count, pay_cents, icon
		FROM jobs
		ORDER BY id ASC
	`

	var jobs []models.Job
	err := r.db.SelectContext(ctx, &jobs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}
