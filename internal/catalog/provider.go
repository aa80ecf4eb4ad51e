// Package catalog provides the read-only demo data rendered by the pages.
package catalog

import (
	"context"
	"errors"

	"github.com/dormdash/campus-eats/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Provider is the read-only source of restaurants, menus, orders and jobs
type Provider interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetMenu(ctx context.Context, slug string) ([]models.MenuItem, error)
	ListOrders(ctx context.Context, username string) ([]models.Order, error)
	ListDeliveries(ctx context.Context, username string) ([]models.Delivery, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
}
