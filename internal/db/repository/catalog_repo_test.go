package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/db/repository"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*repository.CatalogRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return repository.NewCatalogRepository(sqlx.NewDb(db, "postgres")), mock
}

func query(sql string) string {
	return regexp.QuoteMeta(sql)
}

func TestListRestaurants(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(query("FROM restaurants ORDER BY display_order ASC, name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "name", "hours", "info", "category", "icon", "image_url"}).
			AddRow("chick-fil-a", "Chick-fil-A", "Open · 8 AM - 8 PM", "Chicken", "Quick Bites", "🍗", "").
			AddRow("starbucks", "Starbucks", "Open · 7 AM - 9 PM", "Coffee", "Café", "☕", ""))

	restaurants, err := repo.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "chick-fil-a", restaurants[0].Slug)
	assert.Equal(t, models.CategoryCafe, restaurants[1].Category)
}

func TestListRestaurantsError(t *testing.T) {
	repo, mock := newRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(query("FROM restaurants")).WillReturnError(boom)

	_, err := repo.ListRestaurants(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to list restaurants")
}

func TestGetMenu(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(query("SELECT EXISTS(SELECT 1 FROM restaurants WHERE slug = $1)")).
		WithArgs("starbucks").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(query("FROM menu_items WHERE restaurant_slug = $1 ORDER BY display_order ASC")).
		WithArgs("starbucks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_slug", "name", "description", "price_cents", "category", "icon"}).
			AddRow("1", "starbucks", "Caramel Macchiato", "Espresso", int64(525), "Hot Drinks", "☕"))

	items, err := repo.GetMenu(context.Background(), "starbucks")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Cents(525), items[0].Price)
	assert.Equal(t, "Hot Drinks", items[0].Category)
}

func TestGetMenuUnknownRestaurant(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(query("SELECT EXISTS")).
		WithArgs("nowhere").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.GetMenu(context.Background(), "nowhere")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestGetMenuLookupError(t *testing.T) {
	repo, mock := newRepo(t)
	boom := errors.New("timeout")

	mock.ExpectQuery(query("SELECT EXISTS")).WithArgs("starbucks").WillReturnError(boom)

	_, err := repo.GetMenu(context.Background(), "starbucks")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, catalog.ErrNotFound))
}

func TestListOrders(t *testing.T) {
	repo, mock := newRepo(t)
	placed := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(query("COALESCE(username, $1) AS username")+".*"+
		query("FROM orders WHERE username IS NULL OR username = $1 ORDER BY placed_at DESC")).
		WithArgs("login").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "restaurant", "title", "details", "item_count", "total_cents", "status", "placed_at", "icon"}).
			AddRow("ord-1005", "login", "Chick-fil-A", "Lunch", "2 items", 2, int64(1250), "active", placed, "🍗"))

	orders, err := repo.ListOrders(context.Background(), "login")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "login", orders[0].Username)
	assert.Equal(t, models.OrderStatusActive, orders[0].Status)
	assert.Equal(t, models.Cents(1250), orders[0].Total)
	assert.True(t, placed.Equal(orders[0].PlacedAt))
}

func TestListDeliveries(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(query("COALESCE(username, $1) AS username")+".*"+
		query("FROM deliveries WHERE username IS NULL OR username = $1 ORDER BY placed_at DESC")).
		WithArgs("driver").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "restaurant", "title", "details", "item_count", "earnings_cents", "status", "placed_at", "icon"}).
			AddRow("del-1", "driver", "Starbucks", "Coffee run", "1 item", 1, int64(650), "completed", time.Now(), "☕"))

	deliveries, err := repo.ListDeliveries(context.Background(), "driver")
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, models.Cents(650), deliveries[0].Earnings)
}

func TestListDeliveriesError(t *testing.T) {
	repo, mock := newRepo(t)
	boom := errors.New("closed")

	mock.ExpectQuery(query("FROM deliveries")).WithArgs("driver").WillReturnError(boom)

	_, err := repo.ListDeliveries(context.Background(), "driver")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to list deliveries")
}

func TestListJobs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(query("FROM jobs ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant", "title", "location", "item_count", "pay_cents", "icon"}).
			AddRow("job-1", "The Commons", "Dinner", "North Hall", 3, int64(800), "🍽️"))

	jobs, err := repo.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.Cents(800), jobs[0].Pay)
}
