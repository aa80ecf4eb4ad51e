package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dormdash/campus-eats/internal/models"
)

// Fixture serves the built-in demo data. Order and delivery timestamps are
// relative to the clock so the history always reads "today", "yesterday", ...
type Fixture struct {
	now         func() time.Time
	restaurants []models.Restaurant
	menus       map[string][]models.MenuItem
	jobs        []models.Job
}

// NewFixture creates the demo catalog. A nil clock means time.Now.
func NewFixture(now func() time.Time) *Fixture {
	if now == nil {
		now = time.Now
	}
	return &Fixture{
		now:         now,
		restaurants: fixtureRestaurants(),
		menus:       fixtureMenus(),
		jobs:        fixtureJobs(),
	}
}

func (f *Fixture) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	out := make([]models.Restaurant, len(f.restaurants))
	copy(out, f.restaurants)
	return out, nil
}

func (f *Fixture) GetMenu(ctx context.Context, slug string) ([]models.MenuItem, error) {
	items, ok := f.menus[slug]
	if !ok {
		return nil, fmt.Errorf("menu for %q: %w", slug, ErrNotFound)
	}
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *Fixture) ListOrders(ctx context.Context, username string) ([]models.Order, error) {
	now := f.now()
	orders := []models.Order{
		{ID: "ord-1005", Restaurant: "The Commons", Title: "Cheeseburger & Fries", Details: "Delivered to Sondheim Hall, Room 305", ItemCount: 2, Total: 1450, Status: models.OrderStatusActive, PlacedAt: now.Add(-25 * time.Minute), Icon: "🍔"},
		{ID: "ord-1004", Restaurant: "Chick-fil-A", Title: "Spicy Chicken Sandwich Meal", Details: "Delivered to Sondheim Hall, Room 305", ItemCount: 2, Total: 1275, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-23 * time.Hour), Icon: "🍗"},
		{ID: "ord-1003", Restaurant: "Starbucks", Title: "Coffee & Pastries", Details: "Delivered to Library", ItemCount: 3, Total: 1825, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-28 * time.Hour), Icon: "☕"},
		{ID: "ord-1002", Restaurant: "The Commons", Title: "Chipotle Bowl", Details: "Delivered to Sondheim Hall, Room 305", ItemCount: 1, Total: 1100, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-4 * 24 * time.Hour), Icon: "🥗"},
		{ID: "ord-1001", Restaurant: "Einstein Bros Bagels", Title: "Bagel Sandwich", Details: "Cancelled by restaurant", ItemCount: 1, Total: 0, Status: models.OrderStatusCancelled, PlacedAt: now.Add(-40 * 24 * time.Hour), Icon: "🥯"},
	}
	for i := range orders {
		orders[i].Username = username
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].PlacedAt.After(orders[j].PlacedAt) })
	return orders, nil
}

func (f *Fixture) ListDeliveries(ctx context.Context, username string) ([]models.Delivery, error) {
	now := f.now()
	deliveries := []models.Delivery{
		{ID: "dlv-2006", Restaurant: "The Commons", Title: "Cheeseburger & Fries", Details: "Drop-off at Sondheim Hall", ItemCount: 2, Earnings: 950, Status: models.OrderStatusActive, PlacedAt: now.Add(-10 * time.Minute), Icon: "🍔"},
		{ID: "dlv-2005", Restaurant: "The Commons", Title: "Cheeseburger & Fries", Details: "Delivered to Sondheim Hall", ItemCount: 2, Earnings: 950, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-1 * time.Hour), Icon: "🍔"},
		{ID: "dlv-2004", Restaurant: "Chick-fil-A", Title: "Spicy chicken sandwich meal", Details: "Delivered to Chesapeake Hall", ItemCount: 2, Earnings: 475, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-2 * time.Hour), Icon: "🍗"},
		{ID: "dlv-2003", Restaurant: "Starbucks", Title: "Coffee & Pastries", Details: "Delivered to ITE", ItemCount: 3, Earnings: 625, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-3 * 24 * time.Hour), Icon: "☕"},
		{ID: "dlv-2002", Restaurant: "The Commons", Title: "Chipotle Bowl", Details: "Delivered to Library", ItemCount: 1, Earnings: 400, Status: models.OrderStatusCompleted, PlacedAt: now.Add(-10 * 24 * time.Hour), Icon: "🥗"},
		{ID: "dlv-2001", Restaurant: "Einstein Bros Bagels", Title: "Bagel Sandwich", Details: "Cancelled", ItemCount: 1, Earnings: 0, Status: models.OrderStatusCancelled, PlacedAt: now.Add(-11 * 24 * time.Hour), Icon: "🥯"},
	}
	for i := range deliveries {
		deliveries[i].Username = username
	}
	sort.SliceStable(deliveries, func(i, j int) bool { return deliveries[i].PlacedAt.After(deliveries[j].PlacedAt) })
	return deliveries, nil
}

func (f *Fixture) ListJobs(ctx context.Context) ([]models.Job, error) {
	out := make([]models.Job, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func fixtureRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{Slug: "chick-fil-a", Name: "Chick-fil-A", Hours: "Open · 8 AM - 8 PM", Info: "Chicken • Fast Food • 15-20 min", Category: models.CategoryQuickBites, Icon: "🍗"},
		{Slug: "starbucks", Name: "Starbucks", Hours: "Open · 7 AM - 9 PM", Info: "Coffee • Cafe • 10-15 min", Category: models.CategoryCafe, Icon: "☕"},
		{Slug: "dining-hall", Name: "Dining Hall", Hours: "Open · 7 AM - 10 PM", Info: "All-you-care-to-eat • Dining Hall • 20-25 min", Category: models.CategoryDiningHall, Icon: "🍽️"},
		{Slug: "einstein-bros-bagels", Name: "Einstein Bros Bagels", Hours: "Open · 7 AM - 3 PM", Info: "Bagels • Breakfast • 10-15 min", Category: models.CategoryCafe, Icon: "🥯"},
		{Slug: "the-commons", Name: "The Commons", Hours: "Open · 11 AM - 11 PM", Info: "American • Dining Hall • 20-25 min", Category: models.CategoryDiningHall, Icon: "🍔"},
		{Slug: "dunkin-donuts", Name: "Dunkin Donuts", Hours: "Open · 6 AM - 8 PM", Info: "Donuts • Coffee • 5-10 min", Category: models.CategoryQuickBites, Icon: "🍩"},
	}
}

func fixtureMenus() map[string][]models.MenuItem {
	menus := map[string][]models.MenuItem{
		"chick-fil-a": {
			{ID: "1", Name: "Chick-fil-A Sandwich", Description: "Classic chicken sandwich", Price: 599, Category: "Entrees", Icon: "🍗"},
			{ID: "2", Name: "Spicy Deluxe Sandwich", Description: "Spicy chicken with lettuce & tomato", Price: 649, Category: "Entrees", Icon: "🌶️"},
			{ID: "3", Name: "Nuggets (8 count)", Description: "Hand-breaded chicken nuggets", Price: 529, Category: "Entrees", Icon: "🍖"},
			{ID: "4", Name: "Waffle Fries", Description: "Crispy waffle-cut fries", Price: 299, Category: "Sides", Icon: "🍟"},
			{ID: "5", Name: "Lemonade", Description: "Freshly squeezed lemonade", Price: 249, Category: "Drinks", Icon: "🍋"},
		},
		"starbucks": {
			{ID: "1", Name: "Caramel Macchiato", Description: "Espresso with vanilla and caramel", Price: 525, Category: "Hot Drinks", Icon: "☕"},
			{ID: "2", Name: "Iced Latte", Description: "Cold espresso with milk", Price: 495, Category: "Cold Drinks", Icon: "🧊"},
			{ID: "3", Name: "Pumpkin Spice Latte", Description: "Seasonal favorite with pumpkin", Price: 575, Category: "Hot Drinks", Icon: "🎃"},
			{ID: "4", Name: "Blueberry Muffin", Description: "Fresh baked muffin", Price: 325, Category: "Food", Icon: "🫐"},
			{ID: "5", Name: "Egg Bites", Description: "Sous vide egg bites", Price: 495, Category: "Food", Icon: "🥚"},
		},
		"dining-hall": {
			{ID: "1", Name: "Grilled Chicken Plate", Description: "With rice and vegetables", Price: 899, Category: "Entrees", Icon: "🍗"},
			{ID: "2", Name: "Pasta Alfredo", Description: "Creamy pasta with garlic bread", Price: 799, Category: "Entrees", Icon: "🍝"},
			{ID: "3", Name: "Caesar Salad", Description: "Fresh romaine with caesar dressing", Price: 649, Category: "Salads", Icon: "🥗"},
			{ID: "4", Name: "Pizza Slice", Description: "Fresh hot pizza slice", Price: 350, Category: "Quick Bites", Icon: "🍕"},
			{ID: "5", Name: "Soft Drink", Description: "Fountain beverage", Price: 199, Category: "Drinks", Icon: "🥤"},
		},
		"einstein-bros-bagels": {
			{ID: "1", Name: "Everything Bagel", Description: "With cream cheese", Price: 399, Category: "Bagels", Icon: "🥯"},
			{ID: "2", Name: "Bacon Egg & Cheese", Description: "On a toasted bagel", Price: 649, Category: "Sandwiches", Icon: "🥓"},
			{ID: "3", Name: "Cinnamon Sugar Bagel", Description: "Sweet cinnamon bagel", Price: 349, Category: "Bagels", Icon: "🥯"},
			{ID: "4", Name: "Coffee", Description: "Fresh brewed coffee", Price: 249, Category: "Drinks", Icon: "☕"},
			{ID: "5", Name: "Hash Browns", Description: "Crispy hash browns", Price: 299, Category: "Sides", Icon: "🥔"},
		},
		"the-commons": {
			{ID: "1", Name: "Cheeseburger", Description: "Juicy beef patty with cheese, lettuce, tomato", Price: 950, Category: "Burgers", Icon: "🍔"},
			{ID: "2", Name: "Classic Fries", Description: "Crispy golden fries", Price: 350, Category: "Sides", Icon: "🍟"},
			{ID: "3", Name: "Chicken Tenders", Description: "Breaded chicken tenders with sauce", Price: 850, Category: "Entrees", Icon: "🍗"},
			{ID: "4", Name: "Veggie Wrap", Description: "Fresh vegetables in a wrap", Price: 799, Category: "Wraps", Icon: "🌯"},
			{ID: "5", Name: "Milkshake", Description: "Vanilla, chocolate, or strawberry", Price: 499, Category: "Drinks", Icon: "🥛"},
			{ID: "6", Name: "Buffalo Wings", Description: "6 pieces with ranch", Price: 999, Category: "Appetizers", Icon: "🍗"},
		},
		"dunkin-donuts": {
			{ID: "1", Name: "Glazed Donut", Description: "Classic glazed donut", Price: 149, Category: "Donuts", Icon: "🍩"},
			{ID: "2", Name: "Boston Kreme", Description: "Chocolate topped with cream filling", Price: 199, Category: "Donuts", Icon: "🍩"},
			{ID: "3", Name: "Iced Coffee", Description: "Cold brewed iced coffee", Price: 329, Category: "Drinks", Icon: "🧊"},
			{ID: "4", Name: "Breakfast Sandwich", Description: "Egg, cheese & bacon on english muffin", Price: 499, Category: "Food", Icon: "🥪"},
			{ID: "5", Name: "Munchkins (10 pack)", Description: "Donut holes variety pack", Price: 399, Category: "Donuts", Icon: "🍩"},
		},
	}
	for slug, items := range menus {
		for i := range items {
			items[i].RestaurantSlug = slug
		}
	}
	return menus
}

func fixtureJobs() []models.Job {
	return []models.Job{
		{ID: "job-301", Restaurant: "Chick-fil-A", Title: "Spicy chicken sandwich meal", Location: "Drop-off at Chesapeake Hall", ItemCount: 2, Pay: 475, Icon: "🍔"},
		{ID: "job-302", Restaurant: "Starbucks", Title: "Coffee & Pastries", Location: "Drop-off at ITE", ItemCount: 3, Pay: 625, Icon: "☕"},
		{ID: "job-303", Restaurant: "The Commons", Title: "Chipotle Bowl", Location: "Drop-off at Library", ItemCount: 1, Pay: 400, Icon: "🥗"},
	}
}
