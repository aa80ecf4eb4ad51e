package service

import (
	"context"
	"fmt"

	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/models"
)

// CartService edits a customer's per-restaurant carts. Carts are values owned
// by the caller's session; every method returns an updated copy.
type CartService struct {
	catalog catalog.Provider
}

// NewCartService creates a new cart service
func NewCartService(provider catalog.Provider) *CartService {
	return &CartService{catalog: provider}
}

// Add puts one unit of a menu item into the restaurant's cart. Unknown
// restaurants and items return catalog.ErrNotFound.
func (s *CartService) Add(ctx context.Context, carts models.Carts, slug, itemID string) (models.Carts, error) {
	items, err := s.catalog.GetMenu(ctx, slug)
	if err != nil {
		return carts, fmt.Errorf("failed to get menu: %w", err)
	}

	var item *models.MenuItem
	for i := range items {
		if items[i].ID == itemID {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return carts, fmt.Errorf("item %q at %q: %w", itemID, slug, catalog.ErrNotFound)
	}

	next := cloneCarts(carts)
	cart := next[slug]
	cart.Restaurant = slug
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			cart.Items[i].Quantity++
			next[slug] = cart
			return next, nil
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Icon:     item.Icon,
		Price:    item.Price,
		Quantity: 1,
	})
	next[slug] = cart
	return next, nil
}

// UpdateQuantity changes an item's quantity by change. Items that reach zero
// are removed, and so is a cart left empty.
func (s *CartService) UpdateQuantity(carts models.Carts, slug, itemID string, change int) models.Carts {
	cart, ok := carts[slug]
	if !ok {
		return carts
	}

	next := cloneCarts(carts)
	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range next[slug].Items {
		if item.ItemID == itemID {
			item.Quantity += change
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		delete(next, slug)
		return next
	}
	next[slug] = models.Cart{Restaurant: slug, Items: items}
	return next
}

// Remove drops an item from the restaurant's cart
func (s *CartService) Remove(carts models.Carts, slug, itemID string) models.Carts {
	cart, ok := carts[slug]
	if !ok {
		return carts
	}
	for _, item := range cart.Items {
		if item.ItemID == itemID {
			return s.UpdateQuantity(carts, slug, itemID, -item.Quantity)
		}
	}
	return carts
}

// Clear empties the restaurant's cart
func (s *CartService) Clear(carts models.Carts, slug string) models.Carts {
	if _, ok := carts[slug]; !ok {
		return carts
	}
	next := cloneCarts(carts)
	delete(next, slug)
	return next
}

func cloneCarts(carts models.Carts) models.Carts {
	next := make(models.Carts, len(carts))
	for slug, cart := range carts {
		next[slug] = models.Cart{
			Restaurant: cart.Restaurant,
			Items:      append([]models.CartItem(nil), cart.Items...),
		}
	}
	return next
}
