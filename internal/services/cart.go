package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	"github.com/R-umaria/boxedwithlove/internal/session"
	"github.com/google/uuid"
)

const sessionLinePrefix = "session_"

// CartService serves both cart flavors: account carts live in postgres,
// anonymous carts live in the visitor's session. Line ids on the wire tell
// them apart: numeric row ids for account lines, "session_<productID>"
// for session lines.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	checkout *config.Checkout
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, checkout *config.Checkout) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		checkout: checkout,
	}
}

// Summarize computes the money block for a set of lines. Tax is integer
// cents math, truncated.
func (s *CartService) Summarize(lines []models.CartLine) models.CartSummary {
	var subtotal int64

	for _, line := range lines {
		subtotal += line.LineTotalCents
	}

	tax := subtotal * s.checkout.TaxRateBP / 10000

	return models.CartSummary{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		ShippingCents: s.checkout.ShippingCents,
		TotalCents:    subtotal + tax + s.checkout.ShippingCents,
	}
}

func (s *CartService) AddItem(ctx context.Context, sess *session.Session, req *models.AddItemRequest) (*models.CartView, error) {

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if !product.IsAvailable {
		return nil, errors.ConflictError("Product is not available")
	}

	if int64(req.Quantity) > product.Stock {
		return nil, errors.ConflictError(fmt.Sprintf("Insufficient stock for %q", product.Name))
	}

	if sess.UserID != nil {
		if _, err := s.carts.AddItem(ctx, *sess.UserID, req.ProductID, req.Quantity); err != nil {
			return nil, errors.DatabaseError("Failed to add cart item").WithError(err)
		}
	} else {
		sess.SetCartQuantity(req.ProductID, sess.CartQuantity(req.ProductID)+req.Quantity)
	}

	return s.View(ctx, sess)
}

// UpdateQuantity replaces a line's quantity. Anything below one removes
// the line instead.
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, itemID string, quantity int) (*models.CartView, error) {

	if quantity < 1 {
		return s.RemoveItem(ctx, sess, itemID)
	}

	if sess.UserID != nil && !strings.HasPrefix(itemID, sessionLinePrefix) {
		id, err := strconv.ParseInt(itemID, 10, 64)
		if err != nil {
			return nil, errors.ValidationError("Invalid cart item id")
		}

		if err := s.carts.UpdateQuantity(ctx, *sess.UserID, id, quantity); err != nil {
			return nil, errors.NotFoundError("Cart item not found").WithError(err)
		}
	} else {
		productID, err := parseSessionLineID(itemID)
		if err != nil {
			return nil, errors.ValidationError("Invalid cart item id")
		}

		if sess.CartQuantity(productID) == 0 {
			return nil, errors.NotFoundError("Cart item not found")
		}

		sess.SetCartQuantity(productID, quantity)
	}

	return s.View(ctx, sess)
}

func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, itemID string) (*models.CartView, error) {

	if sess.UserID != nil && !strings.HasPrefix(itemID, sessionLinePrefix) {
		id, err := strconv.ParseInt(itemID, 10, 64)
		if err != nil {
			return nil, errors.ValidationError("Invalid cart item id")
		}

		if err := s.carts.RemoveItem(ctx, *sess.UserID, id); err != nil {
			return nil, errors.NotFoundError("Cart item not found").WithError(err)
		}
	} else {
		productID, err := parseSessionLineID(itemID)
		if err != nil {
			return nil, errors.ValidationError("Invalid cart item id")
		}

		if sess.CartQuantity(productID) == 0 {
			return nil, errors.NotFoundError("Cart item not found")
		}

		sess.SetCartQuantity(productID, 0)
	}

	return s.View(ctx, sess)
}

func (s *CartService) View(ctx context.Context, sess *session.Session) (*models.CartView, error) {

	var lines []models.CartLine

	if sess.UserID != nil {
		items, err := s.carts.ListItems(ctx, *sess.UserID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to load cart").WithError(err)
		}

		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		products, err := s.products.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, errors.DatabaseError("Failed to load cart products").WithError(err)
		}

		for _, item := range items {
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}

			lines = append(lines, newCartLine(strconv.FormatInt(item.ID, 10), product, item.Quantity))
		}
	} else {
		ids := make([]int64, 0, len(sess.Cart))

		for key := range sess.Cart {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				continue
			}

			ids = append(ids, id)
		}

		// map iteration order is random; keep the view stable
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		products, err := s.products.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, errors.DatabaseError("Failed to load cart products").WithError(err)
		}

		// deleted products silently drop off the cart view
		for _, id := range ids {
			product, ok := products[id]
			if !ok {
				continue
			}

			lines = append(lines, newCartLine(fmt.Sprintf("%s%d", sessionLinePrefix, id), product, sess.CartQuantity(id)))
		}
	}

	return &models.CartView{
		Items:   lines,
		Summary: s.Summarize(lines),
	}, nil
}

// MergeSessionCart folds an anonymous cart into the account cart with the
// same add-or-increment rule as AddItem, then clears the session side.
// Called on login before the user id is bound to the session.
func (s *CartService) MergeSessionCart(ctx context.Context, sess *session.Session, userID uuid.UUID) error {

	for key, quantity := range sess.Cart {
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || quantity < 1 {
			continue
		}

		if _, err := s.products.GetProductByID(ctx, productID); err != nil {
			continue
		}

		if _, err := s.carts.AddItem(ctx, userID, productID, quantity); err != nil {
			return errors.DatabaseError("Failed to merge cart").WithError(err)
		}
	}

	sess.Cart = nil

	return nil
}

// CheckLine verifies a cart line exists for the caller without touching it.
func (s *CartService) CheckLine(ctx context.Context, sess *session.Session, itemID string) error {

	if sess.UserID != nil && !strings.HasPrefix(itemID, sessionLinePrefix) {
		id, err := strconv.ParseInt(itemID, 10, 64)
		if err != nil {
			return errors.ValidationError("Invalid cart item id")
		}

		if _, err := s.carts.GetItem(ctx, *sess.UserID, id); err != nil {
			return errors.NotFoundError("Cart item not found").WithError(err)
		}

		return nil
	}

	productID, err := parseSessionLineID(itemID)
	if err != nil {
		return errors.ValidationError("Invalid cart item id")
	}

	if sess.CartQuantity(productID) == 0 {
		return errors.NotFoundError("Cart item not found")
	}

	return nil
}

func newCartLine(id string, product *models.Product, quantity int) models.CartLine {
	return models.CartLine{
		ID:             id,
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductDesc:    product.Description,
		ProductImage:   product.ImageURL,
		UnitPriceCents: product.PriceCents,
		Quantity:       quantity,
		LineTotalCents: product.PriceCents * int64(quantity),
	}
}

func parseSessionLineID(itemID string) (int64, error) {
	raw := strings.TrimPrefix(itemID, sessionLinePrefix)

	return strconv.ParseInt(raw, 10, 64)
}
