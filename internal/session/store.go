// Package session keeps per-visitor state in redis behind an opaque cookie
// token: the signed-in user, the anonymous cart, and checkout progress.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token has no session behind it, either
// because it expired or was never issued.
var ErrNotFound = errors.New("session not found")

// Session is the JSON state stored per token. Cart maps product ids
// (as decimal strings, JSON object keys) to quantities and is only used
// while no user is bound.
type Session struct {
	Token           string                  `json:"-"`
	UserID          *uuid.UUID              `json:"user_id,omitempty"`
	Cart            map[string]int          `json:"cart,omitempty"`
	Shipping        *models.ShippingDetails `json:"shipping,omitempty"`
	PaymentMethodID *int64                  `json:"payment_method_id,omitempty"`
}

// CartQuantity returns the anonymous-cart quantity for a product.
func (s *Session) CartQuantity(productID int64) int {
	return s.Cart[strconv.FormatInt(productID, 10)]
}

// SetCartQuantity sets the anonymous-cart quantity for a product; zero or
// less removes the line.
func (s *Session) SetCartQuantity(productID int64, quantity int) {
	key := strconv.FormatInt(productID, 10)

	if quantity <= 0 {
		delete(s.Cart, key)
		return
	}

	if s.Cart == nil {
		s.Cart = map[string]int{}
	}

	s.Cart[key] = quantity
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, cfg *config.Session) *Store {
	return &Store{client: client, ttl: cfg.TTL}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create issues a fresh token with empty state.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	sess := &Session{Token: uuid.NewString()}

	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess := &Session{Token: token}

	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return sess, nil
}

// Save writes the state back and slides the expiry forward.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.Token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
