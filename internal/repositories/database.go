package repository

import (
	"database/sql"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Repositories bundles every store over the shared connection pool.
type Repositories struct {
	DB *sql.DB

	User          UserRepository
	Product       ProductRepository
	Cart          CartRepository
	Order         OrderRepository
	PaymentMethod PaymentMethodRepository
	Review        ReviewRepository
	Notification  NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure the DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:            db,
		User:          NewUserRepo(db),
		Product:       NewProductRepo(db),
		Cart:          NewCartRepo(db),
		Order:         NewOrderRepo(db),
		PaymentMethod: NewPaymentMethodRepo(db),
		Review:        NewReviewRepo(db),
		Notification:  NewNotificationRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
