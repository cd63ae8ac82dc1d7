package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/config"
	"github.com/quickstay/hotel-booking-backend/internal/db"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/notification"
	"github.com/quickstay/hotel-booking-backend/internal/payment"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/storage"
	"github.com/quickstay/hotel-booking-backend/internal/room"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

// Container assembles every module with its dependencies. It owns the
// database pool and the notification broker connection.
type Container struct {
	Config *config.Config
	Pool   *pgxpool.Pool

	TokenVerifier   *auth.TokenVerifier
	WebhookVerifier *auth.WebhookVerifier
	Media           *storage.LocalStorage
	Notifier        notification.Publisher

	Users    user.Service
	Hotels   hotel.Service
	Rooms    room.Service
	Bookings booking.Service
	Payments payment.Service
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	pool, err := db.NewPool(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, errs.Wrap(err, "connect database")
	}

	media, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		pool.Close()
		return nil, errs.Wrap(err, "init media storage")
	}

	webhookVerifier, err := auth.NewWebhookVerifier(cfg.Auth.WebhookSecret, cfg.Auth.WebhookMaxSkew)
	if err != nil {
		pool.Close()
		return nil, errs.Wrap(err, "init webhook verifier")
	}

	var notifier notification.Publisher
	if cfg.Notification.AMQPURL != "" {
		notifier, err = notification.NewAMQPPublisher(cfg.Notification.AMQPURL)
		if err != nil {
			pool.Close()
			return nil, errs.Wrap(err, "connect notification broker")
		}
	} else {
		slog.Warn("no AMQP_URL configured, booking notices will be logged and dropped")
		notifier = notification.NewLogPublisher()
	}

	users := user.NewService(user.NewPgxRepository(pool))
	hotels := hotel.NewService(hotel.NewPgxRepository(pool), users)
	rooms := room.NewService(room.NewPgxRepository(pool), hotels, media, storage.NewImageProcessor())

	bookingRepo := booking.NewPgxRepository(pool)
	provider := payment.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	bookings := booking.NewService(bookingRepo, rooms, hotels, provider, notifier)
	payments := payment.NewService(bookingRepo, provider, notifier, cfg.Stripe.Currency)

	return &Container{
		Config:          cfg,
		Pool:            pool,
		TokenVerifier:   auth.NewTokenVerifier(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL),
		WebhookVerifier: webhookVerifier,
		Media:           media,
		Notifier:        notifier,
		Users:           users,
		Hotels:          hotels,
		Rooms:           rooms,
		Bookings:        bookings,
		Payments:        payments,
	}, nil
}

func (c *Container) Close() {
	c.Notifier.Close()
	c.Pool.Close()
}
