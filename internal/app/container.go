package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/hotel-booking-backend/internal/api"
	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/booking"
	"github.com/hoteldesk/hotel-booking-backend/internal/config"
	"github.com/hoteldesk/hotel-booking-backend/internal/notify"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/storage"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the app.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	UploadDir    string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	SMTP         notify.SMTPConfig
}

// Container holds the initialized components needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer wires every module together and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	imageStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Booking repository first: the room registry consults it before taking
	// a room out of service.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Room module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, bookingRepo)

	// Confirmation dispatcher; falls back to logging when SMTP is not set.
	var notifier booking.Notifier = notify.LogDispatcher{}
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPDispatcher(cfg.SMTP, userService)
	}

	// Booking module
	bookingService := booking.NewService(bookingRepo, roomService, notifier)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UploadDir:      cfg.UploadDir,
		UserService:    userService,
		RoomService:    roomService,
		BookingService: bookingService,
		ImageStore:     imageStore,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}

// FromAppConfig adapts the loaded application configuration.
func FromAppConfig(cfg *config.Config, pool *pgxpool.Pool) Config {
	return Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		UploadDir:    cfg.UploadDir,
		DBPool:       pool,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
		SMTP: notify.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.MailFrom,
		},
	}
}
