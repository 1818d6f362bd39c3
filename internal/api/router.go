package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/hoteldesk/hotel-booking-backend/internal/booking/http"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/storage"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
	roomHttp "github.com/hoteldesk/hotel-booking-backend/internal/room/http"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UploadDir      string
	UserService    user.Service
	RoomService    room.Service
	BookingService booking.Service
	ImageStore     storage.Store
	JWTManager     *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, auth) and registers the
// routes of every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin()

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, cfg.ImageStore)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Uploaded room images are served directly from disk.
	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/admin/login", authHandler.AdminLogin)
		v1.GET("/me", authMiddleware, authHandler.Me)

		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
	}

	return r
}
