package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourism-backend/controllers"
	"tourism-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the API surface. The webhook
// endpoint is the only mutation left outside authentication because the
// gateway signs its own requests.
func SetupRouter(
	db *gorm.DB,
	jwtSecret string,
	ac *controllers.AuthController,
	uc *controllers.UserController,
	pc *controllers.PlaceController,
	spc *controllers.SubPlaceController,
	hc *controllers.HotelController,
	pkc *controllers.PackageController,
	rc *controllers.RatingController,
	bc *controllers.BookingController,
	payc *controllers.PaymentController,
) *gin.Engine {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := middleware.Auth(db, jwtSecret)
	adminOnly := middleware.AdminOnly()

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/logout", authed, ac.Logout)
			auth.GET("/me", authed, ac.Me)
		}

		users := api.Group("/users")
		{
			users.GET("", authed, adminOnly, uc.GetUsers)
			users.PUT("/profile", authed, uc.UpdateProfile)
			users.PUT("/password", authed, uc.ChangePassword)
			users.DELETE("/:id", authed, adminOnly, uc.DeleteUser)
		}

		places := api.Group("/places")
		{
			places.GET("", pc.GetPlaces)
			places.GET("/:id", pc.GetPlaceByID)
			places.POST("", authed, adminOnly, pc.CreatePlace)
			places.PUT("/:id", authed, adminOnly, pc.UpdatePlace)
			places.DELETE("/:id", authed, adminOnly, pc.DeletePlace)
		}

		subPlaces := api.Group("/subplaces")
		{
			subPlaces.GET("", spc.GetSubPlaces)
			subPlaces.GET("/:id", spc.GetSubPlaceByID)
			subPlaces.POST("", authed, adminOnly, spc.CreateSubPlace)
			subPlaces.PUT("/:id", authed, adminOnly, spc.UpdateSubPlace)
			subPlaces.DELETE("/:id", authed, adminOnly, spc.DeleteSubPlace)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", hc.GetHotels)
			hotels.GET("/:id", hc.GetHotelByID)
			hotels.POST("", authed, adminOnly, hc.CreateHotel)
			hotels.PUT("/:id", authed, adminOnly, hc.UpdateHotel)
			hotels.DELETE("/:id", authed, adminOnly, hc.DeleteHotel)
		}

		packages := api.Group("/packages")
		{
			packages.GET("", pkc.GetPackages)
			packages.GET("/:id", pkc.GetPackageByID)
			packages.POST("", authed, adminOnly, pkc.CreatePackage)
			packages.PUT("/:id", authed, adminOnly, pkc.UpdatePackage)
			packages.DELETE("/:id", authed, adminOnly, pkc.DeletePackage)
		}

		ratings := api.Group("/ratings")
		{
			ratings.GET("", rc.GetRatings)
			ratings.POST("", authed, rc.CreateRating)
			ratings.DELETE("/:id", authed, rc.DeleteRating)
			ratings.POST("/:id/helpful", authed, rc.MarkHelpful)
			ratings.POST("/:id/respond", authed, adminOnly, rc.RespondToRating)
		}

		bookings := api.Group("/bookings")
		{
			// Signed by the gateway, not by a user token.
			bookings.POST("/webhook", payc.Webhook)

			bookings.Use(authed)
			bookings.GET("", bc.GetBookings)
			bookings.GET("/stats", adminOnly, bc.GetBookingStats)
			bookings.GET("/my-bookings", bc.GetMyBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingByID)
			bookings.PATCH("/:id/status", bc.UpdateBookingStatus)
			bookings.PATCH("/:id/payment", bc.UpdatePaymentStatus)
			bookings.PATCH("/:id/cancel", bc.CancelBooking)
			bookings.POST("/:id/create-order", payc.CreateOrder)
			bookings.POST("/verify-payment", payc.VerifyPayment)
		}
	}

	return r
}
