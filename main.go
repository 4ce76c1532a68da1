package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tourism-backend/config"
	"tourism-backend/controllers"
	"tourism-backend/routes"
	"tourism-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set")
	}

	razorpayKeyID := os.Getenv("RAZORPAY_KEY_ID")
	razorpayKeySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if razorpayKeyID == "" || razorpayKeySecret == "" {
		log.Fatal("ERROR: RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET environment variables are not set")
	}
	razorpayWebhookSecret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Services
	bookingService := services.NewBookingService(db)
	gateway := services.NewRazorpayGateway(razorpayKeyID, razorpayKeySecret)
	paymentService := services.NewPaymentService(db, gateway, razorpayKeySecret, razorpayWebhookSecret)

	// Controllers
	authController := controllers.NewAuthController(db, jwtSecret)
	userController := controllers.NewUserController(db)
	placeController := controllers.NewPlaceController(db)
	subPlaceController := controllers.NewSubPlaceController(db)
	hotelController := controllers.NewHotelController(db)
	packageController := controllers.NewPackageController(db)
	ratingController := controllers.NewRatingController(db)
	bookingController := controllers.NewBookingController(bookingService)
	paymentController := controllers.NewPaymentController(paymentService)

	router := routes.SetupRouter(
		db,
		jwtSecret,
		authController,
		userController,
		placeController,
		subPlaceController,
		hotelController,
		packageController,
		ratingController,
		bookingController,
		paymentController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
