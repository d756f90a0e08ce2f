package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nimaarv/chatspark/internal/config"
	"github.com/nimaarv/chatspark/internal/domain"
	"github.com/nimaarv/chatspark/internal/handlers"
	"github.com/nimaarv/chatspark/internal/middleware"
	"github.com/nimaarv/chatspark/internal/repository/user"
	"github.com/nimaarv/chatspark/internal/services"
	"github.com/nimaarv/chatspark/internal/services/conversation"
	"github.com/nimaarv/chatspark/internal/services/countries"
	"github.com/nimaarv/chatspark/internal/services/sms"
	"github.com/nimaarv/chatspark/internal/services/user_services"
	"github.com/nimaarv/chatspark/internal/store"
	"github.com/nimaarv/chatspark/internal/ws"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("chatspark")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)

	// --- Services ---
	var smsProvider sms.Provider
	if cfg.SMSAccessKey != "" && cfg.SMSAPIURL != "" {
		smsProvider = sms.NewHTTPProvider(&sms.Config{
			AccessKey:  cfg.SMSAccessKey,
			TemplateID: cfg.SMSTemplateID,
			APIURL:     cfg.SMSAPIURL,
		})
	} else {
		log.Println("No SMS gateway configured; verification codes will be logged")
		smsProvider = sms.NewConsoleProvider()
	}

	verificationService := user_services.NewVerificationService(userRepo, smsProvider, logger)
	authService := user_services.NewAuthService(cfg.JWTSecretKey, logger)
	countryClient := countries.NewClient(cfg.CountriesAPIURL)

	conversationCfg := conversation.DefaultConfig()
	conversationCfg.MinReplyDelay = cfg.ReplyMinDelay
	conversationCfg.MaxReplyDelay = cfg.ReplyMaxDelay
	if err := conversationCfg.Validate(); err != nil {
		log.Fatalf("Invalid reply delay configuration: %v", err)
	}

	hub := ws.NewHub(logger)
	registry := handlers.NewManagerRegistry(db, conversationCfg, hub, logger)
	defer registry.Close()

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(verificationService, authService, registry)
	chatHandler := handlers.NewChatHandler(registry, hub)
	countryHandler := handlers.NewCountryHandler(countryClient)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/api/auth/otp/request", authHandler.RequestOTP).Methods("POST")
	r.HandleFunc("/api/auth/otp/verify", authHandler.VerifyOTP).Methods("POST")
	r.HandleFunc("/api/countries", countryHandler.GetCountries).Methods("GET")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/chatrooms", chatHandler.GetChatrooms).Methods("GET")
	api.HandleFunc("/chatrooms", chatHandler.CreateChatroom).Methods("POST")
	api.HandleFunc("/chatrooms/{id}", chatHandler.DeleteChatroom).Methods("DELETE")
	api.HandleFunc("/chatrooms/{id}/messages", chatHandler.GetMessages).Methods("GET")
	api.HandleFunc("/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/messages/more", chatHandler.LoadMoreMessages).Methods("POST")
	api.HandleFunc("/ws", chatHandler.ServeWS).Methods("GET")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.Printf("Server starting on port %s", cfg.ServerPort)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
