package main

import (
	"log"
	"net/http"

	"bepaid-gateway/internal/config"
	"bepaid-gateway/internal/db"
	"bepaid-gateway/internal/handler"
	"bepaid-gateway/internal/logger"
	"bepaid-gateway/internal/middleware"
	"bepaid-gateway/internal/order"
	"bepaid-gateway/internal/payment"
	"bepaid-gateway/internal/payment/webhook"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	merchant := payment.Merchant{
		ShopID:      cfg.ShopID,
		SecretKey:   cfg.SecretKey,
		TestMode:    cfg.TestMode,
		Debug:       cfg.DebugMode,
		SiteURL:     cfg.SiteURL,
		Description: cfg.Description,
	}

	repo := order.NewRepository(database)
	orderSvc := order.NewService(repo, payment.NewGateway(merchant))

	checkout := handler.NewCheckoutHandler(orderSvc)
	notify := webhook.NewHandler(payment.NewInterpreter(merchant, orderSvc))

	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))
	limiter := middleware.NewRateLimiter(middleware.LimitStrict, middleware.BurstStrict)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", checkout.Health)
	mux.Handle("POST /api/checkout/{orderID}/link",
		limiter.Middleware(auth(http.HandlerFunc(checkout.CreateLink))))
	// bePaid may deliver notifications with any method; no method pattern.
	mux.HandleFunc("/commerce/bepaid/payment-process", notify.Notify)

	chain := logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))

	logger.L().Info("bepaid gateway listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, chain); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
