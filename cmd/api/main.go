package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/billsnap/billsnap/internal/bill"
	billStore "github.com/billsnap/billsnap/internal/bill/store"
	"github.com/billsnap/billsnap/internal/config"
	"github.com/billsnap/billsnap/internal/database"
	billsnapHttp "github.com/billsnap/billsnap/internal/http"
	billHandler "github.com/billsnap/billsnap/internal/http/bill"
	paymentHandler "github.com/billsnap/billsnap/internal/http/payment"
	visionHandler "github.com/billsnap/billsnap/internal/http/vision"
	"github.com/billsnap/billsnap/internal/payment"
	"github.com/billsnap/billsnap/internal/payment/razorpay"
	paymentStore "github.com/billsnap/billsnap/internal/payment/store"
	"github.com/billsnap/billsnap/internal/vision"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gateway := razorpay.New(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if !gateway.Configured() {
		slog.Warn("payment gateway not configured, falling back to manual settlement only")
	}

	var providers []vision.Provider
	if cfg.Vision.OpenAIKey != "" {
		providers = append(providers, vision.NewOpenAIProvider(cfg.Vision.OpenAIKey))
	}

	if cfg.Vision.GeminiKey != "" {
		providers = append(providers, vision.NewGeminiProvider(cfg.Vision.GeminiKey))
	}

	if len(providers) == 0 {
		slog.Warn("no vision providers configured, receipt parsing disabled")
	}

	var (
		billService    = bill.NewService(billStore.New(db))
		paymentService = payment.NewService(paymentStore.New(db), gateway, billService, cfg.Razorpay.KeySecret)
		visionService  = vision.NewService(providers...)
	)

	var (
		billH    = billHandler.NewHandler(billService)
		paymentH = paymentHandler.NewHandler(paymentService)
		visionH  = visionHandler.NewHandler(visionService)
	)

	router := billsnapHttp.New(billH, paymentH, visionH, cfg.Auth.JWTSecret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
