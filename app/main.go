package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/susan-shop/app/internal/config"
	domcart "example.com/susan-shop/app/internal/domain/cart"
	"example.com/susan-shop/app/internal/infra/mail"
	"example.com/susan-shop/app/internal/infra/restapi"
	"example.com/susan-shop/app/internal/infra/security"
	apihttp "example.com/susan-shop/app/internal/interface/http"
	"example.com/susan-shop/app/internal/logger"
	cartuc "example.com/susan-shop/app/internal/usecase/cart"
	cataloguc "example.com/susan-shop/app/internal/usecase/catalog"
	checkoutuc "example.com/susan-shop/app/internal/usecase/checkout"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "susan-shop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error("cart storage", "backend", cfg.CartBackend, "err", err)
		os.Exit(1)
	}
	defer closeStorage()

	client := restapi.NewClient(cfg.CatalogBaseURL,
		restapi.WithHTTPClient(&http.Client{Timeout: cfg.CatalogTimeout}),
		restapi.WithLogger(log),
		restapi.WithBreaker(5, 30*time.Second),
	)
	products := restapi.NewProductRepository(client)

	cartOpts := []cartuc.Option{cartuc.WithLogger(log)}
	if cfg.CartStockLimit {
		cartOpts = append(cartOpts, cartuc.WithStockLimit())
	}
	carts := cartuc.NewRegistry(storage, cartOpts...)
	carts.Subscribe(func(sessionID string, ev domcart.Event) {
		log.Info("cart changed",
			"session_id", sessionID,
			"kind", ev.Kind,
			"item_count", ev.Count,
			"total", ev.Total.String(),
		)
	})

	go carts.Run(ctx, time.Minute, cfg.CartIdleTTL, func(n int) {
		log.Debug("evicted idle carts", "count", n, "cached", carts.Len())
	})

	var notifier checkoutuc.Notifier
	if cfg.SMTPAddr != "" {
		notifier = mail.NewOrderMailer(cfg.SMTPAddr, cfg.MailFrom)
	}

	api := apihttp.NewAPI(apihttp.Dependencies{
		CatalogService:  cataloguc.NewService(products, restapi.NewCategoryRepository(client), log),
		Carts:           carts,
		CheckoutService: checkoutuc.NewService(products, restapi.NewOrderRepository(client), notifier, log),
		SessionService:  security.NewSessionService(cfg.SessionSecret, cfg.SessionTTL),
		Logger:          log,
		CORSOrigins:     cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("http server starting", slog.String("addr", srv.Addr), slog.String("cart_backend", cfg.CartBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}
}
