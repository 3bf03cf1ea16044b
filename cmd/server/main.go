package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/akingscoffee/coffee_shop/internal/config"
	"github.com/akingscoffee/coffee_shop/internal/es"
	"github.com/akingscoffee/coffee_shop/internal/handlers"
	"github.com/akingscoffee/coffee_shop/internal/logging"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
	"github.com/akingscoffee/coffee_shop/internal/service/order"
	"github.com/akingscoffee/coffee_shop/internal/service/token"
	httpserver "github.com/akingscoffee/coffee_shop/internal/transport/http"
	loggingmw "github.com/akingscoffee/coffee_shop/pkg/middleware/logging"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(context.Background(), configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events disabled")
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	tokens := &token.TokenService{
		DB:            db,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     configuration.CORSOrigins(),
		AllowCredentials: true,
	}))
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:                 db,
		HealthHandler:      &handlers.HealthHandler{DB: db},
		OrderHandler:       &handlers.OrderHandler{Svc: &order.Service{DB: db}, Producer: prod},
		ProductHandler:     &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient},
		ReservationHandler: &handlers.ReservationHandler{DB: db, Producer: prod},
		ContactHandler:     &handlers.ContactHandler{DB: db, Producer: prod},
		SearchHandler:      &handlers.SearchHandler{ES: esClient, Index: es.ProductIndex},
		AuthHandler:        &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod},
		TokenService:       tokens,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db unwrap error", "error", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
