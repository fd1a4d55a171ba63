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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"

	"github.com/buildmart/backend/internal/config"
	"github.com/buildmart/backend/internal/es"
	"github.com/buildmart/backend/internal/handlers"
	carthdl "github.com/buildmart/backend/internal/handlers/cart"
	"github.com/buildmart/backend/internal/logging"
	loggingmw "github.com/buildmart/backend/internal/middleware/logging"
	"github.com/buildmart/backend/internal/mykafka"
	"github.com/buildmart/backend/internal/service"
	httpserver "github.com/buildmart/backend/internal/transport/http"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	rdb := redis.NewClient(&redis.Options{
		Addr:     configuration.REDIS_ADDR,
		Password: configuration.REDIS_PASSWORD,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis connect error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"user_events", "cart_events", "product_events", "order_events"}
		prod, err = mykafka.NewProducer(brokers, topics)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events will not be published")
	}

	search := handlers.SearchHandler{Index: productIndex}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		search.ES = client
	} else {
		logger.Warn("ES_URL not set, search endpoint disabled")
	}

	chat := handlers.ChatHandler{Model: configuration.GENAI_MODEL}
	if configuration.GENAI_API_KEY != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  configuration.GENAI_API_KEY,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatal(err)
		}
		chat.Client = client
	} else {
		logger.Warn("GENAI_API_KEY not set, chat endpoint disabled")
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:              db,
		JWTSecret:       jwtSecret,
		AuthHandler:     &handlers.AuthHandler{DB: db, Redis: rdb, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		ProductHandler:  &handlers.ProductHandler{DB: db, Producer: prod, ES: search.ES, Index: productIndex},
		CategoryHandler: &handlers.CategoryHandler{DB: db},
		CartHandler:     &carthdl.CartHandler{DB: db, Redis: rdb, Producer: prod},
		WishlistHandler: &carthdl.WishlistHandler{DB: db, Redis: rdb, Producer: prod},
		OrderHandler:    &handlers.OrderHandler{DB: db, Producer: prod},
		UserHandler:     &handlers.UserHandler{DB: db},
		SearchHandler:   &search,
		ChatHandler:     &chat,
		TokenService:    &service.TokenService{DB: db, RefreshSecret: refreshSecret, JWTSecret: jwtSecret},
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
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := rdb.Close(); err != nil {
		log.Printf("redis close error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
