package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	catalogapp "github.com/groundtrade/inventory/application/catalog"
	checkoutapp "github.com/groundtrade/inventory/application/checkout"
	stockapp "github.com/groundtrade/inventory/application/stock"
	requestapp "github.com/groundtrade/inventory/application/stockrequest"
	"github.com/groundtrade/inventory/cmd/config"
	redisclient "github.com/groundtrade/inventory/cmd/redis"
	_ "github.com/groundtrade/inventory/docs"
	locationRepo "github.com/groundtrade/inventory/repository/location"
	productRepo "github.com/groundtrade/inventory/repository/product"
	redisRepo "github.com/groundtrade/inventory/repository/redis"
	stockRepo "github.com/groundtrade/inventory/repository/stock"
	requestRepo "github.com/groundtrade/inventory/repository/stockrequest"
	txRepo "github.com/groundtrade/inventory/repository/tx"
	"github.com/groundtrade/inventory/thirdparty/gateway"
	"github.com/groundtrade/inventory/thirdparty/orderapi"
	"github.com/groundtrade/inventory/thirdparty/rabbitmq"
	"github.com/groundtrade/inventory/transport"
	"github.com/groundtrade/inventory/utils/logger"
	validatorx "github.com/groundtrade/inventory/utils/validator"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title GROUNDTRADE INVENTORY API
// @version 1.0
// @description Multi-location inventory and point of sale API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	// Initialize the request validator singleton
	validatorx.Init()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// RabbitMQ publisher for activity log and low stock events
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	// Low stock consumer raising auto stock requests through the internal API
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		"http://localhost:"+cfg.Server.Port, cfg.Internal.APIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()
	if err := consumer.Start(context.Background()); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	StockRepo := stockRepo.NewStockRepository(db)
	RequestRepo := requestRepo.NewStockRequestRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	LocationRepo := locationRepo.NewLocationRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// External collaborators
	orderClient := orderapi.NewClient(cfg.Checkout.OrderAPIURL, cfg.Checkout.OrderAPIKey)
	paymentGateway := gateway.NewHTTPGateway(cfg.Checkout.GatewayURL)

	// Initialize application layers
	CatalogApp := catalogapp.NewCatalogApp(ProductRepo, LocationRepo, RedisRepo, cfg.Checkout.ProductCacheTTL)
	StockApp := stockapp.NewStockApp(TxRepo, StockRepo, ProductRepo, LocationRepo, publisher)
	RequestApp := requestapp.NewStockRequestApp(TxRepo, RequestRepo, StockRepo, ProductRepo, LocationRepo, publisher)
	CheckoutApp := checkoutapp.NewCheckoutApp(cfg, orderClient, paymentGateway, publisher)

	httpTransport := transport.NewTransport(cfg, CatalogApp, StockApp, RequestApp, CheckoutApp, paymentGateway, RedisRepo)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
