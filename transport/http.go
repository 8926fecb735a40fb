package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	catalogapp "github.com/groundtrade/inventory/application/catalog"
	checkoutapp "github.com/groundtrade/inventory/application/checkout"
	stockapp "github.com/groundtrade/inventory/application/stock"
	requestapp "github.com/groundtrade/inventory/application/stockrequest"
	"github.com/groundtrade/inventory/cmd/config"
	redisrepo "github.com/groundtrade/inventory/repository/redis"
	"github.com/groundtrade/inventory/thirdparty/gateway"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	CatalogApp  catalogapp.CatalogApp
	StockApp    stockapp.StockApp
	RequestApp  requestapp.StockRequestApp
	CheckoutApp checkoutapp.CheckoutApp
	Gateway     *gateway.HTTPGateway
}

func NewTransport(cfg *config.Config, catalogApp catalogapp.CatalogApp, stockApp stockapp.StockApp, requestApp requestapp.StockRequestApp, checkoutApp checkoutapp.CheckoutApp, gw *gateway.HTTPGateway, redisRepo redisrepo.Repository) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		CatalogApp:  catalogApp,
		StockApp:    stockApp,
		RequestApp:  requestApp,
		CheckoutApp: checkoutApp,
		Gateway:     gw,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Catalog
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.UpdateProduct).Methods(http.MethodPut)
	mux.HandleFunc("/products/{id}/stock-total", rh.ProductStockTotal).Methods(http.MethodGet)
	mux.HandleFunc("/warehouses/{id}/activate", rh.ActivateWarehouse).Methods(http.MethodPost)
	mux.HandleFunc("/warehouses/{id}/deactivate", rh.DeactivateWarehouse).Methods(http.MethodPost)

	// Stock ledger
	mux.HandleFunc("/stock/entry", rh.GetStockEntry).Methods(http.MethodGet)
	mux.HandleFunc("/stock/entry", rh.SetStockQuantity).Methods(http.MethodPut)
	mux.HandleFunc("/stock/location", rh.ListLocationStock).Methods(http.MethodGet)

	// Stock requests
	mux.HandleFunc("/stock-requests", rh.CreateStockRequest).Methods(http.MethodPost)
	mux.HandleFunc("/stock-requests", rh.ListStockRequests).Methods(http.MethodGet)
	mux.HandleFunc("/stock-requests/{id}/approve", rh.ApproveStockRequest).Methods(http.MethodPost)
	mux.HandleFunc("/stock-requests/{id}/decline", rh.DeclineStockRequest).Methods(http.MethodPost)
	mux.HandleFunc("/stock-requests/{id}/fulfill", rh.FulfillStockRequest).Methods(http.MethodPost)

	// Point of sale
	mux.HandleFunc("/checkout/cash", rh.CheckoutCash).Methods(http.MethodPost)
	mux.HandleFunc("/checkout/gateway", rh.CheckoutGateway).Methods(http.MethodPost)

	// Gateway webhooks (public, verified by tx_ref registration)
	mux.HandleFunc("/payments/callback", rh.PaymentCallback).Methods(http.MethodPost)
	mux.HandleFunc("/payments/abandon", rh.PaymentAbandon).Methods(http.MethodPost)

	// Internal service endpoints
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))
	internal.HandleFunc("/stock-requests/auto", rh.AutoStockRequest).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(cfg.JWTSecret, redisRepo))

	return mux
}
