package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spicebloom/storefront/internal/orderclient"
	"github.com/spicebloom/storefront/internal/service"
	"github.com/spicebloom/storefront/pkg/health"
	"github.com/spicebloom/storefront/pkg/middleware"
)

// Services bundles the service-layer dependencies the router needs.
type Services struct {
	Cart     *service.CartService
	Address  *service.AddressService
	Checkout *service.CheckoutService
	Wallet   *service.WalletService
	Wishlist *service.WishlistService
	Orders   *orderclient.Client
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	services Services,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	cartHandler := NewCartHandler(services.Cart, logger)
	addressHandler := NewAddressHandler(services.Address, logger)
	checkoutHandler := NewCheckoutHandler(services.Checkout, logger)
	walletHandler := NewWalletHandler(services.Wallet, logger)
	wishlistHandler := NewWishlistHandler(services.Wishlist, logger)
	orderHandler := NewOrderHandler(services.Orders, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.SetItemQuantity)
			r.Post("/items/{productId}/decrease", cartHandler.DecreaseItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", addressHandler.ListAddresses)
			r.Post("/", addressHandler.CreateAddress)
			r.Get("/{id}", addressHandler.GetAddress)
			r.Delete("/{id}", addressHandler.DeleteAddress)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.StartCheckout)
			r.Get("/{id}", checkoutHandler.GetCheckout)
			r.Put("/{id}/address", checkoutHandler.SelectAddress)
			r.Delete("/{id}/address", checkoutHandler.ClearAddress)
			r.Put("/{id}/payment", checkoutHandler.SelectPaymentMethod)
			r.Post("/{id}/advance", checkoutHandler.AdvanceStep)
			r.Post("/{id}/back", checkoutHandler.RetreatStep)
			r.Post("/{id}/submit", checkoutHandler.SubmitCheckout)
			r.Post("/{id}/confirm", checkoutHandler.ConfirmPayment)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetBalance)
			r.Post("/topup", walletHandler.CreateTopUp)
			r.Post("/topup/verify", walletHandler.VerifyTopUp)
			r.Get("/transactions", walletHandler.ListTransactions)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.ListWishlist)
			r.Get("/{productId}", wishlistHandler.CheckWishlist)
			r.Put("/{productId}", wishlistHandler.AddToWishlist)
			r.Delete("/{productId}", wishlistHandler.RemoveFromWishlist)
		})

		r.Get("/orders", orderHandler.ListMyOrders)
	})

	return r
}
