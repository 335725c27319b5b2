package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paybridge/crypto-checkout/internal/handler"
	api_middleware "github.com/paybridge/crypto-checkout/internal/middleware"
	"github.com/paybridge/crypto-checkout/internal/service"
)

func (s *Server) registerRoutes(checkoutService service.CheckoutServiceInterface) {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	authMiddleware := api_middleware.NewAuthMiddleware(s.config.APIKeyHash)

	router.Get("/healthz", handler.HandlerReadiness)
	quoteHandler := handler.NewQuoteHandler(checkoutService)
	invoiceHandler := handler.NewInvoiceHandler(checkoutService)
	router.With(api_middleware.RateLimitMiddleware).Get("/quote", quoteHandler.GetQuote)
	router.Route("/invoice", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/", invoiceHandler.CreateInvoice)
		r.Get("/{id}/status", invoiceHandler.GetPaymentStatus)
	})
	s.router = router
}
