package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/paybridge/crypto-checkout/internal/cache"
	"github.com/paybridge/crypto-checkout/internal/client"
	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/logger"
	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/shopspring/decimal"
)

// CheckoutService ties the price feed and the payment processor
// together behind one surface. Spot prices are cached with a short
// TTL; invoice calls always go straight to the processor.
type CheckoutService struct {
	prices   client.PriceClient
	payments client.PaymentClient
	cache    cache.Cache
}

func NewCheckoutService(prices client.PriceClient, payments client.PaymentClient, cache cache.Cache) *CheckoutService {
	return &CheckoutService{
		prices:   prices,
		payments: payments,
		cache:    cache,
	}
}

func (s *CheckoutService) Quote(ctx context.Context, fiatAmount decimal.Decimal, fiatCurrency, cryptoSymbol string) (decimal.Decimal, error) {
	if fiatAmount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}

	price, err := s.spotPrice(ctx, fiatCurrency, cryptoSymbol)
	if err != nil {
		return decimal.Zero, err
	}
	return fiatAmount.DivRound(price, commons.QuotePrecision), nil
}

func (s *CheckoutService) CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error) {
	if req.PriceAmount.Sign() <= 0 {
		return nil, fmt.Errorf("price amount must be positive")
	}
	if req.PriceCurrency == "" || req.PayCurrency == "" {
		return nil, fmt.Errorf("price and pay currencies are required")
	}

	invoice, err := s.payments.CreateInvoice(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Infof("created invoice %s for %s %s payable in %s",
		invoice.PaymentID, invoice.PriceAmount, invoice.PriceCurrency, invoice.PayCurrency)
	return invoice, nil
}

func (s *CheckoutService) PaymentStatus(ctx context.Context, paymentID string) (string, error) {
	if paymentID == "" {
		return "", fmt.Errorf("payment id is required")
	}
	return s.payments.GetPaymentStatus(ctx, paymentID)
}

func (s *CheckoutService) spotPrice(ctx context.Context, fiatCurrency, cryptoSymbol string) (decimal.Decimal, error) {
	key := PriceKey(cryptoSymbol, fiatCurrency)
	if price, err := s.cache.Get(ctx, key); err == nil {
		return price, nil
	}

	price, err := s.prices.SpotPrice(ctx, cryptoSymbol, fiatCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.cache.Set(ctx, key, price, commons.PriceCacheExpiration); err != nil {
		logger.Errorf("failed to cache price for %s: %v", key, err)
	}
	return price, nil
}

// PriceKey is the cache key for a symbol/currency spot price. The
// warmer uses the same shape so warmed entries hit on the quote path.
func PriceKey(cryptoSymbol, fiatCurrency string) string {
	return fmt.Sprintf("price:%s:%s", strings.ToLower(cryptoSymbol), strings.ToLower(fiatCurrency))
}
