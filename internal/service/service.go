package service

import (
	"context"

	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/shopspring/decimal"
)

type CheckoutServiceInterface interface {
	Quote(ctx context.Context, fiatAmount decimal.Decimal, fiatCurrency, cryptoSymbol string) (decimal.Decimal, error)
	CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error)
	PaymentStatus(ctx context.Context, paymentID string) (string, error)
}
