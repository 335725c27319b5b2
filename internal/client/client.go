package client

import (
	"context"

	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/shopspring/decimal"
)

type PriceClient interface {
	SpotPrice(ctx context.Context, cryptoSymbol, fiatCurrency string) (decimal.Decimal, error)
	Convert(ctx context.Context, fiatAmount decimal.Decimal, fiatCurrency, cryptoSymbol string) (decimal.Decimal, error)
}

type PaymentClient interface {
	CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (string, error)
}
