package model

import (
	"github.com/shopspring/decimal"
)

// Invoice is the subset of a processor invoice this service cares about.
// It is built once from the creation response and handed to the caller;
// nothing here persists it.
type Invoice struct {
	PaymentID     string          `json:"payment_id"`
	PayAddress    string          `json:"pay_address"`
	PayAmount     decimal.Decimal `json:"pay_amount"`
	PriceAmount   decimal.Decimal `json:"price_amount"`
	PriceCurrency string          `json:"price_currency"`
	PayCurrency   string          `json:"pay_currency"`
}

type InvoiceRequest struct {
	PriceAmount   decimal.Decimal `json:"price_amount"`
	PriceCurrency string          `json:"price_currency"`
	PayCurrency   string          `json:"pay_currency"`
	Description   string          `json:"order_description"`
	OrderID       string          `json:"order_id,omitempty"`
}
