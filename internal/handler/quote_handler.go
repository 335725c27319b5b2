package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/paybridge/crypto-checkout/internal/service"
	"github.com/shopspring/decimal"
)

type QuoteHandler struct {
	checkoutService service.CheckoutServiceInterface
}

func NewQuoteHandler(checkoutService service.CheckoutServiceInterface) *QuoteHandler {
	return &QuoteHandler{
		checkoutService: checkoutService,
	}
}

func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	amountStr := r.URL.Query().Get("amount")
	currency := strings.ToLower(r.URL.Query().Get("currency"))
	symbol := strings.ToLower(r.URL.Query().Get("symbol"))

	if amountStr == "" || currency == "" || symbol == "" {
		commons.RespondWithError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.Sign() <= 0 {
		commons.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	cryptoAmount, err := h.checkoutService.Quote(r.Context(), amount, currency, symbol)
	if err != nil {
		if errors.Is(err, model.ErrPriceLookup) {
			commons.RespondWithError(w, http.StatusBadGateway, "Price lookup failed")
			return
		}
		commons.RespondWithError(w, http.StatusInternalServerError, "Quote failed")
		return
	}

	commons.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"amount":        amount,
		"currency":      currency,
		"symbol":        symbol,
		"crypto_amount": cryptoAmount,
	})
}
