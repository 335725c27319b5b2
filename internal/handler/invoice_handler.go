package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/model"
	"github.com/paybridge/crypto-checkout/internal/service"
)

type InvoiceHandler struct {
	checkoutService service.CheckoutServiceInterface
}

func NewInvoiceHandler(checkoutService service.CheckoutServiceInterface) *InvoiceHandler {
	return &InvoiceHandler{
		checkoutService: checkoutService,
	}
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req model.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.PriceAmount.Sign() <= 0 {
		commons.RespondWithError(w, http.StatusBadRequest, "Invalid price amount")
		return
	}
	if req.PriceCurrency == "" || req.PayCurrency == "" {
		commons.RespondWithError(w, http.StatusBadRequest, "Missing price or pay currency")
		return
	}

	invoice, err := h.checkoutService.CreateInvoice(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrPayment) {
			commons.RespondWithError(w, http.StatusBadGateway, "Invoice creation failed")
			return
		}
		commons.RespondWithError(w, http.StatusInternalServerError, "Invoice creation failed")
		return
	}

	commons.RespondWithJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		commons.RespondWithError(w, http.StatusBadRequest, "Invalid payment id")
		return
	}

	status, err := h.checkoutService.PaymentStatus(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, model.ErrPayment) {
			commons.RespondWithError(w, http.StatusBadGateway, "Status fetch failed")
			return
		}
		commons.RespondWithError(w, http.StatusInternalServerError, "Status fetch failed")
		return
	}

	commons.RespondWithJSON(w, http.StatusOK, map[string]string{
		"payment_id": paymentID,
		"status":     status,
	})
}
