package transport

import (
	"encoding/json"
	"net/http"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	"github.com/groundtrade/inventory/thirdparty/gateway"
	utilsContext "github.com/groundtrade/inventory/utils/context"
	"github.com/groundtrade/inventory/utils/errors"
	validatorx "github.com/groundtrade/inventory/utils/validator"
	"github.com/shopspring/decimal"
)

var maxDiscountPercent = decimal.NewFromInt(100)

// clampPercent keeps a percentage inside [0,100] at the input boundary; the
// pricing engine itself does not clamp.
func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(maxDiscountPercent) {
		return maxDiscountPercent
	}
	return p
}

// CheckoutCash handler
// @Summary Close a sale paid in cash
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body model.CashCheckoutRequest true "Cart and payment"
// @Success 200 {object} model.CheckoutResult
// @Security BearerAuth
// @Router /checkout/cash [post]
func (s *RestHandler) CheckoutCash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CashCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.DiscountPercent = clampPercent(req.DiscountPercent)

	res, err := s.CheckoutApp.CheckoutCash(ctx, actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CheckoutGateway handler
// @Summary Close a sale through the payment gateway
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body model.GatewayCheckoutRequest true "Cart"
// @Success 200 {object} model.CheckoutResult
// @Security BearerAuth
// @Router /checkout/gateway [post]
func (s *RestHandler) CheckoutGateway(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.GatewayCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.DiscountPercent = clampPercent(req.DiscountPercent)

	res, err := s.CheckoutApp.CheckoutGateway(ctx, actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

type paymentCallbackRequest struct {
	TxRef         string `json:"tx_ref"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// PaymentCallback handler receives the provider's asynchronous payment
// callbacks and routes them to the waiting checkout attempt.
func (s *RestHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	var req paymentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TxRef == "" {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var event gateway.PaymentEvent
	switch req.Status {
	case "successful":
		event = gateway.PaymentSuccessful{TransactionID: req.TransactionID}
	case "cancelled":
		event = gateway.PaymentCancelled{}
	case "closed":
		event = gateway.WidgetClosed{}
	default:
		event = gateway.PaymentFailed{Reason: req.Reason}
	}

	if !s.Gateway.Resolve(req.TxRef, event) {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}

	writeSuccess(w, nil)
}

type paymentAbandonRequest struct {
	TxRef string `json:"tx_ref"`
}

// PaymentAbandon handler closes an attempt that will receive no terminal
// callback; the waiting checkout reads it as inconclusive.
func (s *RestHandler) PaymentAbandon(w http.ResponseWriter, r *http.Request) {
	var req paymentAbandonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TxRef == "" {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if !s.Gateway.Abandon(req.TxRef) {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}

	writeSuccess(w, nil)
}
