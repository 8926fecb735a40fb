package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/groundtrade/inventory/application/cart"
	"github.com/groundtrade/inventory/cmd/config"
	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	"github.com/groundtrade/inventory/thirdparty/gateway"
	"github.com/groundtrade/inventory/thirdparty/orderapi"
	"github.com/groundtrade/inventory/thirdparty/rabbitmq"
	"github.com/groundtrade/inventory/utils/errors"
	"github.com/groundtrade/inventory/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// minChargeable is the smallest amount the gateway accepts.
var minChargeable = decimal.NewFromFloat(0.01)

// CheckoutApp turns a priced cart plus a payment method into exactly one of
// a completed sale with an order, or a clearly reported failure.
type CheckoutApp interface {
	CheckoutCash(ctx context.Context, actor *model.Actor, req *model.CashCheckoutRequest) (*model.CheckoutResult, error)
	CheckoutGateway(ctx context.Context, actor *model.Actor, req *model.GatewayCheckoutRequest) (*model.CheckoutResult, error)
}

type checkoutAppImpl struct {
	config    *config.Config
	orderAPI  orderapi.Client
	gateway   gateway.Gateway
	publisher *rabbitmq.Publisher

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutApp(cfg *config.Config, orderAPI orderapi.Client, gw gateway.Gateway, publisher *rabbitmq.Publisher) CheckoutApp {
	return &checkoutAppImpl{
		config:    cfg,
		orderAPI:  orderAPI,
		gateway:   gw,
		publisher: publisher,
		inFlight:  make(map[string]bool),
	}
}

func (s *checkoutAppImpl) CheckoutCash(ctx context.Context, actor *model.Actor, req *model.CashCheckoutRequest) (*model.CheckoutResult, error) {
	totals := cart.Totals(req.Lines, req.DiscountPercent, req.TaxRate)
	total := totals.Total.Round(2)

	// precondition failures abort before any network call
	payload, err := s.buildOrderPayload(actor, req.Customer, req.Lines)
	if err != nil {
		return nil, err
	}

	if req.AmountReceived.LessThan(total) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	change := req.AmountReceived.Sub(total)
	if change.IsNegative() {
		change = decimal.Zero
	}

	result := &model.CheckoutResult{
		Completed: true,
		Change:    change,
		Totals:    totals,
	}

	// Cash is already in the drawer; a failed order write is flagged for
	// manual reconciliation, never reported as a failed sale.
	order, err := s.orderAPI.CreateOrder(ctx, payload)
	if err != nil {
		logger.Error("[CheckoutCash] create order", zap.String("error", err.Error()))
		result.OrderError = errors.SetCustomError(constant.ErrOrderPersistence).Error()
		s.logActivity(actor, "cash_sale_unrecorded", req.SessionID)
		return result, nil
	}

	result.OrderID = &order.OrderID
	result.OrderNumber = order.OrderNumber
	s.logActivity(actor, "cash_sale", req.SessionID)

	return result, nil
}

func (s *checkoutAppImpl) CheckoutGateway(ctx context.Context, actor *model.Actor, req *model.GatewayCheckoutRequest) (*model.CheckoutResult, error) {
	if !s.acquireSession(req.SessionID) {
		return nil, errors.SetCustomError(constant.ErrCheckoutInFlight)
	}
	release := s.releaseOnce(req.SessionID)
	handedOff := false
	defer func() {
		if !handedOff {
			release()
		}
	}()

	// totals and reference are rebuilt here, immediately before submission;
	// nothing priced earlier in the session is trusted
	totals := cart.Totals(req.Lines, req.DiscountPercent, req.TaxRate)
	total := totals.Total.Round(2)

	if total.LessThan(minChargeable) {
		return nil, errors.SetCustomError(constant.ErrInvalidAmount)
	}

	payload, err := s.buildOrderPayload(actor, req.Customer, req.Lines)
	if err != nil {
		return nil, err
	}

	customer := gateway.Customer{
		Name:  constant.WalkInCustomerName,
		Email: constant.WalkInCustomerEmail,
		Phone: constant.WalkInCustomerPhone,
	}
	if req.Customer != nil {
		customer = gateway.Customer{Name: req.Customer.Name, Email: req.Customer.Email, Phone: req.Customer.Phone}
	}

	txRef := "POS-" + uuid.New().String()
	cfg := gateway.PaymentConfig{
		PublicKey:      s.config.Checkout.GatewayPublicKey,
		TxRef:          txRef,
		Amount:         total,
		Currency:       s.config.Checkout.Currency,
		PaymentOptions: "card,banktransfer,ussd",
		Customer:       customer,
		Meta:           map[string]string{"session_id": req.SessionID},
		Customizations: gateway.Customizations{
			Title:       "Groundtrade POS",
			Description: "Point of sale checkout",
		},
	}

	events, err := s.gateway.Submit(ctx, cfg)
	if err != nil {
		logger.Error("[CheckoutGateway] submit payment", zap.String("tx_ref", txRef), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrPaymentFailure)
	}

	for {
		select {
		case <-ctx.Done():
			// the dispatched payment keeps running; settle it off to the
			// side and log the outcome even though nobody is watching
			handedOff = true
			go func() {
				defer release()
				result, err := s.settle(context.Background(), actor, payload, totals, txRef, events, req.SessionID)
				if err != nil {
					logger.Warn("[CheckoutGateway] abandoned attempt failed", zap.String("tx_ref", txRef), zap.String("error", err.Error()))
					return
				}
				logger.Info("[CheckoutGateway] abandoned attempt settled", zap.String("tx_ref", txRef), zap.Bool("completed", result.Completed))
			}()
			return nil, errors.SetCustomError(constant.ErrPaymentInconclusive)
		case event, ok := <-events:
			if !ok {
				// settled channel without a terminal status
				return nil, errors.SetCustomError(constant.ErrPaymentInconclusive)
			}
			result, terminal, err := s.handleEvent(ctx, actor, payload, totals, txRef, event, req.SessionID)
			if terminal {
				return result, err
			}
		}
	}
}

// settle drains the event channel to its terminal outcome. Used for attempts
// whose caller has gone away.
func (s *checkoutAppImpl) settle(ctx context.Context, actor *model.Actor, payload *model.OrderPayload, totals model.CartTotals, txRef string, events <-chan gateway.PaymentEvent, sessionID string) (*model.CheckoutResult, error) {
	for event := range events {
		result, terminal, err := s.handleEvent(ctx, actor, payload, totals, txRef, event, sessionID)
		if terminal {
			return result, err
		}
	}
	return nil, errors.SetCustomError(constant.ErrPaymentInconclusive)
}

func (s *checkoutAppImpl) handleEvent(ctx context.Context, actor *model.Actor, payload *model.OrderPayload, totals model.CartTotals, txRef string, event gateway.PaymentEvent, sessionID string) (*model.CheckoutResult, bool, error) {
	switch ev := event.(type) {
	case gateway.PaymentSuccessful:
		result := &model.CheckoutResult{
			Completed:     true,
			TransactionID: ev.TransactionID,
			TxRef:         txRef,
			Totals:        totals,
		}
		// the customer has been charged; an order write failure must not
		// turn this into a retryable failure and a double charge
		order, err := s.orderAPI.CreateOrder(ctx, payload)
		if err != nil {
			logger.Error("[CheckoutGateway] create order", zap.String("tx_ref", txRef), zap.String("error", err.Error()))
			result.OrderError = errors.SetCustomError(constant.ErrOrderPersistence).Error()
			s.logActivity(actor, "gateway_sale_unrecorded", sessionID)
			return result, true, nil
		}
		result.OrderID = &order.OrderID
		result.OrderNumber = order.OrderNumber
		s.logActivity(actor, "gateway_sale", sessionID)
		return result, true, nil

	case gateway.PaymentFailed:
		logger.Info("[CheckoutGateway] payment failed", zap.String("tx_ref", txRef), zap.String("reason", ev.Reason))
		return nil, true, errors.SetCustomError(constant.ErrPaymentFailure)

	case gateway.PaymentCancelled:
		return nil, true, errors.SetCustomError(constant.ErrPaymentFailure)

	case gateway.WidgetClosed:
		// not an outcome; keep waiting for the terminal callback or closure
		return nil, false, nil

	default:
		return nil, false, nil
	}
}

// buildOrderPayload resolves the order's location from the actor's role and
// converts cart lines to order items. Both are precondition checks that must
// fail before any network call.
func (s *checkoutAppImpl) buildOrderPayload(actor *model.Actor, customer *model.Customer, lines []model.CartLine) (*model.OrderPayload, error) {
	if actor == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	payload := &model.OrderPayload{
		CustomerID: constant.WalkInCustomerID,
	}
	if customer != nil {
		payload.CustomerID = customer.ID
	}

	switch {
	case actor.Role.WarehouseBound():
		if actor.WarehouseID == 0 {
			return nil, errors.SetCustomError(constant.ErrInvalidActorLocation)
		}
		id := actor.WarehouseID
		payload.WarehouseID = &id
	case actor.Role.ShopBound():
		if actor.ShopID == 0 {
			return nil, errors.SetCustomError(constant.ErrInvalidActorLocation)
		}
		id := actor.ShopID
		payload.ShopID = &id
	default:
		if actor.ShopID != 0 {
			id := actor.ShopID
			payload.ShopID = &id
		}
		if actor.WarehouseID != 0 {
			id := actor.WarehouseID
			payload.WarehouseID = &id
		}
		if payload.ShopID == nil && payload.WarehouseID == nil {
			return nil, errors.SetCustomError(constant.ErrInvalidActorLocation)
		}
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 {
			// a single bad line aborts the conversion; silently dropping
			// it would record a sale that does not match the cart
			return nil, errors.SetCustomError(constant.ErrInvalidLineItem)
		}
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Round(2),
		})
	}
	payload.Items = items

	return payload, nil
}

func (s *checkoutAppImpl) acquireSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *checkoutAppImpl) releaseOnce(sessionID string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inFlight, sessionID)
			s.mu.Unlock()
		})
	}
}

func (s *checkoutAppImpl) logActivity(actor *model.Actor, action, sessionID string) {
	if s.publisher == nil {
		return
	}
	var actorID uint64
	if actor != nil {
		actorID = actor.ID
	}
	if err := s.publisher.PublishActivity(rabbitmq.ActivityMessage{
		ActorID: actorID,
		Action:  action,
		Module:  constant.ModuleCheckout,
		Details: "session " + sessionID,
	}); err != nil {
		logger.Error("[Checkout] publish activity", zap.String("action", action), zap.String("error", err.Error()))
	}
}
