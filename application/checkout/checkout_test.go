package checkout_test

import (
	"context"
	"testing"
	"time"

	appcheckout "github.com/groundtrade/inventory/application/checkout"
	"github.com/groundtrade/inventory/cmd/config"
	"github.com/groundtrade/inventory/constant"
	gatewaymocks "github.com/groundtrade/inventory/mocks/thirdparty/gateway"
	orderapimocks "github.com/groundtrade/inventory/mocks/thirdparty/orderapi"
	"github.com/groundtrade/inventory/model"
	"github.com/groundtrade/inventory/thirdparty/gateway"
	cerr "github.com/groundtrade/inventory/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testConfig() *config.Config {
	return &config.Config{
		Checkout: config.CheckoutConfig{
			Currency:         "NGN",
			GatewayPublicKey: "pk_test",
		},
	}
}

func shopActor() *model.Actor {
	return &model.Actor{ID: 42, Role: constant.RoleShopAttendant, ShopID: 3}
}

func lines(unitPrice string, quantity int64) []model.CartLine {
	return []model.CartLine{
		{ID: 1, ProductID: 10, Name: "Raw Groundnut 50kg", Quantity: quantity, UnitPrice: dec(unitPrice)},
	}
}

func TestCheckoutApp_CheckoutCash(t *testing.T) {
	type fields struct {
		orderAPI *orderapimocks.Client
		gateway  *gatewaymocks.Gateway
	}
	type args struct {
		ctx   context.Context
		actor *model.Actor
		req   *model.CashCheckoutRequest
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		wantErrType *constant.ErrorType
		check       func(t *testing.T, got *model.CheckoutResult)
	}{
		{
			name: "success: change returned on overpayment",
			fields: fields{
				orderAPI: orderapimocks.NewClient(t),
				gateway:  gatewaymocks.NewGateway(t),
			},
			args: args{
				ctx:   context.Background(),
				actor: shopActor(),
				req: &model.CashCheckoutRequest{
					SessionID:      "sess-1",
					Lines:          lines("750", 1),
					AmountReceived: dec("1000"),
				},
			},
			mockCall: func(f fields) {
				f.orderAPI.
					On("CreateOrder", mock.Anything, mock.Anything).
					Return(&model.OrderResult{OrderID: 11, OrderNumber: "SO-11"}, nil).
					Once()
			},
			check: func(t *testing.T, got *model.CheckoutResult) {
				if !got.Completed {
					t.Fatalf("completed = false, want true")
				}
				if !got.Change.Equal(dec("250")) {
					t.Fatalf("change = %s, want 250", got.Change)
				}
				if got.OrderID == nil || *got.OrderID != 11 {
					t.Fatalf("order id = %v, want 11", got.OrderID)
				}
				if got.OrderNumber != "SO-11" {
					t.Fatalf("order number = %s, want SO-11", got.OrderNumber)
				}
			},
		},
		{
			name: "error: insufficient cash rejected before the order call",
			fields: fields{
				orderAPI: orderapimocks.NewClient(t),
				gateway:  gatewaymocks.NewGateway(t),
			},
			args: args{
				ctx:   context.Background(),
				actor: shopActor(),
				req: &model.CashCheckoutRequest{
					SessionID:      "sess-2",
					Lines:          lines("750", 1),
					AmountReceived: dec("500"),
				},
			},
			wantErrType: errType(constant.ErrInvalidRequest),
		},
		{
			name: "success: order write failure flags the sale instead of failing it",
			fields: fields{
				orderAPI: orderapimocks.NewClient(t),
				gateway:  gatewaymocks.NewGateway(t),
			},
			args: args{
				ctx:   context.Background(),
				actor: shopActor(),
				req: &model.CashCheckoutRequest{
					SessionID:      "sess-3",
					Lines:          lines("750", 1),
					AmountReceived: dec("750"),
				},
			},
			mockCall: func(f fields) {
				f.orderAPI.
					On("CreateOrder", mock.Anything, mock.Anything).
					Return(nil, cerr.SetCustomError(constant.ErrInternal)).
					Once()
			},
			check: func(t *testing.T, got *model.CheckoutResult) {
				if !got.Completed {
					t.Fatalf("completed = false, want true on order failure")
				}
				if got.OrderID != nil {
					t.Fatalf("order id = %v, want nil", got.OrderID)
				}
				if got.OrderError == "" {
					t.Fatalf("order error empty, want populated")
				}
				if !got.Change.Equal(dec("0")) {
					t.Fatalf("change = %s, want 0", got.Change)
				}
			},
		},
		{
			name: "error: a zero product id aborts the whole checkout",
			fields: fields{
				orderAPI: orderapimocks.NewClient(t),
				gateway:  gatewaymocks.NewGateway(t),
			},
			args: args{
				ctx:   context.Background(),
				actor: shopActor(),
				req: &model.CashCheckoutRequest{
					SessionID: "sess-4",
					Lines: []model.CartLine{
						{ID: 1, ProductID: 10, Quantity: 1, UnitPrice: dec("20")},
						{ID: 2, ProductID: 0, Quantity: 1, UnitPrice: dec("30")},
					},
					AmountReceived: dec("100"),
				},
			},
			wantErrType: errType(constant.ErrInvalidLineItem),
		},
		{
			name: "error: shop-bound actor without a shop",
			fields: fields{
				orderAPI: orderapimocks.NewClient(t),
				gateway:  gatewaymocks.NewGateway(t),
			},
			args: args{
				ctx:   context.Background(),
				actor: &model.Actor{ID: 42, Role: constant.RoleShopAttendant},
				req: &model.CashCheckoutRequest{
					SessionID:      "sess-5",
					Lines:          lines("750", 1),
					AmountReceived: dec("1000"),
				},
			},
			wantErrType: errType(constant.ErrInvalidActorLocation),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcheckout.NewCheckoutApp(testConfig(), tt.fields.orderAPI, tt.fields.gateway, nil)

			got, err := app.CheckoutCash(tt.args.ctx, tt.args.actor, tt.args.req)
			if tt.wantErrType != nil {
				if err == nil {
					t.Fatalf("error = nil, want %v", constant.ErrorTypeMessage[*tt.wantErrType])
				}
				if !cerr.Is(err, *tt.wantErrType) {
					t.Fatalf("error = %v, want %v", err, constant.ErrorTypeMessage[*tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			tt.check(t, got)
		})
	}
}

func errType(e constant.ErrorType) *constant.ErrorType {
	return &e
}

func TestCheckoutApp_OrderLocationByRole(t *testing.T) {
	tests := []struct {
		name            string
		actor           *model.Actor
		wantShopID      *uint64
		wantWarehouseID *uint64
	}{
		{
			name:       "shop attendant orders carry the shop only",
			actor:      &model.Actor{ID: 1, Role: constant.RoleShopAttendant, ShopID: 3, WarehouseID: 7},
			wantShopID: u64(3),
		},
		{
			name:            "warehouse staff orders carry the warehouse only",
			actor:           &model.Actor{ID: 1, Role: constant.RoleWarehouseStaff, ShopID: 3, WarehouseID: 7},
			wantWarehouseID: u64(7),
		},
		{
			name:            "admin orders carry whichever locations are present",
			actor:           &model.Actor{ID: 1, Role: constant.RoleAdmin, ShopID: 3, WarehouseID: 7},
			wantShopID:      u64(3),
			wantWarehouseID: u64(7),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			orderAPI := orderapimocks.NewClient(t)
			var captured *model.OrderPayload
			orderAPI.
				On("CreateOrder", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					captured = args.Get(1).(*model.OrderPayload)
				}).
				Return(&model.OrderResult{OrderID: 1, OrderNumber: "SO-1"}, nil).
				Once()

			app := appcheckout.NewCheckoutApp(testConfig(), orderAPI, gatewaymocks.NewGateway(t), nil)
			_, err := app.CheckoutCash(context.Background(), tt.actor, &model.CashCheckoutRequest{
				SessionID:      "sess-role",
				Lines:          lines("100", 1),
				AmountReceived: dec("100"),
			})
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}

			if !uint64PtrEqual(captured.ShopID, tt.wantShopID) {
				t.Fatalf("payload shop id = %v, want %v", captured.ShopID, tt.wantShopID)
			}
			if !uint64PtrEqual(captured.WarehouseID, tt.wantWarehouseID) {
				t.Fatalf("payload warehouse id = %v, want %v", captured.WarehouseID, tt.wantWarehouseID)
			}
		})
	}

	t.Run("actor with no location cannot check out", func(t *testing.T) {
		app := appcheckout.NewCheckoutApp(testConfig(), orderapimocks.NewClient(t), gatewaymocks.NewGateway(t), nil)
		_, err := app.CheckoutCash(context.Background(), &model.Actor{ID: 1, Role: constant.RoleAdmin}, &model.CashCheckoutRequest{
			SessionID:      "sess-none",
			Lines:          lines("100", 1),
			AmountReceived: dec("100"),
		})
		if !cerr.Is(err, constant.ErrInvalidActorLocation) {
			t.Fatalf("error = %v, want invalid actor location", err)
		}
	})
}

func u64(v uint64) *uint64 {
	return &v
}

func uint64PtrEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestCheckoutApp_CheckoutGateway(t *testing.T) {
	submit := func(gw *gatewaymocks.Gateway, events chan gateway.PaymentEvent) {
		gw.
			On("Submit", mock.Anything, mock.Anything).
			Return((<-chan gateway.PaymentEvent)(events), nil).
			Once()
	}

	req := func(session string) *model.GatewayCheckoutRequest {
		return &model.GatewayCheckoutRequest{
			SessionID: session,
			Lines:     lines("750", 1),
		}
	}

	t.Run("success: payment succeeds and the order is recorded", func(t *testing.T) {
		orderAPI := orderapimocks.NewClient(t)
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent, 2)
		submit(gw, events)
		orderAPI.
			On("CreateOrder", mock.Anything, mock.Anything).
			Return(&model.OrderResult{OrderID: 21, OrderNumber: "SO-21"}, nil).
			Once()

		events <- gateway.PaymentSuccessful{TransactionID: "FLW-123"}
		close(events)

		app := appcheckout.NewCheckoutApp(testConfig(), orderAPI, gw, nil)
		got, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-1"))
		if err != nil {
			t.Fatalf("error = %v, want nil", err)
		}
		if !got.Completed || got.OrderID == nil || *got.OrderID != 21 {
			t.Fatalf("result = %+v, want completed order 21", got)
		}
		if got.TransactionID != "FLW-123" {
			t.Fatalf("transaction id = %s, want FLW-123", got.TransactionID)
		}
		if got.TxRef == "" {
			t.Fatalf("tx ref empty, want populated")
		}
	})

	t.Run("success: charged customer with failing order write keeps the sale", func(t *testing.T) {
		orderAPI := orderapimocks.NewClient(t)
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent, 2)
		submit(gw, events)
		orderAPI.
			On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, cerr.SetCustomError(constant.ErrInternal)).
			Once()

		events <- gateway.PaymentSuccessful{TransactionID: "FLW-124"}
		close(events)

		app := appcheckout.NewCheckoutApp(testConfig(), orderAPI, gw, nil)
		got, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-2"))
		if err != nil {
			t.Fatalf("error = %v, want nil on order failure after charge", err)
		}
		if !got.Completed {
			t.Fatalf("completed = false, want true")
		}
		if got.OrderID != nil {
			t.Fatalf("order id = %v, want nil", got.OrderID)
		}
		if got.OrderError == "" {
			t.Fatalf("order error empty, want populated")
		}
	})

	t.Run("error: failed payment", func(t *testing.T) {
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent, 2)
		submit(gw, events)
		events <- gateway.PaymentFailed{Reason: "card declined"}
		close(events)

		app := appcheckout.NewCheckoutApp(testConfig(), orderapimocks.NewClient(t), gw, nil)
		_, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-3"))
		if !cerr.Is(err, constant.ErrPaymentFailure) {
			t.Fatalf("error = %v, want payment failure", err)
		}
	})

	t.Run("error: cancelled payment", func(t *testing.T) {
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent, 2)
		submit(gw, events)
		events <- gateway.PaymentCancelled{}
		close(events)

		app := appcheckout.NewCheckoutApp(testConfig(), orderapimocks.NewClient(t), gw, nil)
		_, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-4"))
		if !cerr.Is(err, constant.ErrPaymentFailure) {
			t.Fatalf("error = %v, want payment failure", err)
		}
	})

	t.Run("success: widget close is not an outcome", func(t *testing.T) {
		orderAPI := orderapimocks.NewClient(t)
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent, 2)
		submit(gw, events)
		orderAPI.
			On("CreateOrder", mock.Anything, mock.Anything).
			Return(&model.OrderResult{OrderID: 22, OrderNumber: "SO-22"}, nil).
			Once()

		events <- gateway.WidgetClosed{}
		events <- gateway.PaymentSuccessful{TransactionID: "FLW-125"}
		close(events)

		app := appcheckout.NewCheckoutApp(testConfig(), orderAPI, gw, nil)
		got, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-5"))
		if err != nil {
			t.Fatalf("error = %v, want nil", err)
		}
		if !got.Completed {
			t.Fatalf("completed = false, want true after widget close then success")
		}
	})

	t.Run("error: channel closed without a terminal status", func(t *testing.T) {
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent)
		submit(gw, events)
		close(events)

		app := appcheckout.NewCheckoutApp(testConfig(), orderapimocks.NewClient(t), gw, nil)
		_, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-6"))
		if !cerr.Is(err, constant.ErrPaymentInconclusive) {
			t.Fatalf("error = %v, want inconclusive", err)
		}
	})

	t.Run("error: amount below the gateway minimum", func(t *testing.T) {
		app := appcheckout.NewCheckoutApp(testConfig(), orderapimocks.NewClient(t), gatewaymocks.NewGateway(t), nil)
		_, err := app.CheckoutGateway(context.Background(), shopActor(), &model.GatewayCheckoutRequest{
			SessionID: "gw-7",
			Lines:     lines("0.001", 1),
		})
		if !cerr.Is(err, constant.ErrInvalidAmount) {
			t.Fatalf("error = %v, want invalid amount", err)
		}
	})

	t.Run("error: second attempt on an in-flight session is rejected", func(t *testing.T) {
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent)
		submitted := make(chan struct{})
		gw.
			On("Submit", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { close(submitted) }).
			Return((<-chan gateway.PaymentEvent)(events), nil).
			Once()

		app := appcheckout.NewCheckoutApp(testConfig(), orderapimocks.NewClient(t), gw, nil)

		firstDone := make(chan error, 1)
		go func() {
			_, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-8"))
			firstDone <- err
		}()

		select {
		case <-submitted:
		case <-time.After(2 * time.Second):
			t.Fatalf("first attempt never reached the gateway")
		}

		_, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-8"))
		if !cerr.Is(err, constant.ErrCheckoutInFlight) {
			t.Fatalf("error = %v, want checkout in flight", err)
		}

		events <- gateway.PaymentFailed{Reason: "card declined"}
		close(events)
		if err := <-firstDone; !cerr.Is(err, constant.ErrPaymentFailure) {
			t.Fatalf("first attempt error = %v, want payment failure", err)
		}
	})

	t.Run("success: cancelled caller hands settlement to the background", func(t *testing.T) {
		orderAPI := orderapimocks.NewClient(t)
		gw := gatewaymocks.NewGateway(t)
		events := make(chan gateway.PaymentEvent)
		submitted := make(chan struct{})
		gw.
			On("Submit", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { close(submitted) }).
			Return((<-chan gateway.PaymentEvent)(events), nil).
			Once()

		orderDone := make(chan struct{})
		orderAPI.
			On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { close(orderDone) }).
			Return(&model.OrderResult{OrderID: 31, OrderNumber: "SO-31"}, nil).
			Once()

		app := appcheckout.NewCheckoutApp(testConfig(), orderAPI, gw, nil)

		ctx, cancel := context.WithCancel(context.Background())
		firstDone := make(chan error, 1)
		go func() {
			_, err := app.CheckoutGateway(ctx, shopActor(), req("gw-9"))
			firstDone <- err
		}()

		select {
		case <-submitted:
		case <-time.After(2 * time.Second):
			t.Fatalf("attempt never reached the gateway")
		}

		// the caller walks away before any callback arrives
		cancel()
		select {
		case err := <-firstDone:
			if !cerr.Is(err, constant.ErrPaymentInconclusive) {
				t.Fatalf("error = %v, want payment inconclusive", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("cancelled attempt never returned")
		}

		// a late success must still be recorded as an order
		events <- gateway.PaymentSuccessful{TransactionID: "FLW-777"}
		close(events)
		select {
		case <-orderDone:
		case <-time.After(2 * time.Second):
			t.Fatalf("background settlement never recorded the order")
		}

		// and the session gate must reopen once settlement finishes
		retry := make(chan gateway.PaymentEvent, 2)
		retry <- gateway.PaymentFailed{Reason: "card declined"}
		close(retry)
		gw.
			On("Submit", mock.Anything, mock.Anything).
			Return((<-chan gateway.PaymentEvent)(retry), nil).
			Once()

		deadline := time.Now().Add(2 * time.Second)
		for {
			_, err := app.CheckoutGateway(context.Background(), shopActor(), req("gw-9"))
			if cerr.Is(err, constant.ErrPaymentFailure) {
				break
			}
			if !cerr.Is(err, constant.ErrCheckoutInFlight) {
				t.Fatalf("retry error = %v, want in-flight then payment failure", err)
			}
			if time.Now().After(deadline) {
				t.Fatalf("session gate never released after background settlement")
			}
			time.Sleep(10 * time.Millisecond)
		}
	})
}
