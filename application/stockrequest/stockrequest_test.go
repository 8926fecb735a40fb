package stockrequest_test

import (
	"context"
	"testing"

	appstockrequest "github.com/groundtrade/inventory/application/stockrequest"
	"github.com/groundtrade/inventory/constant"
	locationmocks "github.com/groundtrade/inventory/mocks/repository/location"
	productmocks "github.com/groundtrade/inventory/mocks/repository/product"
	stockmocks "github.com/groundtrade/inventory/mocks/repository/stock"
	requestmocks "github.com/groundtrade/inventory/mocks/repository/stockrequest"
	txmocks "github.com/groundtrade/inventory/mocks/repository/tx"
	"github.com/groundtrade/inventory/model"
	cerr "github.com/groundtrade/inventory/utils/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	txRepo       *txmocks.TxRepository
	requestRepo  *requestmocks.StockRequestRepository
	stockRepo    *stockmocks.StockRepository
	productRepo  *productmocks.ProductRepository
	locationRepo *locationmocks.LocationRepository
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:       txmocks.NewTxRepository(t),
		requestRepo:  requestmocks.NewStockRequestRepository(t),
		stockRepo:    stockmocks.NewStockRepository(t),
		productRepo:  productmocks.NewProductRepository(t),
		locationRepo: locationmocks.NewLocationRepository(t),
	}
}

func newApp(f fields) appstockrequest.StockRequestApp {
	return appstockrequest.NewStockRequestApp(f.txRepo, f.requestRepo, f.stockRepo, f.productRepo, f.locationRepo, nil)
}

func expectTx(f fields, commit bool) *sqlx.Tx {
	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	if commit {
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
	} else {
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
	}
	return tx
}

func manager(warehouseID uint64) *model.Actor {
	return &model.Actor{ID: 9, Role: constant.RoleWarehouseManager, WarehouseID: warehouseID}
}

func pendingRequest() *model.StockRequest {
	return &model.StockRequest{
		ID:                100,
		ShopID:            3,
		WarehouseID:       7,
		ProductID:         10,
		RequestedQuantity: 50,
		RequestedBy:       42,
		Status:            constant.RequestStatusPending,
	}
}

func approvedRequest(quantity int64) *model.StockRequest {
	req := pendingRequest()
	req.Status = constant.RequestStatusApproved
	approvedBy := uint64(9)
	req.ApprovedBy = &approvedBy
	req.ApprovedQuantity = &quantity
	return req
}

func TestStockRequestApp_Create(t *testing.T) {
	tests := []struct {
		name        string
		req         *model.CreateStockRequestRequest
		mockCall    func(f fields)
		wantErrType constant.ErrorType
		wantID      uint64
	}{
		{
			name:        "error: zero quantity",
			req:         &model.CreateStockRequestRequest{ShopID: 3, WarehouseID: 7, ProductID: 10},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name:        "error: missing warehouse id",
			req:         &model.CreateStockRequestRequest{ShopID: 3, ProductID: 10, RequestedQuantity: 50},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name: "error: unknown shop",
			req:  &model.CreateStockRequestRequest{ShopID: 3, WarehouseID: 7, ProductID: 10, RequestedQuantity: 50},
			mockCall: func(f fields) {
				f.locationRepo.On("GetShopByID", mock.Anything, uint64(3)).Return(nil, nil).Once()
				f.locationRepo.On("GetWarehouseByID", mock.Anything, uint64(7)).Return(&model.Warehouse{ID: 7}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(10)).Return(&model.Product{ID: 10}, nil).Once()
			},
			wantErrType: constant.ErrNotFound,
		},
		{
			name: "success: request starts pending",
			req:  &model.CreateStockRequestRequest{ShopID: 3, WarehouseID: 7, ProductID: 10, RequestedQuantity: 50, Notes: "restock"},
			mockCall: func(f fields) {
				f.locationRepo.On("GetShopByID", mock.Anything, uint64(3)).Return(&model.Shop{ID: 3}, nil).Once()
				f.locationRepo.On("GetWarehouseByID", mock.Anything, uint64(7)).Return(&model.Warehouse{ID: 7}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(10)).Return(&model.Product{ID: 10}, nil).Once()
				f.requestRepo.On("Insert", mock.Anything, mock.Anything).Return(uint64(100), nil).Once()
			},
			wantID: 100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			got, err := app.Create(context.Background(), &model.Actor{ID: 42, Role: constant.RoleShopManager, ShopID: 3}, tt.req)
			if tt.wantErrType != 0 {
				if !cerr.Is(err, tt.wantErrType) {
					t.Fatalf("error = %v, want %v", err, constant.ErrorTypeMessage[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			if got.ID != tt.wantID {
				t.Fatalf("id = %d, want %d", got.ID, tt.wantID)
			}
			if got.Status != constant.RequestStatusPending {
				t.Fatalf("status = %v, want pending", got.Status)
			}
			if got.RequestedBy != 42 {
				t.Fatalf("requested by = %d, want 42", got.RequestedBy)
			}
		})
	}
}

func TestStockRequestApp_Approve(t *testing.T) {
	warehouseLoc := model.WarehouseLocation(7)

	tests := []struct {
		name             string
		actor            *model.Actor
		approvedQuantity int64
		mockCall         func(f fields)
		wantErrType      constant.ErrorType
	}{
		{
			name:             "success: zero approved quantity defaults to requested",
			actor:            manager(7),
			approvedQuantity: 0,
			mockCall: func(f fields) {
				tx := expectTx(f, true)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
				f.stockRepo.On("GetEntryForUpdateTx", mock.Anything, tx, warehouseLoc, uint64(10)).
					Return(&model.StockEntry{Quantity: 80, Reserved: 10}, nil).Once()
				f.stockRepo.On("ReserveTx", mock.Anything, tx, warehouseLoc, uint64(10), int64(50)).Return(nil).Once()
				f.requestRepo.On("ApproveTx", mock.Anything, tx, uint64(100), uint64(9), int64(50)).Return(nil).Once()
			},
		},
		{
			name:             "success: partial approval reserves the approved quantity",
			actor:            manager(7),
			approvedQuantity: 30,
			mockCall: func(f fields) {
				tx := expectTx(f, true)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
				f.stockRepo.On("GetEntryForUpdateTx", mock.Anything, tx, warehouseLoc, uint64(10)).
					Return(&model.StockEntry{Quantity: 80, Reserved: 10}, nil).Once()
				f.stockRepo.On("ReserveTx", mock.Anything, tx, warehouseLoc, uint64(10), int64(30)).Return(nil).Once()
				f.requestRepo.On("ApproveTx", mock.Anything, tx, uint64(100), uint64(9), int64(30)).Return(nil).Once()
			},
		},
		{
			name:  "error: not enough unreserved stock",
			actor: manager(7),
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
				f.stockRepo.On("GetEntryForUpdateTx", mock.Anything, tx, warehouseLoc, uint64(10)).
					Return(&model.StockEntry{Quantity: 55, Reserved: 10}, nil).Once()
			},
			wantErrType: constant.ErrInsufficientStock,
		},
		{
			name:  "error: already declined",
			actor: manager(7),
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				declined := pendingRequest()
				declined.Status = constant.RequestStatusDeclined
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(declined, nil).Once()
			},
			wantErrType: constant.ErrInvalidStateTransition,
		},
		{
			name:  "error: manager of another warehouse",
			actor: manager(8),
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
			},
			wantErrType: constant.ErrUnauthorize,
		},
		{
			name:  "error: shop role cannot approve",
			actor: &model.Actor{ID: 9, Role: constant.RoleShopManager, ShopID: 3},
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
			},
			wantErrType: constant.ErrUnauthorize,
		},
		{
			name:  "error: unknown request",
			actor: manager(7),
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(nil, nil).Once()
			},
			wantErrType: constant.ErrNotFound,
		},
		{
			name:             "error: negative approved quantity",
			actor:            manager(7),
			approvedQuantity: -1,
			wantErrType:      constant.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			err := app.Approve(context.Background(), tt.actor, 100, tt.approvedQuantity)
			if tt.wantErrType != 0 {
				if !cerr.Is(err, tt.wantErrType) {
					t.Fatalf("error = %v, want %v", err, constant.ErrorTypeMessage[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
		})
	}
}

func TestStockRequestApp_Decline(t *testing.T) {
	tests := []struct {
		name        string
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name: "success: pending request declined",
			mockCall: func(f fields) {
				tx := expectTx(f, true)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(100), constant.RequestStatusDeclined).Return(nil).Once()
			},
		},
		{
			name: "error: an approved request cannot be declined",
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(approvedRequest(50), nil).Once()
			},
			wantErrType: constant.ErrInvalidStateTransition,
		},
		{
			name: "error: a fulfilled request cannot be declined",
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				fulfilled := pendingRequest()
				fulfilled.Status = constant.RequestStatusFulfilled
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(fulfilled, nil).Once()
			},
			wantErrType: constant.ErrInvalidStateTransition,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := newApp(f)

			err := app.Decline(context.Background(), manager(7), 100)
			if tt.wantErrType != 0 {
				if !cerr.Is(err, tt.wantErrType) {
					t.Fatalf("error = %v, want %v", err, constant.ErrorTypeMessage[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
		})
	}
}

func TestStockRequestApp_Fulfill(t *testing.T) {
	warehouseLoc := model.WarehouseLocation(7)
	shopLoc := model.ShopLocation(3)

	tests := []struct {
		name        string
		mockCall    func(f fields)
		wantErrType constant.ErrorType
	}{
		{
			name: "success: reserved stock moves to the shop",
			mockCall: func(f fields) {
				tx := expectTx(f, true)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(approvedRequest(30), nil).Once()
				f.locationRepo.On("GetWarehouseByID", mock.Anything, uint64(7)).
					Return(&model.Warehouse{ID: 7, Status: constant.WarehouseStatusActive}, nil).Once()
				f.stockRepo.On("GetEntryForUpdateTx", mock.Anything, tx, warehouseLoc, uint64(10)).
					Return(&model.StockEntry{Quantity: 80, Reserved: 30}, nil).Once()
				f.stockRepo.On("ConsumeReservedTx", mock.Anything, tx, warehouseLoc, uint64(10), int64(30)).Return(nil).Once()
				f.stockRepo.On("AddQuantityTx", mock.Anything, tx, shopLoc, uint64(10), int64(30)).Return(nil).Once()
				f.requestRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(100), constant.RequestStatusFulfilled).Return(nil).Once()
			},
		},
		{
			name: "error: pending request cannot be fulfilled",
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(pendingRequest(), nil).Once()
			},
			wantErrType: constant.ErrInvalidStateTransition,
		},
		{
			name: "error: inactive warehouse",
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(approvedRequest(30), nil).Once()
				f.locationRepo.On("GetWarehouseByID", mock.Anything, uint64(7)).
					Return(&model.Warehouse{ID: 7, Status: constant.WarehouseStatusInactive}, nil).Once()
			},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name: "error: reservation no longer covers the quantity",
			mockCall: func(f fields) {
				tx := expectTx(f, false)
				f.requestRepo.On("GetByIDForUpdateTx", mock.Anything, tx, uint64(100)).Return(approvedRequest(30), nil).Once()
				f.locationRepo.On("GetWarehouseByID", mock.Anything, uint64(7)).
					Return(&model.Warehouse{ID: 7, Status: constant.WarehouseStatusActive}, nil).Once()
				f.stockRepo.On("GetEntryForUpdateTx", mock.Anything, tx, warehouseLoc, uint64(10)).
					Return(&model.StockEntry{Quantity: 80, Reserved: 10}, nil).Once()
			},
			wantErrType: constant.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := newApp(f)

			err := app.Fulfill(context.Background(), manager(7), 100)
			if tt.wantErrType != 0 {
				if !cerr.Is(err, tt.wantErrType) {
					t.Fatalf("error = %v, want %v", err, constant.ErrorTypeMessage[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
		})
	}
}

func TestStockRequestApp_CreateAuto(t *testing.T) {
	tests := []struct {
		name         string
		event        *model.LowStockEvent
		mockCall     func(f fields)
		wantErrType  constant.ErrorType
		wantQuantity int64
	}{
		{
			name:        "error: warehouse events do not raise requests",
			event:       &model.LowStockEvent{Location: model.WarehouseLocation(7), ProductID: 10, Quantity: 2},
			wantErrType: constant.ErrInvalidRequest,
		},
		{
			name:  "error: shop without a linked warehouse",
			event: &model.LowStockEvent{Location: model.ShopLocation(3), ProductID: 10, Quantity: 2},
			mockCall: func(f fields) {
				f.locationRepo.On("GetLinkedWarehouseID", mock.Anything, uint64(3)).Return(uint64(0), nil).Once()
			},
			wantErrType: constant.ErrNotFound,
		},
		{
			name:  "success: tops the shop up to the product max",
			event: &model.LowStockEvent{Location: model.ShopLocation(3), ProductID: 10, Quantity: 2},
			mockCall: func(f fields) {
				f.locationRepo.On("GetLinkedWarehouseID", mock.Anything, uint64(3)).Return(uint64(7), nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(10)).
					Return(&model.Product{ID: 10, MinStock: 5, MaxStock: 40}, nil).Once()
				f.requestRepo.On("Insert", mock.Anything, mock.Anything).Return(uint64(101), nil).Once()
			},
			wantQuantity: 38,
		},
		{
			name:  "success: falls back to min stock when max is unset",
			event: &model.LowStockEvent{Location: model.ShopLocation(3), ProductID: 10, Quantity: 2},
			mockCall: func(f fields) {
				f.locationRepo.On("GetLinkedWarehouseID", mock.Anything, uint64(3)).Return(uint64(7), nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(10)).
					Return(&model.Product{ID: 10, MinStock: 5}, nil).Once()
				f.requestRepo.On("Insert", mock.Anything, mock.Anything).Return(uint64(101), nil).Once()
			},
			wantQuantity: 5,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			got, err := app.CreateAuto(context.Background(), tt.event)
			if tt.wantErrType != 0 {
				if !cerr.Is(err, tt.wantErrType) {
					t.Fatalf("error = %v, want %v", err, constant.ErrorTypeMessage[tt.wantErrType])
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			if got.RequestedQuantity != tt.wantQuantity {
				t.Fatalf("quantity = %d, want %d", got.RequestedQuantity, tt.wantQuantity)
			}
			if got.RequestedBy != 0 {
				t.Fatalf("requested by = %d, want 0 for system requests", got.RequestedBy)
			}
			if got.Status != constant.RequestStatusPending {
				t.Fatalf("status = %v, want pending", got.Status)
			}
		})
	}
}
