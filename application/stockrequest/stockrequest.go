package stockrequest

import (
	"context"
	"fmt"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	locationrepo "github.com/groundtrade/inventory/repository/location"
	productrepo "github.com/groundtrade/inventory/repository/product"
	stockrepo "github.com/groundtrade/inventory/repository/stock"
	requestrepo "github.com/groundtrade/inventory/repository/stockrequest"
	txrepo "github.com/groundtrade/inventory/repository/tx"
	"github.com/groundtrade/inventory/thirdparty/rabbitmq"
	"github.com/groundtrade/inventory/utils/errors"
	"github.com/groundtrade/inventory/utils/logger"
	"go.uber.org/zap"
)

// StockRequestApp drives the transfer request state machine:
// pending -> approved -> fulfilled, with pending -> declined as the only
// other exit. Declined and fulfilled are terminal.
type StockRequestApp interface {
	Create(ctx context.Context, actor *model.Actor, req *model.CreateStockRequestRequest) (*model.StockRequest, error)
	Approve(ctx context.Context, actor *model.Actor, requestID uint64, approvedQuantity int64) error
	Decline(ctx context.Context, actor *model.Actor, requestID uint64) error
	Fulfill(ctx context.Context, actor *model.Actor, requestID uint64) error
	List(ctx context.Context, filter *model.StockRequestFilter) ([]model.StockRequest, error)
	CreateAuto(ctx context.Context, event *model.LowStockEvent) (*model.StockRequest, error)
}

type stockRequestAppImpl struct {
	txRepo       txrepo.TxRepository
	requestRepo  requestrepo.StockRequestRepository
	stockRepo    stockrepo.StockRepository
	productRepo  productrepo.ProductRepository
	locationRepo locationrepo.LocationRepository
	publisher    *rabbitmq.Publisher
}

func NewStockRequestApp(txRepo txrepo.TxRepository, requestRepo requestrepo.StockRequestRepository, stockRepo stockrepo.StockRepository, productRepo productrepo.ProductRepository, locationRepo locationrepo.LocationRepository, publisher *rabbitmq.Publisher) StockRequestApp {
	return &stockRequestAppImpl{
		txRepo:       txRepo,
		requestRepo:  requestRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		publisher:    publisher,
	}
}

func (s *stockRequestAppImpl) Create(ctx context.Context, actor *model.Actor, req *model.CreateStockRequestRequest) (*model.StockRequest, error) {
	if req.ShopID == 0 || req.WarehouseID == 0 || req.ProductID == 0 || req.RequestedQuantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	shop, err := s.locationRepo.GetShopByID(ctx, req.ShopID)
	if err != nil {
		logger.Error("[CreateRequest] get shop", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	warehouse, err := s.locationRepo.GetWarehouseByID(ctx, req.WarehouseID)
	if err != nil {
		logger.Error("[CreateRequest] get warehouse", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[CreateRequest] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if shop == nil || warehouse == nil || product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	request := &model.StockRequest{
		ShopID:            req.ShopID,
		WarehouseID:       req.WarehouseID,
		ProductID:         req.ProductID,
		RequestedQuantity: req.RequestedQuantity,
		RequestedBy:       actor.ID,
		Status:            constant.RequestStatusPending,
		Notes:             req.Notes,
	}

	id, err := s.requestRepo.Insert(ctx, request)
	if err != nil {
		logger.Error("[CreateRequest] insert request", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	request.ID = id

	s.logActivity(actor.ID, "create_request", fmt.Sprintf("request %d product %d qty %d", id, req.ProductID, req.RequestedQuantity))

	return request, nil
}

// Approve records who approved and for how much, and reserves the approved
// quantity at the source warehouse so it cannot be sold out from under the
// transfer. The actual quantity move happens in Fulfill.
func (s *stockRequestAppImpl) Approve(ctx context.Context, actor *model.Actor, requestID uint64, approvedQuantity int64) error {
	if approvedQuantity < 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApproveRequest] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	request, err := s.requestRepo.GetByIDForUpdateTx(ctx, tx, requestID)
	if err != nil {
		logger.Error("[ApproveRequest] get request", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if request == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if err := s.authorizeWarehouseSide(actor, request.WarehouseID); err != nil {
		return err
	}
	if request.Status != constant.RequestStatusPending {
		return errors.SetCustomError(constant.ErrInvalidStateTransition)
	}

	if approvedQuantity == 0 {
		approvedQuantity = request.RequestedQuantity
	}

	warehouseLoc := model.WarehouseLocation(request.WarehouseID)
	entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, warehouseLoc, request.ProductID)
	if err != nil {
		logger.Error("[ApproveRequest] get warehouse entry", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entry == nil || entry.Available() < approvedQuantity {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}

	if err := s.stockRepo.ReserveTx(ctx, tx, warehouseLoc, request.ProductID, approvedQuantity); err != nil {
		logger.Error("[ApproveRequest] reserve stock", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.requestRepo.ApproveTx(ctx, tx, requestID, actor.ID, approvedQuantity); err != nil {
		logger.Error("[ApproveRequest] update request", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApproveRequest] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.logActivity(actor.ID, "approve_request", fmt.Sprintf("request %d qty %d", requestID, approvedQuantity))

	return nil
}

func (s *stockRequestAppImpl) Decline(ctx context.Context, actor *model.Actor, requestID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeclineRequest] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	request, err := s.requestRepo.GetByIDForUpdateTx(ctx, tx, requestID)
	if err != nil {
		logger.Error("[DeclineRequest] get request", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if request == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if err := s.authorizeWarehouseSide(actor, request.WarehouseID); err != nil {
		return err
	}
	if request.Status != constant.RequestStatusPending {
		return errors.SetCustomError(constant.ErrInvalidStateTransition)
	}

	if err := s.requestRepo.UpdateStatusTx(ctx, tx, requestID, constant.RequestStatusDeclined); err != nil {
		logger.Error("[DeclineRequest] update request", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeclineRequest] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.logActivity(actor.ID, "decline_request", fmt.Sprintf("request %d", requestID))

	return nil
}

// Fulfill moves the approved quantity from the warehouse to the shop and
// closes the request. Only an approved request can be fulfilled.
func (s *stockRequestAppImpl) Fulfill(ctx context.Context, actor *model.Actor, requestID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[FulfillRequest] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	request, err := s.requestRepo.GetByIDForUpdateTx(ctx, tx, requestID)
	if err != nil {
		logger.Error("[FulfillRequest] get request", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if request == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if err := s.authorizeWarehouseSide(actor, request.WarehouseID); err != nil {
		return err
	}
	if request.Status != constant.RequestStatusApproved || request.ApprovedQuantity == nil {
		return errors.SetCustomError(constant.ErrInvalidStateTransition)
	}

	warehouse, err := s.locationRepo.GetWarehouseByID(ctx, request.WarehouseID)
	if err != nil {
		logger.Error("[FulfillRequest] get warehouse", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if warehouse == nil || warehouse.Status != constant.WarehouseStatusActive {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	quantity := *request.ApprovedQuantity
	warehouseLoc := model.WarehouseLocation(request.WarehouseID)

	entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, warehouseLoc, request.ProductID)
	if err != nil {
		logger.Error("[FulfillRequest] get warehouse entry", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entry == nil || entry.Quantity < quantity || entry.Reserved < quantity {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}

	if err := s.stockRepo.ConsumeReservedTx(ctx, tx, warehouseLoc, request.ProductID, quantity); err != nil {
		logger.Error("[FulfillRequest] consume reserved", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.stockRepo.AddQuantityTx(ctx, tx, model.ShopLocation(request.ShopID), request.ProductID, quantity); err != nil {
		logger.Error("[FulfillRequest] add shop quantity", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.requestRepo.UpdateStatusTx(ctx, tx, requestID, constant.RequestStatusFulfilled); err != nil {
		logger.Error("[FulfillRequest] update request", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[FulfillRequest] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.logActivity(actor.ID, "fulfill_request", fmt.Sprintf("request %d qty %d", requestID, quantity))

	return nil
}

func (s *stockRequestAppImpl) List(ctx context.Context, filter *model.StockRequestFilter) ([]model.StockRequest, error) {
	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListRequests] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return requests, nil
}

// CreateAuto raises a pending request from a low-stock event, topping the
// shop back up to the product's max threshold from its linked warehouse.
func (s *stockRequestAppImpl) CreateAuto(ctx context.Context, event *model.LowStockEvent) (*model.StockRequest, error) {
	if event == nil || event.Location.Type != constant.LocationShop {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	warehouseID, err := s.locationRepo.GetLinkedWarehouseID(ctx, event.Location.ID)
	if err != nil {
		logger.Error("[CreateAutoRequest] get linked warehouse", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if warehouseID == 0 {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	product, err := s.productRepo.GetByID(ctx, event.ProductID)
	if err != nil {
		logger.Error("[CreateAutoRequest] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	quantity := product.MaxStock - event.Quantity
	if quantity <= 0 {
		quantity = product.MinStock
	}
	if quantity <= 0 {
		quantity = 1
	}

	request := &model.StockRequest{
		ShopID:            event.Location.ID,
		WarehouseID:       warehouseID,
		ProductID:         event.ProductID,
		RequestedQuantity: quantity,
		RequestedBy:       0, // system
		Status:            constant.RequestStatusPending,
		Notes:             "auto request from low stock",
	}

	id, err := s.requestRepo.Insert(ctx, request)
	if err != nil {
		logger.Error("[CreateAutoRequest] insert request", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	request.ID = id

	s.logActivity(0, "auto_create_request", fmt.Sprintf("request %d product %d qty %d", id, event.ProductID, quantity))

	return request, nil
}

// authorizeWarehouseSide gates warehouse-side transitions: admins anywhere,
// warehouse managers only at their own warehouse.
func (s *stockRequestAppImpl) authorizeWarehouseSide(actor *model.Actor, warehouseID uint64) error {
	if actor == nil || !actor.Role.CanApproveRequests() {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if actor.Role != constant.RoleAdmin && actor.WarehouseID != warehouseID {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	return nil
}

func (s *stockRequestAppImpl) logActivity(actorID uint64, action, details string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishActivity(rabbitmq.ActivityMessage{
		ActorID: actorID,
		Action:  action,
		Module:  constant.ModuleStockRequest,
		Details: details,
	}); err != nil {
		logger.Error("[StockRequest] publish activity", zap.String("action", action), zap.String("error", err.Error()))
	}
}
