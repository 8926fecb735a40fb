package stock

import (
	"context"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	locationrepo "github.com/groundtrade/inventory/repository/location"
	productrepo "github.com/groundtrade/inventory/repository/product"
	stockrepo "github.com/groundtrade/inventory/repository/stock"
	txrepo "github.com/groundtrade/inventory/repository/tx"
	"github.com/groundtrade/inventory/thirdparty/rabbitmq"
	"github.com/groundtrade/inventory/utils/errors"
	"github.com/groundtrade/inventory/utils/logger"
	"go.uber.org/zap"
)

type StockApp interface {
	SetQuantity(ctx context.Context, actor *model.Actor, req *model.SetQuantityRequest) (*model.StockEntry, error)
	GetEntry(ctx context.Context, loc model.Location, productID uint64) (*model.StockEntry, error)
	ListByLocation(ctx context.Context, loc model.Location) ([]model.StockEntry, error)
	TotalAcrossLocations(ctx context.Context, productID uint64) (int64, error)
	IsLowStock(product *model.Product, entry *model.StockEntry) bool
}

type stockAppImpl struct {
	txRepo       txrepo.TxRepository
	stockRepo    stockrepo.StockRepository
	productRepo  productrepo.ProductRepository
	locationRepo locationrepo.LocationRepository
	publisher    *rabbitmq.Publisher
}

func NewStockApp(txRepo txrepo.TxRepository, stockRepo stockrepo.StockRepository, productRepo productrepo.ProductRepository, locationRepo locationrepo.LocationRepository, publisher *rabbitmq.Publisher) StockApp {
	return &stockAppImpl{
		txRepo:       txRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		publisher:    publisher,
	}
}

func (s *stockAppImpl) SetQuantity(ctx context.Context, actor *model.Actor, req *model.SetQuantityRequest) (*model.StockEntry, error) {
	if req.Quantity < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	loc := model.Location{Type: req.LocationType, ID: req.LocationID}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[SetQuantity] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[SetQuantity] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	entry, err := s.stockRepo.GetEntryForUpdateTx(ctx, tx, loc, req.ProductID)
	if err != nil {
		logger.Error("[SetQuantity] get entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	// a quantity write never touches reserved, so it must not undercut it
	if entry != nil && req.Quantity < entry.Reserved {
		return nil, errors.SetCustomError(constant.ErrReservedExceedsStock)
	}

	if err := s.stockRepo.UpsertQuantityTx(ctx, tx, loc, req.ProductID, req.Quantity); err != nil {
		logger.Error("[SetQuantity] upsert quantity", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[SetQuantity] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	updated, err := s.stockRepo.GetEntry(ctx, loc, req.ProductID)
	if err != nil {
		logger.Error("[SetQuantity] reread entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if updated == nil {
		updated = &model.StockEntry{LocationType: loc.Type, LocationID: loc.ID, ProductID: req.ProductID, Quantity: req.Quantity}
	}

	s.publishLowStockIfNeeded(ctx, loc, product, updated)

	if s.publisher != nil && actor != nil {
		if err := s.publisher.PublishActivity(rabbitmq.ActivityMessage{
			ActorID: actor.ID,
			Action:  "set_quantity",
			Module:  constant.ModuleStock,
			Details: "product " + product.SKU,
		}); err != nil {
			logger.Error("[SetQuantity] publish activity", zap.String("error", err.Error()))
		}
	}

	return updated, nil
}

func (s *stockAppImpl) publishLowStockIfNeeded(ctx context.Context, loc model.Location, product *model.Product, entry *model.StockEntry) {
	if s.publisher == nil {
		return
	}

	threshold := product.MinStock
	if loc.Type == constant.LocationShop {
		shop, err := s.locationRepo.GetShopByID(ctx, loc.ID)
		if err != nil {
			logger.Error("[SetQuantity] get shop settings", zap.String("error", err.Error()))
			return
		}
		if shop == nil || shop.AutoRequestThreshold <= 0 {
			return
		}
		if shop.AutoRequestThreshold > threshold {
			threshold = shop.AutoRequestThreshold
		}
	}

	if entry.Quantity > threshold {
		return
	}

	if err := s.publisher.PublishLowStock(model.LowStockEvent{
		Location:  loc,
		ProductID: product.ID,
		Quantity:  entry.Quantity,
		MinStock:  product.MinStock,
		At:        entry.UpdatedAt,
	}); err != nil {
		logger.Error("[SetQuantity] publish low stock", zap.String("error", err.Error()))
	}
}

// GetEntry never fails on absence: a missing row reads as a zero entry.
func (s *stockAppImpl) GetEntry(ctx context.Context, loc model.Location, productID uint64) (*model.StockEntry, error) {
	entry, err := s.stockRepo.GetEntry(ctx, loc, productID)
	if err != nil {
		logger.Error("[GetEntry] get entry", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entry == nil {
		entry = &model.StockEntry{LocationType: loc.Type, LocationID: loc.ID, ProductID: productID}
	}
	return entry, nil
}

func (s *stockAppImpl) ListByLocation(ctx context.Context, loc model.Location) ([]model.StockEntry, error) {
	entries, err := s.stockRepo.ListByLocation(ctx, loc)
	if err != nil {
		logger.Error("[ListByLocation] list entries", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entries, nil
}

// TotalAcrossLocations is a dashboard aggregate, not a transactional read.
func (s *stockAppImpl) TotalAcrossLocations(ctx context.Context, productID uint64) (int64, error) {
	total, err := s.stockRepo.TotalAcrossLocations(ctx, productID)
	if err != nil {
		logger.Error("[TotalAcrossLocations] sum stock", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	return total, nil
}

func (s *stockAppImpl) IsLowStock(product *model.Product, entry *model.StockEntry) bool {
	if product == nil || entry == nil {
		return false
	}
	return entry.Quantity <= product.MinStock
}
