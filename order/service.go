package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/order-service/errors"
	"github.com/kbukum/order-service/httpclient"
	"github.com/kbukum/order-service/logger"
	"github.com/kbukum/order-service/validation"
)

// StockChecker reports whether a quantity of a SKU is available.
// *inventory.Client implements it.
type StockChecker interface {
	IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error)
}

const inventoryService = "inventory"

// Service places orders after confirming stock.
type Service struct {
	stock StockChecker
	log   *logger.Logger
}

// NewService creates an order service backed by stock.
func NewService(stock StockChecker, log *logger.Logger) *Service {
	if log == nil {
		log = logger.WithComponent("order")
	}
	return &Service{stock: stock, log: log}
}

// PlaceOrder validates req, checks stock and returns the accepted order.
// Orders are acknowledged, not persisted.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	log := s.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldSkuCode, req.SkuCode,
		logger.FieldQuantity, req.Quantity,
	))

	inStock, err := s.stock.IsInStock(ctx, req.SkuCode, req.Quantity)
	if err != nil {
		log.Warn("stock check failed", logger.Fields(logger.FieldError, err.Error()))
		return nil, mapStockError(err)
	}
	if !inStock {
		log.Info("order rejected, product out of stock")
		return nil, apperrors.Conflict(fmt.Sprintf("Product with SkuCode %s is not in stock", req.SkuCode)).
			WithDetail("skuCode", req.SkuCode)
	}

	o := &Order{
		OrderNumber: uuid.NewString(),
		SkuCode:     req.SkuCode,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	log.Info("order placed", logger.Fields(logger.FieldOrderNum, o.OrderNumber))
	return o, nil
}

// mapStockError converts a failed inventory call into the AppError returned
// to the API caller.
func mapStockError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case httpclient.IsTimeout(err):
		return apperrors.Timeout("inventory.is_in_stock").WithCause(err)
	case httpclient.IsConnection(err):
		return apperrors.ConnectionFailed(inventoryService).WithCause(err)
	default:
		return apperrors.ExternalServiceError(inventoryService, err)
	}
}
