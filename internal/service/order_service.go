package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/onzacore/distri-api/internal/auth"
	"github.com/onzacore/distri-api/internal/broker"
	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/order"
	"github.com/onzacore/distri-api/internal/store"
	"github.com/onzacore/distri-api/internal/util"
)

var (
	ErrStatusNotAllowed = errors.New("status not allowed for role")
	ErrInvalidStatus    = errors.New("unknown status")
	ErrMixedClients     = errors.New("orders belong to different clients")
	ErrTooFewOrders     = errors.New("at least two orders are required")
	ErrAlreadyArchived  = errors.New("order is already archived")
)

// OrderService handles order business logic
type OrderService struct {
	store          *store.Store
	catalog        *CatalogService
	eventPublisher *broker.EventPublisher
	sequencer      *order.Sequencer
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	store *store.Store,
	catalog *CatalogService,
	eventPublisher *broker.EventPublisher,
	sequencer *order.Sequencer,
) *OrderService {
	return &OrderService{
		store:          store,
		catalog:        catalog,
		eventPublisher: eventPublisher,
		sequencer:      sequencer,
		logger:         util.GetLogger(),
	}
}

// OrderDetail is the reconciled view of one order: the persisted order, its
// items in display order, the running total, integrity issues, and the
// status values the caller's role may set.
type OrderDetail struct {
	Order         models.Order           `json:"pedido"`
	Items         []models.OrderItem     `json:"items"`
	Total         float64                `json:"total"`
	Issues        []order.IntegrityIssue `json:"problemas_integridad"`
	StatusChoices []string               `json:"estados_disponibles"`
}

// GetOrderDetail fetches the order and the live catalog concurrently, then
// reconciles and sequences. Either fetch failing fails the whole call; no
// partial state is ever returned.
func (s *OrderService) GetOrderDetail(ctx context.Context, sess auth.Session, orderID int64) (*OrderDetail, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrderDetail")
	defer span.End()

	var (
		ord     *models.Order
		catalog []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.store.GetOrderByID(gctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to fetch order: %w", err)
		}
		ord = o
		return nil
	})
	g.Go(func() error {
		c, err := s.catalog.GetProducts(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}
		catalog = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	issues := order.FindIntegrityIssues(ord.Items, catalog)
	if len(issues) > 0 {
		util.IntegrityIssuesFound.Add(float64(len(issues)))
		s.logger.Warn("Order references missing products",
			zap.Int64("order_id", orderID),
			zap.Int("issues", len(issues)))
	}

	util.OrdersFetchedTotal.Inc()

	return &OrderDetail{
		Order:         *ord,
		Items:         s.sequencer.Sort(ord.Items),
		Total:         order.RoundCurrency(order.ComputeTotal(ord.Items)),
		Issues:        issues,
		StatusChoices: order.StatusChoices(sess.Role),
	}, nil
}

// GetOrder fetches a single order with its items, without reconciliation.
// Document rendering uses this; the print layouts work off persisted data only.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, orderID)
}

// ListOrders returns the order inbox, optionally including archived orders.
func (s *OrderService) ListOrders(ctx context.Context, includeArchived bool) ([]models.Order, error) {
	return s.store.ListOrders(ctx, includeArchived)
}

// UpdateItems replaces an order's line items with the edited set. Items with
// non-positive quantities are dropped here as well, in case a client skipped
// its own filtering.
func (s *OrderService) UpdateItems(ctx context.Context, sess auth.Session, orderID int64, items []models.SaveItem) (float64, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateItems")
	defer span.End()

	filtered := make([]models.SaveItem, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			filtered = append(filtered, item)
		}
	}

	if err := s.store.ReplaceOrderItems(ctx, orderID, filtered); err != nil {
		util.OrderSaveFailedTotal.WithLabelValues("db_error").Inc()
		return 0, fmt.Errorf("failed to save items: %w", err)
	}

	saved, err := s.store.GetOrderItems(ctx, orderID)
	if err != nil {
		return 0, err
	}
	total := order.RoundCurrency(order.ComputeTotal(saved))

	util.OrderItemsUpdatedTotal.Inc()
	s.logger.Info("Order items updated",
		zap.Int64("order_id", orderID),
		zap.Int("items", len(filtered)),
		zap.String("user", sess.UserName))

	if err := s.eventPublisher.PublishOrderItemsUpdated(ctx, sess.UserName, orderID, filtered, total); err != nil {
		s.logger.Error("Failed to publish OrderItemsUpdated event", zap.Error(err))
	}

	return total, nil
}

// UpdateStatus validates and applies a status transition. Restricted statuses
// are rejected for non-admin roles even though the UI already hides them.
func (s *OrderService) UpdateStatus(ctx context.Context, sess auth.Session, orderID int64, status string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if !order.ValidStatus(status) {
		return ErrInvalidStatus
	}
	if !order.CanSetStatus(sess.Role, status) {
		return ErrStatusNotAllowed
	}

	ord, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	util.OrderStatusChangesTotal.WithLabelValues(status).Inc()
	s.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("from", ord.Status),
		zap.String("to", status))

	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, sess.UserName, orderID, ord.Status, status); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	return nil
}

// UpdateNotes replaces the delivery notes, which are editable independently
// of the order's original notes.
func (s *OrderService) UpdateNotes(ctx context.Context, sess auth.Session, orderID int64, notes string) error {
	if err := s.store.UpdateOrderNotes(ctx, orderID, notes); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}

	if err := s.eventPublisher.PublishOrderNotesUpdated(ctx, sess.UserName, orderID); err != nil {
		s.logger.Error("Failed to publish OrderNotesUpdated event", zap.Error(err))
	}
	return nil
}

// Archive hides an order from the active inbox. Archival is its own
// operation, not a dropdown status choice, so it bypasses the role-visible
// status set; handlers restrict it to admins.
func (s *OrderService) Archive(ctx context.Context, sess auth.Session, orderID int64) error {
	ord, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanArchive(ord.Status) {
		return ErrAlreadyArchived
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, models.StatusArchived); err != nil {
		return fmt.Errorf("failed to archive order: %w", err)
	}

	util.OrderStatusChangesTotal.WithLabelValues(models.StatusArchived).Inc()
	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, sess.UserName, orderID, ord.Status, models.StatusArchived); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}
	return nil
}

// Unarchive returns an archived order to the active inbox as pending.
func (s *OrderService) Unarchive(ctx context.Context, sess auth.Session, orderID int64) error {
	return s.UpdateStatus(ctx, sess, orderID, models.StatusPending)
}

// CombineOrders merges two or more orders of one client into a new master
// order and archives the sources. Returns the master order id.
func (s *OrderService) CombineOrders(ctx context.Context, sess auth.Session, orderIDs []int64) (int64, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CombineOrders")
	defer span.End()

	if len(orderIDs) < 2 {
		return 0, ErrTooFewOrders
	}

	var clientID int64
	var sellerName string
	for i, id := range orderIDs {
		ord, err := s.store.GetOrderByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			clientID = ord.ClientID
			sellerName = ord.SellerName
			continue
		}
		if ord.ClientID != clientID {
			return 0, ErrMixedClients
		}
	}

	masterID, err := s.store.CombineOrders(ctx, clientID, sellerName, orderIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to combine orders: %w", err)
	}

	util.OrdersCombinedTotal.Inc()
	s.logger.Info("Orders combined",
		zap.Int64s("source_ids", orderIDs),
		zap.Int64("master_id", masterID))

	if err := s.eventPublisher.PublishOrdersCombined(ctx, sess.UserName, orderIDs, masterID, clientID); err != nil {
		s.logger.Error("Failed to publish OrdersCombined event", zap.Error(err))
	}

	return masterID, nil
}
