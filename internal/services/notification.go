package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/types"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID int64) ([]*types.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) (*types.Notification, error)
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
}

func NewNotificationService(
	db *gorm.DB,
	log *logger.Logger,
	notificationRepo repos.NotificationRepo,
) NotificationService {
	serviceLog := log.With("service", "NotificationService")
	return &notificationService{
		db:               db,
		log:              serviceLog,
		notificationRepo: notificationRepo,
	}
}

func (ns *notificationService) ListNotifications(ctx context.Context, userID int64) ([]*types.Notification, error) {
	notifications, err := ns.notificationRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*types.Notification{}
	}
	return notifications, nil
}

// MarkRead is idempotent; re-reading an already-read notification is fine.
func (ns *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) (*types.Notification, error) {
	existing, gErr := ns.notificationRepo.GetByID(ctx, nil, notificationID)
	if gErr != nil {
		return nil, fmt.Errorf("Failed to load notification: %w", gErr)
	}
	if existing == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "Notification not found")
	}
	if existing.UserID != userID {
		return nil, apperrors.New(apperrors.ErrForbidden, "Notification belongs to another user")
	}

	updated, mErr := ns.notificationRepo.MarkRead(ctx, nil, notificationID)
	if mErr != nil {
		return nil, fmt.Errorf("Failed to mark notification read: %w", mErr)
	}
	return updated, nil
}

// OrderNotifier writes the order side-effect notifications. Sends are
// at-most-once: a failure is logged and never surfaced to the caller.
type OrderNotifier interface {
	OrderCreated(order *types.Order)
	OrderStatusChanged(order *types.Order)
}

type orderNotifier struct {
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
}

func NewOrderNotifier(log *logger.Logger, notificationRepo repos.NotificationRepo) OrderNotifier {
	notifierLog := log.With("service", "OrderNotifier")
	return &orderNotifier{log: notifierLog, notificationRepo: notificationRepo}
}

func (n *orderNotifier) OrderCreated(order *types.Order) {
	if n == nil || order == nil {
		return
	}
	message := fmt.Sprintf("لديك طلب جديد بقيمة %s ريال", order.TotalAmount)
	notification := &types.Notification{UserID: order.FamilyID, Message: message}
	if _, err := n.notificationRepo.Create(context.Background(), nil, notification); err != nil {
		n.log.Warn("Failed to send order-created notification", "order_id", order.ID, "user_id", order.FamilyID, "error", err)
	}
}

func (n *orderNotifier) OrderStatusChanged(order *types.Order) {
	if n == nil || order == nil {
		return
	}
	message := fmt.Sprintf("تم تحديث حالة طلبك إلى: %s", statusText(order.Status))
	notification := &types.Notification{UserID: order.CustomerID, Message: message}
	if _, err := n.notificationRepo.Create(context.Background(), nil, notification); err != nil {
		n.log.Warn("Failed to send status-changed notification", "order_id", order.ID, "user_id", order.CustomerID, "error", err)
	}
}

// statusText localizes the known statuses; anything else is echoed verbatim.
func statusText(status string) string {
	switch status {
	case types.OrderStatusAccepted:
		return "مقبول"
	case types.OrderStatusCompleted:
		return "مكتمل"
	case types.OrderStatusCancelled:
		return "ملغى"
	default:
		return status
	}
}
