package ordersvc

import (
	"context"

	"github.com/sirupsen/logrus"

	"chat_commerce/internal/api/events"
	ordermodels "chat_commerce/internal/api/order/models"
	"chat_commerce/internal/common"
)

// ConfirmOrder chốt phiên active thành đơn hoàn tất.
// Không bao giờ tạo phiên: không có phiên active là ErrNoActiveSession.
// Điều kiện tiên quyết: đơn có hàng và đủ thông tin khách.
// Sau khi chốt, phiên bất biến và bị gỡ khỏi cache.
func (e *OrderEngine) ConfirmOrder(ctx context.Context, ref SessionRef) (ordermodels.OrderSession, error) {
	var zero ordermodels.OrderSession
	key := ref.key()
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	session, err := e.resolveLocked(ctx, ref, false)
	if err != nil {
		return zero, err
	}

	if len(session.Items) == 0 {
		return zero, common.ErrEmptyOrder
	}
	if missing := session.MissingInfoFields(); len(missing) > 0 {
		return zero, common.NewIncompleteInfoError(missing)
	}

	now := e.nowFunc().UnixMilli()
	session.Status = ordermodels.StatusCompleted
	session.Stage = ordermodels.StageCompleted
	session.ConfirmedAt = now

	updated, err := e.persist(ctx, ref, session, map[string]interface{}{
		"status":      session.Status,
		"stage":       session.Stage,
		"confirmedAt": session.ConfirmedAt,
	})
	if err != nil {
		return zero, err
	}

	// Phiên đã kết thúc không được ở lại fast path
	e.cache.Delete(key)

	e.emit(ctx, ref, events.OrderOpConfirm, updated.ID)
	e.log.WithFields(logrus.Fields{
		"orderId": updated.ID.Hex(),
		"total":   updated.Totals.Total,
		"items":   len(updated.Items),
	}).Info("🛒 [ORDER] Xác nhận đơn hàng")

	return updated, nil
}

// CancelOrder hủy phiên active của khách.
// Không bao giờ tạo phiên: không có phiên active là ErrNoActiveSession.
// Phiên rỗng vẫn hủy được; sau khi hủy, phiên bất biến và bị gỡ khỏi cache.
func (e *OrderEngine) CancelOrder(ctx context.Context, ref SessionRef) (ordermodels.OrderSession, error) {
	var zero ordermodels.OrderSession
	key := ref.key()
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	session, err := e.resolveLocked(ctx, ref, false)
	if err != nil {
		return zero, err
	}

	now := e.nowFunc().UnixMilli()
	session.Status = ordermodels.StatusCancelled
	session.Stage = ordermodels.StageCancelled
	session.CancelledAt = now

	updated, err := e.persist(ctx, ref, session, map[string]interface{}{
		"status":      session.Status,
		"stage":       session.Stage,
		"cancelledAt": session.CancelledAt,
	})
	if err != nil {
		return zero, err
	}

	e.cache.Delete(key)

	e.emit(ctx, ref, events.OrderOpCancel, updated.ID)
	e.log.WithFields(logrus.Fields{
		"orderId": updated.ID.Hex(),
	}).Info("🛒 [ORDER] Hủy đơn hàng")

	return updated, nil
}
