package ordersvc

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"chat_commerce/internal/api/events"
	ordermodels "chat_commerce/internal/api/order/models"
)

// CustomerInfoArgs các trường thông tin khách gửi lên, trường rỗng nghĩa là không đổi
type CustomerInfoArgs struct {
	Name    string
	Phone   string
	Address string
	Email   string
	Note    string
}

// InfoResult kết quả cập nhật thông tin khách
type InfoResult struct {
	Session       ordermodels.OrderSession
	IsComplete    bool     // Đã đủ thông tin để xác nhận đơn chưa
	MissingFields []string // Các trường còn thiếu (nil khi đủ)
}

// UpdateCustomerInfo ghi đè từng trường không rỗng vào thông tin khách của phiên,
// tạo phiên mới nếu khách đưa thông tin trước khi chọn hàng.
// Giá trị rỗng hoặc toàn khoảng trắng không xóa dữ liệu đã thu thập.
func (e *OrderEngine) UpdateCustomerInfo(ctx context.Context, ref SessionRef, args CustomerInfoArgs) (InfoResult, error) {
	var zero InfoResult
	key := ref.key()
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	session, err := e.resolveLocked(ctx, ref, true)
	if err != nil {
		return zero, err
	}

	if v := strings.TrimSpace(args.Name); v != "" {
		session.Info.Name = v
	}
	if v := strings.TrimSpace(args.Phone); v != "" {
		session.Info.Phone = v
	}
	if v := strings.TrimSpace(args.Address); v != "" {
		session.Info.Address = v
	}
	if v := strings.TrimSpace(args.Email); v != "" {
		session.Info.Email = v
	}
	if v := strings.TrimSpace(args.Note); v != "" {
		session.Info.Note = v
	}

	session.Stage = ordermodels.DeriveStage(&session)

	updated, err := e.persist(ctx, ref, session, map[string]interface{}{
		"info":  session.Info,
		"stage": session.Stage,
	})
	if err != nil {
		return zero, err
	}

	missing := updated.MissingInfoFields()
	e.emit(ctx, ref, events.OrderOpUpdateInfo, updated.ID)
	e.log.WithFields(logrus.Fields{
		"orderId": updated.ID.Hex(),
		"stage":   updated.Stage,
		"missing": missing,
	}).Info("🛒 [ORDER] Cập nhật thông tin khách hàng")

	return InfoResult{
		Session:       updated,
		IsComplete:    len(missing) == 0,
		MissingFields: missing,
	}, nil
}
