package ordersvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "chat_commerce/internal/api/base/service"
	ordermodels "chat_commerce/internal/api/order/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
)

// SessionStore trừu tượng hóa kho lưu phiên đặt hàng để engine test được với store giả lập
type SessionStore interface {
	// FindActive tìm phiên active mới nhất của một khách trên một kênh,
	// bỏ qua phiên đã idle quá mốc idleCutoff (UnixMilli, 0 = không lọc idle).
	FindActive(ctx context.Context, businessID primitive.ObjectID, customerID string, channel string, idleCutoff int64) (ordermodels.OrderSession, error)

	// Insert tạo phiên mới và trả về document đã ghi
	Insert(ctx context.Context, session ordermodels.OrderSession) (ordermodels.OrderSession, error)

	// FindById đọc lại một phiên theo id
	FindById(ctx context.Context, id primitive.ObjectID) (ordermodels.OrderSession, error)

	// UpdateVersioned ghi các field trong set khi version hiện tại khớp expectedVersion,
	// đồng thời tăng version. Version đã đổi trả về ErrOrderConflict; riêng khi
	// document hiện tại đã kết thúc (một instance khác vừa chốt/hủy) trả về ErrOrderTerminal.
	UpdateVersioned(ctx context.Context, id primitive.ObjectID, expectedVersion int64, set map[string]interface{}) (ordermodels.OrderSession, error)

	// Touch ghi updatedAt = at (UnixMilli) để giữ phiên không idle
	Touch(ctx context.Context, id primitive.ObjectID, at int64) error
}

// OrderSessionService là store MongoDB cho phiên đặt hàng
type OrderSessionService struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.OrderSession]
}

// NewOrderSessionService tạo mới OrderSessionService
func NewOrderSessionService() (*OrderSessionService, error) {
	sessionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrderSessions)
	if !exist {
		return nil, fmt.Errorf("failed to get order_sessions collection: %v", common.ErrNotFound)
	}

	return &OrderSessionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.OrderSession](sessionCollection),
	}, nil
}

// FindActive tìm phiên active mới nhất của một khách trên một kênh.
// Sắp xếp updatedAt giảm dần rồi createdAt giảm dần để phiên được chạm gần nhất thắng.
func (s *OrderSessionService) FindActive(ctx context.Context, businessID primitive.ObjectID, customerID string, channel string, idleCutoff int64) (ordermodels.OrderSession, error) {
	filter := bson.M{
		"businessId": businessID,
		"customerId": customerID,
		"channel":    channel,
		"status":     ordermodels.StatusActive,
	}
	if idleCutoff > 0 {
		filter["updatedAt"] = bson.M{"$gte": idleCutoff}
	}

	opts := options.FindOne().SetSort(bson.D{
		{Key: "updatedAt", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	return s.FindOne(ctx, filter, opts)
}

// Insert tạo phiên mới và trả về document đã ghi (store là source of truth)
func (s *OrderSessionService) Insert(ctx context.Context, session ordermodels.OrderSession) (ordermodels.OrderSession, error) {
	return s.InsertOne(ctx, session)
}

// FindById đọc lại một phiên theo id
func (s *OrderSessionService) FindById(ctx context.Context, id primitive.ObjectID) (ordermodels.OrderSession, error) {
	return s.FindOneById(ctx, id)
}

// UpdateVersioned ghi có điều kiện theo version: filter khớp cả _id lẫn version
// nên hai thao tác đồng thời trên cùng phiên chỉ có một bên ghi thành công.
func (s *OrderSessionService) UpdateVersioned(ctx context.Context, id primitive.ObjectID, expectedVersion int64, set map[string]interface{}) (ordermodels.OrderSession, error) {
	var zero ordermodels.OrderSession

	filter := bson.M{"_id": id, "version": expectedVersion}
	update := &basesvc.UpdateData{
		Set: set,
		Inc: map[string]interface{}{"version": 1},
	}

	updated, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Không khớp: phân biệt phiên biến mất, phiên đã kết thúc và version đã đổi.
	// Phiên đã kết thúc là bất biến — mutation trên nó là lỗi trạng thái, không phải conflict.
	current, ferr := s.FindOneById(ctx, id)
	if ferr != nil {
		return zero, ferr
	}
	if current.IsTerminal() {
		return zero, common.ErrOrderTerminal
	}
	return zero, common.ErrOrderConflict
}

// Touch ghi updatedAt để giữ phiên không idle, không đổi version.
// Mốc thời gian do engine cấp để mọi timestamp của phiên đi cùng một đồng hồ.
func (s *OrderSessionService) Touch(ctx context.Context, id primitive.ObjectID, at int64) error {
	_, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"updatedAt": at}},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
