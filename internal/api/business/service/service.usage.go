package businesssvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "chat_commerce/internal/api/base/service"
	businessmodels "chat_commerce/internal/api/business/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
)

// UsageService là cấu trúc chứa các phương thức cộng dồn và kiểm tra usage theo kỳ
type UsageService struct {
	*basesvc.BaseServiceMongoImpl[businessmodels.UsageRecord]
}

// NewUsageService tạo mới UsageService
func NewUsageService() (*UsageService, error) {
	usageCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UsageRecords)
	if !exist {
		return nil, fmt.Errorf("failed to get usage_records collection: %v", common.ErrNotFound)
	}

	return &UsageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[businessmodels.UsageRecord](usageCollection),
	}, nil
}

// CurrentPeriod trả về kỳ tính usage hiện tại theo định dạng YYYY-MM (UTC)
func CurrentPeriod(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// Increment cộng dồn usage cho một business trong một kỳ.
// Upsert theo (businessId, period), dùng $inc nên an toàn khi gọi đồng thời.
func (s *UsageService) Increment(ctx context.Context, businessID primitive.ObjectID, period string, messages int64, orders int64) error {
	if messages == 0 && orders == 0 {
		return nil
	}

	filter := bson.M{"businessId": businessID, "period": period}
	update := &basesvc.UpdateData{
		Inc: map[string]interface{}{
			"messages": messages,
			"orders":   orders,
		},
		SetOnInsert: map[string]interface{}{
			"businessId": businessID,
			"period":     period,
			"createdAt":  time.Now().UnixMilli(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.UpdateOne(ctx, filter, update, opts)
	return err
}

// CheckLimit kiểm tra business còn trong hạn mức gói hay không.
// Hạn mức 0 nghĩa là không giới hạn. Vượt hạn mức trả về ErrUsageExceeded.
func (s *UsageService) CheckLimit(ctx context.Context, business businessmodels.Business, period string) error {
	if business.Limits.MonthlyMessages == 0 && business.Limits.MonthlyOrders == 0 {
		return nil
	}

	filter := bson.M{"businessId": business.ID, "period": period}
	record, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil // Chưa có usage trong kỳ
		}
		return err
	}

	if business.Limits.MonthlyMessages > 0 && record.Messages >= business.Limits.MonthlyMessages {
		return common.ErrUsageExceeded
	}
	if business.Limits.MonthlyOrders > 0 && record.Orders >= business.Limits.MonthlyOrders {
		return common.ErrUsageExceeded
	}

	return nil
}
