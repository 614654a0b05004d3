package businesssvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "chat_commerce/internal/api/base/service"
	businessmodels "chat_commerce/internal/api/business/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
)

// BusinessService là cấu trúc chứa các phương thức liên quan đến doanh nghiệp (tenant)
type BusinessService struct {
	*basesvc.BaseServiceMongoImpl[businessmodels.Business]
}

// NewBusinessService tạo mới BusinessService
func NewBusinessService() (*BusinessService, error) {
	businessCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Businesses)
	if !exist {
		return nil, fmt.Errorf("failed to get businesses collection: %v", common.ErrNotFound)
	}

	return &BusinessService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[businessmodels.Business](businessCollection),
	}, nil
}

// ResolveByChannel tìm business theo định danh kênh của webhook đến.
// Business không tồn tại hoặc đã ngưng hoạt động đều trả về ErrBusinessInactive,
// webhook không phân biệt hai trường hợp này với bên gọi.
func (s *BusinessService) ResolveByChannel(ctx context.Context, channel string, externalId string) (businessmodels.Business, error) {
	var zero businessmodels.Business

	filter := bson.M{
		"channels": bson.M{
			"$elemMatch": bson.M{
				"channel":    strings.ToLower(strings.TrimSpace(channel)),
				"externalId": externalId,
			},
		},
	}

	business, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrBusinessInactive
		}
		return zero, err
	}

	if !business.Active {
		return zero, common.ErrBusinessInactive
	}

	return business, nil
}
