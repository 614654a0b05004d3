package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "chat_commerce/internal/api/base/service"
	catalogmodels "chat_commerce/internal/api/catalog/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
)

// CatalogProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm trong danh mục
type CatalogProductService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.CatalogProduct]
}

// NewCatalogProductService tạo mới CatalogProductService
func NewCatalogProductService() (*CatalogProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CatalogProducts)
	if !exist {
		return nil, fmt.Errorf("failed to get catalog_products collection: %v", common.ErrNotFound)
	}

	return &CatalogProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.CatalogProduct](productCollection),
	}, nil
}

// FindByProductId tìm sản phẩm theo mã chuẩn hóa trong phạm vi một business
func (s *CatalogProductService) FindByProductId(ctx context.Context, businessID primitive.ObjectID, productId string) (catalogmodels.CatalogProduct, error) {
	filter := bson.M{"businessId": businessID, "productId": productId}
	return s.FindOne(ctx, filter, nil)
}
