package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "chat_commerce/internal/api/base/service"
	catalogmodels "chat_commerce/internal/api/catalog/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
	"chat_commerce/internal/utility"
)

// CatalogVariantService là cấu trúc chứa các phương thức liên quan đến biến thể sản phẩm
type CatalogVariantService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.CatalogVariant]
	productService *CatalogProductService
}

// NewCatalogVariantService tạo mới CatalogVariantService
func NewCatalogVariantService() (*CatalogVariantService, error) {
	variantCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CatalogVariants)
	if !exist {
		return nil, fmt.Errorf("failed to get catalog_variants collection: %v", common.ErrNotFound)
	}

	productService, err := NewCatalogProductService()
	if err != nil {
		return nil, err
	}

	return &CatalogVariantService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.CatalogVariant](variantCollection),
		productService:       productService,
	}, nil
}

// ResolveVariant tra cứu và validate một biến thể trước khi thêm vào đơn hàng.
// Id sản phẩm và biến thể nhận vào đã được chuẩn hóa về string.
//
// Thứ tự kiểm tra: tồn tại → còn hàng → giá hợp lệ. Giá hiệu lực ưu tiên
// giá khuyến mãi khi có, ngược lại dùng giá gốc.
func (s *CatalogVariantService) ResolveVariant(ctx context.Context, businessID primitive.ObjectID, productId string, variantId string) (catalogmodels.ResolvedVariant, error) {
	var zero catalogmodels.ResolvedVariant

	filter := bson.M{
		"businessId": businessID,
		"productId":  productId,
		"variantId":  variantId,
	}
	variant, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrVariantNotFound
		}
		return zero, err
	}

	if !variant.InStock {
		return zero, common.ErrOutOfStock
	}

	price := variant.Price
	if utility.IsFinitePositive(variant.SalePrice) {
		price = variant.SalePrice
	}
	if !utility.IsFinitePositive(price) {
		return zero, common.ErrInvalidPrice
	}

	displayName := variant.Title
	if product, perr := s.productService.FindByProductId(ctx, businessID, productId); perr == nil {
		if strings.TrimSpace(variant.Title) != "" {
			displayName = product.Name + " - " + variant.Title
		} else {
			displayName = product.Name
		}
	}

	return catalogmodels.ResolvedVariant{
		ProductId:   variant.ProductId,
		VariantId:   variant.VariantId,
		DisplayName: displayName,
		Sku:         variant.Sku,
		Price:       price,
		Currency:    variant.Currency,
		Image:       variant.Image,
		Options:     variant.Options,
	}, nil
}
