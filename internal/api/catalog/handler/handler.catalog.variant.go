package cataloghdl

import (
	"fmt"

	basehdl "chat_commerce/internal/api/base/handler"
	catalogdto "chat_commerce/internal/api/catalog/dto"
	catalogmodels "chat_commerce/internal/api/catalog/models"
	catalogsvc "chat_commerce/internal/api/catalog/service"
)

// CatalogVariantHandler xử lý các yêu cầu liên quan đến biến thể sản phẩm
type CatalogVariantHandler struct {
	*basehdl.BaseHandler[catalogmodels.CatalogVariant, catalogdto.CatalogVariantCreateInput, catalogdto.CatalogVariantUpdateInput]
	CatalogVariantService *catalogsvc.CatalogVariantService
}

// NewCatalogVariantHandler khởi tạo CatalogVariantHandler mới
func NewCatalogVariantHandler() (*CatalogVariantHandler, error) {
	service, err := catalogsvc.NewCatalogVariantService()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog variant service: %v", err)
	}
	hdl := &CatalogVariantHandler{CatalogVariantService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.CatalogVariant, catalogdto.CatalogVariantCreateInput, catalogdto.CatalogVariantUpdateInput](service.BaseServiceMongoImpl)
	return hdl, nil
}
