package cataloghdl

import (
	"fmt"

	basehdl "chat_commerce/internal/api/base/handler"
	catalogdto "chat_commerce/internal/api/catalog/dto"
	catalogmodels "chat_commerce/internal/api/catalog/models"
	catalogsvc "chat_commerce/internal/api/catalog/service"
)

// CatalogProductHandler xử lý các yêu cầu liên quan đến sản phẩm trong danh mục
type CatalogProductHandler struct {
	*basehdl.BaseHandler[catalogmodels.CatalogProduct, catalogdto.CatalogProductCreateInput, catalogdto.CatalogProductUpdateInput]
	CatalogProductService *catalogsvc.CatalogProductService
}

// NewCatalogProductHandler khởi tạo CatalogProductHandler mới
func NewCatalogProductHandler() (*CatalogProductHandler, error) {
	service, err := catalogsvc.NewCatalogProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog product service: %v", err)
	}
	hdl := &CatalogProductHandler{CatalogProductService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.CatalogProduct, catalogdto.CatalogProductCreateInput, catalogdto.CatalogProductUpdateInput](service.BaseServiceMongoImpl)
	return hdl, nil
}
