package businesshdl

import (
	"fmt"

	basehdl "chat_commerce/internal/api/base/handler"
	businessdto "chat_commerce/internal/api/business/dto"
	businessmodels "chat_commerce/internal/api/business/models"
	businesssvc "chat_commerce/internal/api/business/service"
)

// BusinessHandler xử lý các yêu cầu quản trị doanh nghiệp
type BusinessHandler struct {
	*basehdl.BaseHandler[businessmodels.Business, businessdto.BusinessCreateInput, businessdto.BusinessUpdateInput]
	BusinessService *businesssvc.BusinessService
}

// NewBusinessHandler khởi tạo BusinessHandler mới
func NewBusinessHandler() (*BusinessHandler, error) {
	service, err := businesssvc.NewBusinessService()
	if err != nil {
		return nil, fmt.Errorf("failed to create business service: %v", err)
	}
	hdl := &BusinessHandler{BusinessService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[businessmodels.Business, businessdto.BusinessCreateInput, businessdto.BusinessUpdateInput](service.BaseServiceMongoImpl)
	return hdl, nil
}
