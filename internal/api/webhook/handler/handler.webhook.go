package webhookhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "chat_commerce/internal/api/base/handler"
	webhookdto "chat_commerce/internal/api/webhook/dto"
	webhookmodels "chat_commerce/internal/api/webhook/models"
	webhooksvc "chat_commerce/internal/api/webhook/service"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
)

// WebhookHandler nhận sự kiện hội thoại từ các kênh nhắn tin
type WebhookHandler struct {
	*basehdl.BaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookEventInput, webhookdto.WebhookEventInput]
	WebhookService *webhooksvc.WebhookService
}

// NewWebhookHandler khởi tạo WebhookHandler mới
func NewWebhookHandler() (*WebhookHandler, error) {
	service, err := webhooksvc.NewWebhookService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook service: %v", err)
	}
	hdl := &WebhookHandler{WebhookService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookEventInput, webhookdto.WebhookEventInput](service.BaseServiceMongoImpl)
	return hdl, nil
}

// Receive xử lý một sự kiện webhook từ kênh :channel
func (h *WebhookHandler) Receive(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		channel := c.Params("channel")
		if err := global.Validate.Var(channel, "required,channel"); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Kênh '%s' không được hỗ trợ", channel),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var input webhookdto.WebhookEventInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		reply, err := h.WebhookService.Process(c.Context(), channel, input)
		basehdl.HandleResponse(c, reply, err)
		return nil
	})
}
