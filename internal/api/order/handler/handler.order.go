package orderhdl

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "chat_commerce/internal/api/base/handler"
	orderdto "chat_commerce/internal/api/order/dto"
	ordermodels "chat_commerce/internal/api/order/models"
	ordersvc "chat_commerce/internal/api/order/service"
)

// OrderHandler xử lý các thao tác trên phiên đặt hàng qua HTTP.
// CRUD đọc (find, paginate...) đi qua BaseHandler; các thao tác nghiệp vụ đi qua engine.
type OrderHandler struct {
	*basehdl.BaseHandler[ordermodels.OrderSession, orderdto.SessionActionInput, orderdto.SessionActionInput]
	Engine *ordersvc.OrderEngine
}

// NewOrderHandler khởi tạo OrderHandler với engine dùng store MongoDB và catalog thật
func NewOrderHandler() (*OrderHandler, error) {
	store, err := ordersvc.NewOrderSessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order session service: %v", err)
	}
	engine, err := ordersvc.DefaultEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create order engine: %v", err)
	}

	hdl := &OrderHandler{
		Engine: engine,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[ordermodels.OrderSession, orderdto.SessionActionInput, orderdto.SessionActionInput](store.BaseServiceMongoImpl)
	return hdl, nil
}

// parseRef parse và validate phần định danh phiên của request
func (h *OrderHandler) parseRef(c fiber.Ctx, input interface{}) error {
	if err := h.ParseRequestBody(c, input); err != nil {
		return err
	}
	return h.ValidateInput(input)
}

func toSessionRef(in orderdto.SessionRefInput) ordersvc.SessionRef {
	return ordersvc.SessionRef{
		BusinessID: in.BusinessID,
		CustomerID: strings.TrimSpace(in.CustomerID),
		Channel:    strings.ToLower(strings.TrimSpace(in.Channel)),
	}
}

// Resolve trả về phiên active của khách, tạo mới khi createIfMissing (mặc định true)
func (h *OrderHandler) Resolve(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.ResolveInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		createIfMissing := true
		if input.CreateIfMissing != nil {
			createIfMissing = *input.CreateIfMissing
		}

		session, err := h.Engine.ResolveSession(c.Context(), toSessionRef(input.SessionRefInput), createIfMissing)
		basehdl.HandleResponse(c, session, err)
		return nil
	})
}

// AddItem thêm sản phẩm vào phiên của khách
func (h *OrderHandler) AddItem(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.AddItemInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.Engine.AddItem(c.Context(), toSessionRef(input.SessionRefInput), ordersvc.AddItemArgs{
			ProductRef: input.ProductId,
			VariantRef: input.VariantId,
			Quantity:   input.Quantity,
		})
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, fiber.Map{
			"session":   result.Session,
			"addedLine": result.Line,
		}, nil)
		return nil
	})
}

// RemoveItem gỡ sản phẩm khỏi phiên của khách
func (h *OrderHandler) RemoveItem(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.RemoveItemInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.Engine.RemoveItem(c.Context(), toSessionRef(input.SessionRefInput), input.ProductId, input.VariantId)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, fiber.Map{
			"session":     result.Session,
			"removedLine": result.Line,
		}, nil)
		return nil
	})
}

// UpdateCustomerInfo cập nhật thông tin khách của phiên
func (h *OrderHandler) UpdateCustomerInfo(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.CustomerInfoInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.Engine.UpdateCustomerInfo(c.Context(), toSessionRef(input.SessionRefInput), ordersvc.CustomerInfoArgs{
			Name:    input.Name,
			Phone:   input.Phone,
			Address: input.Address,
			Email:   input.Email,
			Note:    input.Note,
		})
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, fiber.Map{
			"session":       result.Session,
			"isComplete":    result.IsComplete,
			"missingFields": result.MissingFields,
		}, nil)
		return nil
	})
}

// Confirm chốt phiên active thành đơn hoàn tất
func (h *OrderHandler) Confirm(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.SessionActionInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		session, err := h.Engine.ConfirmOrder(c.Context(), toSessionRef(input.SessionRefInput))
		basehdl.HandleResponse(c, session, err)
		return nil
	})
}

// Cancel hủy phiên active của khách
func (h *OrderHandler) Cancel(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.SessionActionInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		session, err := h.Engine.CancelOrder(c.Context(), toSessionRef(input.SessionRefInput))
		basehdl.HandleResponse(c, session, err)
		return nil
	})
}

// Summary trả về bản tóm tắt text của phiên active (không tạo phiên)
func (h *OrderHandler) Summary(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.SessionActionInput
		if err := h.parseRef(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		session, err := h.Engine.ResolveSession(c.Context(), toSessionRef(input.SessionRefInput), false)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, fiber.Map{
			"session": session,
			"summary": ordersvc.RenderSummary(session),
		}, nil)
		return nil
	})
}
