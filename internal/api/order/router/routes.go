// Package router đăng ký các route thuộc domain Order: thao tác phiên đặt hàng và tra cứu.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	orderhdl "chat_commerce/internal/api/order/handler"
	apirouter "chat_commerce/internal/api/router"
)

// Register đăng ký tất cả route Order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("create order handler: %w", err)
	}

	// Tra cứu phiên cho vận hành (read-only)
	r.RegisterCRUDRoutes(v1, "/order/session", orderHandler, apirouter.ReadOnlyConfig)

	// Thao tác nghiệp vụ trên phiên đặt hàng
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/resolve", nil, orderHandler.Resolve)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/add-item", nil, orderHandler.AddItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/remove-item", nil, orderHandler.RemoveItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/customer-info", nil, orderHandler.UpdateCustomerInfo)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/confirm", nil, orderHandler.Confirm)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/cancel", nil, orderHandler.Cancel)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/summary", nil, orderHandler.Summary)

	return nil
}
