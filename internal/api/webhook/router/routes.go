// Package router đăng ký các route thuộc domain Webhook.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "chat_commerce/internal/api/router"
	webhookhdl "chat_commerce/internal/api/webhook/handler"
)

// Register đăng ký tất cả route Webhook lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	webhookHandler, err := webhookhdl.NewWebhookHandler()
	if err != nil {
		return fmt.Errorf("create webhook handler: %w", err)
	}

	// Điểm nhận sự kiện từ tầng kênh
	apirouter.RegisterRouteWithMiddleware(v1, "/webhook", "POST", "/:channel", nil, webhookHandler.Receive)

	// Tra cứu log webhook cho vận hành (read-only)
	r.RegisterCRUDRoutes(v1, "/webhook/log", webhookHandler, apirouter.ReadOnlyConfig)

	return nil
}
