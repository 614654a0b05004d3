// Package router đăng ký các route thuộc domain Business.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	businesshdl "chat_commerce/internal/api/business/handler"
	apirouter "chat_commerce/internal/api/router"
)

// Register đăng ký tất cả route Business lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	businessHandler, err := businesshdl.NewBusinessHandler()
	if err != nil {
		return fmt.Errorf("create business handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/business", businessHandler, apirouter.ReadWriteConfig)

	return nil
}
