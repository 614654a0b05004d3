// Package router đăng ký các route thuộc domain Catalog: Product, Variant.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "chat_commerce/internal/api/catalog/handler"
	apirouter "chat_commerce/internal/api/router"
)

// Register đăng ký tất cả route Catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewCatalogProductHandler()
	if err != nil {
		return fmt.Errorf("create catalog product handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/catalog/product", productHandler, apirouter.ReadWriteConfig)

	variantHandler, err := cataloghdl.NewCatalogVariantHandler()
	if err != nil {
		return fmt.Errorf("create catalog variant handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/catalog/variant", variantHandler, apirouter.ReadWriteConfig)

	return nil
}
