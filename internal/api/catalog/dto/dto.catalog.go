package catalogdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogProductCreateInput dữ liệu đầu vào khi tạo hoặc cập nhật sản phẩm trong danh mục
type CatalogProductCreateInput struct {
	BusinessID  primitive.ObjectID `json:"businessId" bson:"businessId" validate:"required"`
	ProductId   string   `json:"productId" bson:"productId" validate:"required"`
	Name        string   `json:"name" bson:"name" validate:"required"`
	Description string   `json:"description" bson:"description"`
	Images      []string `json:"images" bson:"images"`
	Active      bool     `json:"active" bson:"active"`
}

// CatalogProductUpdateInput dữ liệu đầu vào khi cập nhật sản phẩm (partial update)
type CatalogProductUpdateInput struct {
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Images      []string `json:"images" bson:"images"`
	Active      bool     `json:"active" bson:"active"`
}

// CatalogVariantCreateInput dữ liệu đầu vào khi tạo hoặc cập nhật biến thể trong danh mục
type CatalogVariantCreateInput struct {
	BusinessID primitive.ObjectID `json:"businessId" bson:"businessId" validate:"required"`
	ProductId  string            `json:"productId" bson:"productId" validate:"required"`
	VariantId  string            `json:"variantId" bson:"variantId"`
	Sku        string            `json:"sku" bson:"sku"`
	Title      string            `json:"title" bson:"title"`
	Price      float64           `json:"price" bson:"price" validate:"gte=0"`
	SalePrice  float64           `json:"salePrice" bson:"salePrice" validate:"gte=0"`
	Currency   string            `json:"currency" bson:"currency"`
	InStock    bool              `json:"inStock" bson:"inStock"`
	Image      string            `json:"image" bson:"image"`
	Options    map[string]string `json:"options" bson:"options"`
}

// CatalogVariantUpdateInput dữ liệu đầu vào khi cập nhật biến thể (partial update)
type CatalogVariantUpdateInput struct {
	Sku       string            `json:"sku" bson:"sku"`
	Title     string            `json:"title" bson:"title"`
	Price     float64           `json:"price" bson:"price" validate:"gte=0"`
	SalePrice float64           `json:"salePrice" bson:"salePrice" validate:"gte=0"`
	Currency  string            `json:"currency" bson:"currency"`
	InStock   bool              `json:"inStock" bson:"inStock"`
	Image     string            `json:"image" bson:"image"`
	Options   map[string]string `json:"options" bson:"options"`
}
