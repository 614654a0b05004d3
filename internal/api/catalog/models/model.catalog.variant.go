package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogVariant lưu thông tin biến thể sản phẩm trong danh mục của một business.
// Một sản phẩm không có biến thể vẫn được lưu một bản ghi variant với VariantId rỗng chuẩn hóa.
type CatalogVariant struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của variant trong MongoDB
	BusinessID primitive.ObjectID `json:"businessId" bson:"businessId"`      // Business sở hữu biến thể
	ProductId  string             `json:"productId" bson:"productId"`        // Mã sản phẩm chuẩn hóa (string)
	VariantId  string             `json:"variantId" bson:"variantId"`        // Mã biến thể chuẩn hóa (string)
	Sku        string             `json:"sku" bson:"sku"`                    // Mã SKU
	Title      string             `json:"title" bson:"title"`                // Tên biến thể (ví dụ: "Đỏ / XL")
	Price      float64            `json:"price" bson:"price"`                // Giá gốc
	SalePrice  float64            `json:"salePrice" bson:"salePrice"`        // Giá khuyến mãi (0 nếu không có)
	Currency   string             `json:"currency" bson:"currency"`          // Đơn vị tiền tệ
	InStock    bool               `json:"inStock" bson:"inStock"`            // Còn hàng hay không
	Image      string             `json:"image" bson:"image"`                // Hình ảnh biến thể
	Options    map[string]string  `json:"options" bson:"options"`            // Thuộc tính biến thể (màu, size...)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// ResolvedVariant là kết quả tra cứu một biến thể hợp lệ từ danh mục,
// dùng làm nguồn giá và tên hiển thị khi thêm hàng vào đơn.
type ResolvedVariant struct {
	ProductId   string            // Mã sản phẩm chuẩn hóa
	VariantId   string            // Mã biến thể chuẩn hóa
	DisplayName string            // Tên hiển thị (tên sản phẩm + tên biến thể)
	Sku         string            // Mã SKU
	Price       float64           // Giá hiệu lực (ưu tiên giá khuyến mãi nếu có)
	Currency    string            // Đơn vị tiền tệ
	Image       string            // Hình ảnh
	Options     map[string]string // Thuộc tính biến thể (màu, size...)
}
