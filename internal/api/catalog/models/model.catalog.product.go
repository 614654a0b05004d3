package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogProduct lưu thông tin sản phẩm trong danh mục của một business.
// ProductId là mã chuẩn hóa dạng string (id gốc có thể là số hoặc UUID tùy nền tảng nguồn).
type CatalogProduct struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của product trong MongoDB
	BusinessID  primitive.ObjectID `json:"businessId" bson:"businessId"`      // Business sở hữu sản phẩm
	ProductId   string             `json:"productId" bson:"productId"`        // Mã sản phẩm chuẩn hóa (string)
	Name        string             `json:"name" bson:"name"`                  // Tên sản phẩm
	Description string             `json:"description" bson:"description"`    // Mô tả sản phẩm
	Images      []string           `json:"images" bson:"images"`              // Danh sách hình ảnh
	Active      bool               `json:"active" bson:"active"`              // Sản phẩm còn được bán hay không

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
