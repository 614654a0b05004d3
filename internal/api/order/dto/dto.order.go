package orderdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionRefInput định danh phiên trong mọi request thao tác đơn hàng
type SessionRefInput struct {
	BusinessID primitive.ObjectID `json:"businessId" validate:"required"`
	CustomerID string             `json:"customerId" validate:"required"`
	Channel    string             `json:"channel" validate:"required,channel"`
}

// ResolveInput request resolve phiên của khách
type ResolveInput struct {
	SessionRefInput
	CreateIfMissing *bool `json:"createIfMissing"` // Mặc định true
}

// AddItemInput request thêm sản phẩm vào phiên.
// ProductId/VariantId nhận mọi kiểu JSON (string, số) — id được chuẩn hóa phía server.
type AddItemInput struct {
	SessionRefInput
	ProductId interface{} `json:"productId" validate:"required"`
	VariantId interface{} `json:"variantId"`
	Quantity  int64       `json:"quantity" validate:"gte=0"`
}

// RemoveItemInput request gỡ sản phẩm khỏi phiên
type RemoveItemInput struct {
	SessionRefInput
	ProductId interface{} `json:"productId" validate:"required"`
	VariantId interface{} `json:"variantId"`
}

// CustomerInfoInput request cập nhật thông tin khách của phiên
type CustomerInfoInput struct {
	SessionRefInput
	Name    string `json:"name" validate:"omitempty,no_xss"`
	Phone   string `json:"phone"`
	Address string `json:"address" validate:"omitempty,no_xss"`
	Email   string `json:"email" validate:"omitempty,email"`
	Note    string `json:"note" validate:"omitempty,no_xss"`
}

// SessionActionInput request xác nhận / hủy / tóm tắt phiên
type SessionActionInput struct {
	SessionRefInput
}
