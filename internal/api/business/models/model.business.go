package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelIdentity định danh của một business trên một kênh nhắn tin.
// ExternalId là id tài khoản trên nền tảng (số WhatsApp, page id Messenger, id Instagram).
type ChannelIdentity struct {
	Channel    string `json:"channel" bson:"channel"`       // Kênh: whatsapp | instagram | messenger
	ExternalId string `json:"externalId" bson:"externalId"` // Id tài khoản trên nền tảng
}

// PlanLimits hạn mức của gói dịch vụ mà business đang dùng
type PlanLimits struct {
	MonthlyMessages int64 `json:"monthlyMessages" bson:"monthlyMessages"` // Số tin nhắn xử lý tối đa mỗi tháng (0 = không giới hạn)
	MonthlyOrders   int64 `json:"monthlyOrders" bson:"monthlyOrders"`     // Số đơn xác nhận tối đa mỗi tháng (0 = không giới hạn)
}

// Business lưu thông tin một doanh nghiệp (tenant) sử dụng hệ thống
type Business struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của business trong MongoDB
	Name     string             `json:"name" bson:"name"`                  // Tên doanh nghiệp
	Active   bool               `json:"active" bson:"active"`              // Doanh nghiệp còn hoạt động hay không
	Plan     string             `json:"plan" bson:"plan"`                  // Tên gói dịch vụ (free, starter, pro...)
	Limits   PlanLimits         `json:"limits" bson:"limits"`              // Hạn mức của gói
	Channels []ChannelIdentity  `json:"channels" bson:"channels"`          // Các kênh đã kết nối
	Currency string             `json:"currency" bson:"currency"`          // Đơn vị tiền tệ mặc định

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
