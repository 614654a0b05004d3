package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookLog lưu vết một sự kiện webhook đã xử lý, phục vụ truy vết và đối soát usage
type WebhookLog struct {
	ID         primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"` // ID của log trong MongoDB
	BusinessID primitive.ObjectID     `json:"businessId" bson:"businessId"`      // Business nhận sự kiện (zero nếu không resolve được)
	Channel    string                 `json:"channel" bson:"channel"`            // Kênh nguồn sự kiện
	CustomerID string                 `json:"customerId" bson:"customerId"`      // Khách gửi sự kiện (đã chuẩn hóa)
	EventType  string                 `json:"eventType" bson:"eventType"`        // Loại sự kiện (add_item, confirm...)
	Payload    map[string]interface{} `json:"payload" bson:"payload"`            // Payload gốc của sự kiện
	Status     string                 `json:"status" bson:"status"`              // ok | rejected | error
	ErrorCode  string                 `json:"errorCode" bson:"errorCode"`        // Mã lỗi nếu có
	Reply      string                 `json:"reply" bson:"reply"`                // Nội dung trả lời khách

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// Trạng thái xử lý webhook
const (
	WebhookStatusOK       = "ok"       // Xử lý thành công, có reply cho khách
	WebhookStatusRejected = "rejected" // Bị chặn bởi policy (business inactive, vượt hạn mức)
	WebhookStatusError    = "error"    // Lỗi hệ thống khi xử lý
)
