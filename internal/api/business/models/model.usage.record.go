package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsageRecord cộng dồn mức sử dụng của một business theo kỳ (tháng, định dạng "2026-08").
// Mỗi cặp (businessId, period) là một document duy nhất, tăng bằng $inc.
type UsageRecord struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của record trong MongoDB
	BusinessID primitive.ObjectID `json:"businessId" bson:"businessId"`      // Business được tính usage
	Period     string             `json:"period" bson:"period"`              // Kỳ tính usage (YYYY-MM)
	Messages   int64              `json:"messages" bson:"messages"`          // Số tin nhắn đã xử lý trong kỳ
	Orders     int64              `json:"orders" bson:"orders"`              // Số đơn đã xác nhận trong kỳ

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
