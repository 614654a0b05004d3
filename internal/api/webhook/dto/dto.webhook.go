package webhookdto

// WebhookEventInput là một sự kiện hội thoại đã được tầng kênh (WhatsApp/Instagram/Messenger)
// chuẩn hóa thành intent có cấu trúc trước khi gửi vào backend.
type WebhookEventInput struct {
	AccountId string `json:"accountId" validate:"required"` // Định danh tài khoản business trên kênh (số WA, page id...)
	SenderId  string `json:"senderId" validate:"required"`  // Định danh khách trên kênh

	// EventType: add_item | remove_item | customer_info | confirm | cancel | summary
	EventType string `json:"eventType" validate:"required,oneof=add_item remove_item customer_info confirm cancel summary"`

	// Payload của intent, tùy EventType
	ProductId interface{} `json:"productId"` // add_item, remove_item
	VariantId interface{} `json:"variantId"` // add_item, remove_item
	Quantity  int64       `json:"quantity" validate:"gte=0"`
	Name      string      `json:"name"`    // customer_info
	Phone     string      `json:"phone"`   // customer_info
	Address   string      `json:"address"` // customer_info
	Email     string      `json:"email"`   // customer_info (tùy chọn)
	Note      string      `json:"note"`    // customer_info
}

// WebhookReply là phản hồi trả về cho tầng kênh để gửi lại khách
type WebhookReply struct {
	Reply   string      `json:"reply"`             // Nội dung text gửi khách
	Session interface{} `json:"session,omitempty"` // Trạng thái phiên sau thao tác
}
