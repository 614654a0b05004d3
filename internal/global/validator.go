package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate là instance validator dùng chung cho toàn bộ ứng dụng
var Validate *validator.Validate

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("channel", validateChannel)
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateChannel kiểm tra kênh chat được hỗ trợ (whatsapp, instagram, messenger).
// Không phân biệt hoa thường — handler chuẩn hóa về lowercase sau khi validate.
func validateChannel(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "whatsapp", "instagram", "messenger":
		return true
	}
	return false
}

// validateNoXSS kiểm tra XSS cho các field text khách nhập (tên, địa chỉ, ghi chú)
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"eval(",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
