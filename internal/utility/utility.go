package utility

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizeID chuẩn hóa identifier về dạng chuỗi canonical trước khi so sánh
// hoặc dùng làm map key. Identifier đến từ nhiều nguồn với kiểu khác nhau:
// ObjectID của MongoDB, id số của Shopify, hoặc chuỗi tự do — tuyệt đối không
// so sánh trực tiếp các kiểu này với nhau.
func NormalizeID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case primitive.ObjectID:
		return v.Hex()
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// JSON number decode về float64; id số không có phần thập phân
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		// Decoder dùng UseNumber() giữ số dưới dạng json.Number
		if i, err := v.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := v.Float64(); err == nil {
			return NormalizeID(f)
		}
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// SessionKey ghép key định danh phiên từ customerId, businessId và channel.
// Cả ba phần đều được chuẩn hóa trước khi ghép.
func SessionKey(customerID, businessID, channel interface{}) string {
	return NormalizeID(customerID) + "|" + NormalizeID(businessID) + "|" + strings.ToLower(NormalizeID(channel))
}

// IsFinitePositive kiểm tra giá trị tiền tệ hợp lệ (dương và hữu hạn)
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
