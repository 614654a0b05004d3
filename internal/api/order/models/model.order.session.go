package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái vòng đời của một phiên đặt hàng
const (
	StatusActive    = "active"    // Phiên đang mở, nhận mọi thao tác
	StatusCompleted = "completed" // Đã xác nhận, bất biến
	StatusCancelled = "cancelled" // Đã hủy, bất biến
)

// Giai đoạn hội thoại của phiên đặt hàng, suy diễn từ nội dung phiên
const (
	StageCollectingItems = "collecting_items" // Chưa có sản phẩm nào
	StageCollectingInfo  = "collecting_info"  // Có sản phẩm, thiếu thông tin khách
	StageReviewing       = "reviewing"        // Đủ sản phẩm và thông tin, chờ xác nhận
	StageCompleted       = "completed"        // Phiên đã xác nhận
	StageCancelled       = "cancelled"        // Phiên đã hủy
)

// OrderItem là một dòng hàng trong phiên đặt hàng.
// ProductId và VariantId đã được chuẩn hóa về string, cặp này là khóa gộp dòng.
type OrderItem struct {
	ProductId string            `json:"productId" bson:"productId"` // Mã sản phẩm chuẩn hóa
	VariantId string            `json:"variantId" bson:"variantId"` // Mã biến thể chuẩn hóa (rỗng nếu không có)
	Name      string            `json:"name" bson:"name"`           // Tên hiển thị tại thời điểm thêm
	Sku       string            `json:"sku" bson:"sku"`             // Mã SKU
	Price     float64           `json:"price" bson:"price"`         // Đơn giá hiện hành (refresh khi gộp dòng)
	Currency  string            `json:"currency" bson:"currency"`   // Đơn vị tiền tệ
	Quantity  int64             `json:"quantity" bson:"quantity"`   // Số lượng cộng dồn
	LineTotal float64           `json:"lineTotal" bson:"lineTotal"` // Price * Quantity
	Image     string            `json:"image" bson:"image"`         // Hình ảnh sản phẩm
	Options   map[string]string `json:"options" bson:"options"`     // Thuộc tính biến thể chụp từ danh mục (màu, size...)
}

// CustomerInfo thông tin giao hàng thu thập dần trong hội thoại.
// Email là trường tùy chọn, không tham gia điều kiện xác nhận đơn.
type CustomerInfo struct {
	Name    string `json:"name" bson:"name"`       // Tên khách hàng
	Phone   string `json:"phone" bson:"phone"`     // Số điện thoại
	Address string `json:"address" bson:"address"` // Địa chỉ giao hàng
	Email   string `json:"email" bson:"email"`     // Email liên hệ (tùy chọn)
	Note    string `json:"note" bson:"note"`       // Ghi chú thêm
}

// OrderTotals các khoản tiền của phiên đặt hàng.
// Total = Subtotal + Tax + Shipping - Discount, tính lại sau mỗi thay đổi dòng hàng.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal" bson:"subtotal"` // Tổng các LineTotal
	Tax      float64 `json:"tax" bson:"tax"`           // Thuế
	Shipping float64 `json:"shipping" bson:"shipping"` // Phí vận chuyển
	Discount float64 `json:"discount" bson:"discount"` // Giảm giá
	Total    float64 `json:"total" bson:"total"`       // Tổng thanh toán
}

// OrderSession là phiên đặt hàng đang diễn ra của một khách trên một kênh.
// Mỗi bộ (customerId, businessId, channel) có tối đa một phiên active.
// Version tăng mỗi lần ghi, dùng làm chốt chặn ghi đè đồng thời.
type OrderSession struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của phiên trong MongoDB
	BusinessID primitive.ObjectID `json:"businessId" bson:"businessId"`      // Business sở hữu phiên
	CustomerID string             `json:"customerId" bson:"customerId"`      // Định danh khách chuẩn hóa trên kênh
	Channel    string             `json:"channel" bson:"channel"`            // Kênh: whatsapp | instagram | messenger

	Status string       `json:"status" bson:"status"` // active | completed | cancelled
	Stage  string       `json:"stage" bson:"stage"`   // Giai đoạn hội thoại, suy diễn từ nội dung
	Items  []OrderItem  `json:"items" bson:"items"`   // Các dòng hàng
	Info   CustomerInfo `json:"info" bson:"info"`     // Thông tin khách đã thu thập
	Totals OrderTotals  `json:"totals" bson:"totals"` // Các khoản tiền

	Version     int64 `json:"version" bson:"version"`         // Chốt chặn ghi đồng thời
	ConfirmedAt int64 `json:"confirmedAt" bson:"confirmedAt"` // Thời điểm xác nhận (UnixMilli, 0 nếu chưa)
	CancelledAt int64 `json:"cancelledAt" bson:"cancelledAt"` // Thời điểm hủy (UnixMilli, 0 nếu chưa)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật (mốc tính idle)
}

// IsTerminal cho biết phiên đã kết thúc hay chưa
func (s *OrderSession) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}

// Clone trả về bản sao độc lập của phiên: slice Items và map Options
// được copy sâu nên sửa bản sao không lan sang bản gốc (ví dụ bản đang nằm trong cache).
func (s *OrderSession) Clone() OrderSession {
	cloned := *s
	if s.Items != nil {
		cloned.Items = make([]OrderItem, len(s.Items))
		copy(cloned.Items, s.Items)
		for i := range cloned.Items {
			if s.Items[i].Options == nil {
				continue
			}
			opts := make(map[string]string, len(s.Items[i].Options))
			for k, v := range s.Items[i].Options {
				opts[k] = v
			}
			cloned.Items[i].Options = opts
		}
	}
	return cloned
}

// MissingInfoFields liệt kê các trường thông tin khách còn thiếu để xác nhận đơn.
// Trả về nil khi đã đủ (tên, số điện thoại, địa chỉ).
func (s *OrderSession) MissingInfoFields() []string {
	var missing []string
	if isBlank(s.Info.Name) {
		missing = append(missing, "name")
	}
	if isBlank(s.Info.Phone) {
		missing = append(missing, "phone")
	}
	if isBlank(s.Info.Address) {
		missing = append(missing, "address")
	}
	return missing
}

// DeriveStage suy diễn giai đoạn hội thoại từ nội dung phiên.
// Trạng thái kết thúc luôn thắng; phiên active đi theo thứ tự
// collecting_items → collecting_info → reviewing.
func DeriveStage(s *OrderSession) string {
	switch s.Status {
	case StatusCompleted:
		return StageCompleted
	case StatusCancelled:
		return StageCancelled
	}

	if len(s.Items) == 0 {
		return StageCollectingItems
	}
	if len(s.MissingInfoFields()) > 0 {
		return StageCollectingInfo
	}
	return StageReviewing
}

// RecomputeTotals tính lại LineTotal từng dòng và các khoản tổng của phiên
func RecomputeTotals(s *OrderSession) {
	var subtotal float64
	for i := range s.Items {
		s.Items[i].LineTotal = s.Items[i].Price * float64(s.Items[i].Quantity)
		subtotal += s.Items[i].LineTotal
	}
	s.Totals.Subtotal = subtotal
	s.Totals.Total = s.Totals.Subtotal + s.Totals.Tax + s.Totals.Shipping - s.Totals.Discount
}

func isBlank(v string) bool {
	for _, r := range v {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
