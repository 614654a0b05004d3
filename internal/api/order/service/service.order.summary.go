package ordersvc

import (
	"fmt"
	"strings"

	ordermodels "chat_commerce/internal/api/order/models"
)

// RenderSummary dựng bản tóm tắt đơn hàng dạng text để gửi lại cho khách trong hội thoại.
// Hàm thuần, không chạm store hay cache.
func RenderSummary(session ordermodels.OrderSession) string {
	var b strings.Builder

	b.WriteString("🧾 Đơn hàng của bạn:\n")

	if len(session.Items) == 0 {
		b.WriteString("(Chưa có sản phẩm nào)\n")
	} else {
		for _, item := range session.Items {
			b.WriteString(fmt.Sprintf("• %s x%d — %s\n", item.Name, item.Quantity, formatMoney(item.LineTotal, item.Currency)))
		}
	}

	currency := sessionCurrency(session)
	if session.Totals.Tax > 0 {
		b.WriteString(fmt.Sprintf("Thuế: %s\n", formatMoney(session.Totals.Tax, currency)))
	}
	if session.Totals.Shipping > 0 {
		b.WriteString(fmt.Sprintf("Phí vận chuyển: %s\n", formatMoney(session.Totals.Shipping, currency)))
	}
	if session.Totals.Discount > 0 {
		b.WriteString(fmt.Sprintf("Giảm giá: -%s\n", formatMoney(session.Totals.Discount, currency)))
	}
	b.WriteString(fmt.Sprintf("Tổng cộng: %s\n", formatMoney(session.Totals.Total, currency)))

	if session.Info.Name != "" {
		b.WriteString(fmt.Sprintf("Người nhận: %s\n", session.Info.Name))
	}
	if session.Info.Phone != "" {
		b.WriteString(fmt.Sprintf("SĐT: %s\n", session.Info.Phone))
	}
	if session.Info.Address != "" {
		b.WriteString(fmt.Sprintf("Địa chỉ: %s\n", session.Info.Address))
	}

	switch session.Status {
	case ordermodels.StatusCompleted:
		b.WriteString("✅ Đơn hàng đã được xác nhận.")
	case ordermodels.StatusCancelled:
		b.WriteString("❌ Đơn hàng đã bị hủy.")
	default:
		switch session.Stage {
		case ordermodels.StageCollectingItems:
			b.WriteString("Bạn muốn đặt sản phẩm nào?")
		case ordermodels.StageCollectingInfo:
			b.WriteString(fmt.Sprintf("Vui lòng cho biết: %s.", strings.Join(missingLabels(session), ", ")))
		case ordermodels.StageReviewing:
			b.WriteString("Xác nhận đặt hàng chứ ạ?")
		}
	}

	return b.String()
}

// missingLabels dịch tên trường còn thiếu sang nhãn hiển thị
func missingLabels(session ordermodels.OrderSession) []string {
	var labels []string
	for _, f := range session.MissingInfoFields() {
		switch f {
		case "name":
			labels = append(labels, "tên người nhận")
		case "phone":
			labels = append(labels, "số điện thoại")
		case "address":
			labels = append(labels, "địa chỉ giao hàng")
		}
	}
	return labels
}

// sessionCurrency lấy đơn vị tiền tệ từ dòng hàng đầu tiên
func sessionCurrency(session ordermodels.OrderSession) string {
	if len(session.Items) > 0 {
		return session.Items[0].Currency
	}
	return ""
}

func formatMoney(v float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}
