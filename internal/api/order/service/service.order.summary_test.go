// Package ordersvc - Test dựng bản tóm tắt đơn hàng gửi lại cho khách.
package ordersvc

import (
	"strings"
	"testing"

	ordermodels "chat_commerce/internal/api/order/models"
)

func summarySession() ordermodels.OrderSession {
	s := ordermodels.OrderSession{
		Status: ordermodels.StatusActive,
		Items: []ordermodels.OrderItem{
			{ProductId: "ao-thun", VariantId: "size-m", Name: "Áo thun - Size M", Price: 150000, Currency: "VND", Quantity: 2},
		},
	}
	ordermodels.RecomputeTotals(&s)
	s.Stage = ordermodels.DeriveStage(&s)
	return s
}

func TestRenderSummary_EmptySession(t *testing.T) {
	s := ordermodels.OrderSession{Status: ordermodels.StatusActive, Stage: ordermodels.StageCollectingItems}
	out := RenderSummary(s)

	if !strings.Contains(out, "(Chưa có sản phẩm nào)") {
		t.Errorf("phiên rỗng phải báo chưa có sản phẩm, nhận được:\n%s", out)
	}
	if !strings.Contains(out, "Bạn muốn đặt sản phẩm nào?") {
		t.Errorf("phiên rỗng phải hỏi khách muốn đặt gì, nhận được:\n%s", out)
	}
}

func TestRenderSummary_ItemLinesAndTotal(t *testing.T) {
	out := RenderSummary(summarySession())

	if !strings.Contains(out, "• Áo thun - Size M x2 — 300000.00 VND") {
		t.Errorf("thiếu dòng hàng với LineTotal, nhận được:\n%s", out)
	}
	if !strings.Contains(out, "Tổng cộng: 300000.00 VND") {
		t.Errorf("thiếu dòng tổng cộng, nhận được:\n%s", out)
	}
	if !strings.Contains(out, "số điện thoại") || !strings.Contains(out, "địa chỉ giao hàng") {
		t.Errorf("đang thiếu thông tin khách thì phải hỏi các trường còn thiếu, nhận được:\n%s", out)
	}
}

func TestRenderSummary_OptionalChargeLines(t *testing.T) {
	s := summarySession()
	s.Totals.Shipping = 30000
	s.Totals.Discount = 50000
	ordermodels.RecomputeTotals(&s)

	out := RenderSummary(s)
	if !strings.Contains(out, "Phí vận chuyển: 30000.00 VND") {
		t.Errorf("thiếu dòng phí vận chuyển, nhận được:\n%s", out)
	}
	if !strings.Contains(out, "Giảm giá: -50000.00 VND") {
		t.Errorf("thiếu dòng giảm giá, nhận được:\n%s", out)
	}
	// Thuế bằng 0 không được hiển thị
	if strings.Contains(out, "Thuế:") {
		t.Errorf("thuế bằng 0 không được có dòng riêng, nhận được:\n%s", out)
	}
}

func TestRenderSummary_ReviewingAsksConfirmation(t *testing.T) {
	s := summarySession()
	s.Info = ordermodels.CustomerInfo{Name: "Chị Hoa", Phone: "0907654321", Address: "25 Nguyễn Huệ"}
	s.Stage = ordermodels.DeriveStage(&s)

	out := RenderSummary(s)
	if !strings.Contains(out, "Người nhận: Chị Hoa") {
		t.Errorf("thiếu thông tin người nhận, nhận được:\n%s", out)
	}
	if !strings.Contains(out, "Xác nhận đặt hàng chứ ạ?") {
		t.Errorf("stage reviewing phải hỏi xác nhận, nhận được:\n%s", out)
	}
}

func TestRenderSummary_TerminalStates(t *testing.T) {
	s := summarySession()
	s.Status = ordermodels.StatusCompleted
	if out := RenderSummary(s); !strings.Contains(out, "✅ Đơn hàng đã được xác nhận.") {
		t.Errorf("phiên completed phải báo đã xác nhận, nhận được:\n%s", out)
	}

	s.Status = ordermodels.StatusCancelled
	if out := RenderSummary(s); !strings.Contains(out, "❌ Đơn hàng đã bị hủy.") {
		t.Errorf("phiên cancelled phải báo đã hủy, nhận được:\n%s", out)
	}
}
