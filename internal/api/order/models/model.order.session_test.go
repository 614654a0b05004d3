// Package models - Test suy diễn stage và tính tiền của phiên đặt hàng.
package models

import (
	"testing"
)

func TestDeriveStage_EmptySession(t *testing.T) {
	s := &OrderSession{Status: StatusActive}
	if got := DeriveStage(s); got != StageCollectingItems {
		t.Errorf("phiên rỗng phải ở stage %s, nhận được %s", StageCollectingItems, got)
	}
}

func TestDeriveStage_ItemsWithoutInfo(t *testing.T) {
	s := &OrderSession{
		Status: StatusActive,
		Items:  []OrderItem{{ProductId: "p1", Quantity: 1}},
	}
	if got := DeriveStage(s); got != StageCollectingInfo {
		t.Errorf("có hàng nhưng thiếu thông tin khách phải ở stage %s, nhận được %s", StageCollectingInfo, got)
	}
}

func TestDeriveStage_PartialInfoStaysCollecting(t *testing.T) {
	s := &OrderSession{
		Status: StatusActive,
		Items:  []OrderItem{{ProductId: "p1", Quantity: 1}},
		Info:   CustomerInfo{Name: "Anh Tuấn", Phone: "0901234567"},
	}
	if got := DeriveStage(s); got != StageCollectingInfo {
		t.Errorf("thiếu địa chỉ vẫn phải ở stage %s, nhận được %s", StageCollectingInfo, got)
	}
}

func TestDeriveStage_CompleteGoesReviewing(t *testing.T) {
	s := &OrderSession{
		Status: StatusActive,
		Items:  []OrderItem{{ProductId: "p1", Quantity: 1}},
		Info:   CustomerInfo{Name: "Anh Tuấn", Phone: "0901234567", Address: "12 Lý Thường Kiệt"},
	}
	if got := DeriveStage(s); got != StageReviewing {
		t.Errorf("đủ hàng và thông tin phải ở stage %s, nhận được %s", StageReviewing, got)
	}
}

func TestDeriveStage_TerminalWinsOverContent(t *testing.T) {
	s := &OrderSession{
		Status: StatusCompleted,
		Items:  []OrderItem{{ProductId: "p1", Quantity: 1}},
	}
	if got := DeriveStage(s); got != StageCompleted {
		t.Errorf("phiên completed phải ở stage %s bất kể nội dung, nhận được %s", StageCompleted, got)
	}

	s.Status = StatusCancelled
	if got := DeriveStage(s); got != StageCancelled {
		t.Errorf("phiên cancelled phải ở stage %s bất kể nội dung, nhận được %s", StageCancelled, got)
	}
}

func TestMissingInfoFields(t *testing.T) {
	s := &OrderSession{}
	missing := s.MissingInfoFields()
	if len(missing) != 3 {
		t.Fatalf("phiên mới phải thiếu 3 trường, nhận được %v", missing)
	}

	// Giá trị toàn khoảng trắng không được tính là đã có
	s.Info = CustomerInfo{Name: "   ", Phone: "0901234567", Address: "\t\n"}
	missing = s.MissingInfoFields()
	if len(missing) != 2 {
		t.Fatalf("name và address toàn khoảng trắng phải bị coi là thiếu, nhận được %v", missing)
	}
	if missing[0] != "name" || missing[1] != "address" {
		t.Errorf("thứ tự trường thiếu phải là [name address], nhận được %v", missing)
	}

	s.Info = CustomerInfo{Name: "Anh Tuấn", Phone: "0901234567", Address: "12 Lý Thường Kiệt"}
	if missing = s.MissingInfoFields(); missing != nil {
		t.Errorf("đủ thông tin phải trả về nil, nhận được %v", missing)
	}
}

func TestRecomputeTotals(t *testing.T) {
	s := &OrderSession{
		Items: []OrderItem{
			{ProductId: "p1", Price: 150000, Quantity: 2},
			{ProductId: "p2", Price: 99000, Quantity: 1},
		},
		Totals: OrderTotals{Tax: 10000, Shipping: 30000, Discount: 50000},
	}
	RecomputeTotals(s)

	if s.Items[0].LineTotal != 300000 {
		t.Errorf("LineTotal dòng 1 phải là 300000, nhận được %v", s.Items[0].LineTotal)
	}
	if s.Totals.Subtotal != 399000 {
		t.Errorf("Subtotal phải là 399000, nhận được %v", s.Totals.Subtotal)
	}
	// Total = Subtotal + Tax + Shipping - Discount
	if s.Totals.Total != 389000 {
		t.Errorf("Total phải là 389000, nhận được %v", s.Totals.Total)
	}
}

func TestRecomputeTotals_EmptyItems(t *testing.T) {
	s := &OrderSession{Totals: OrderTotals{Subtotal: 123, Total: 456}}
	RecomputeTotals(s)
	if s.Totals.Subtotal != 0 || s.Totals.Total != 0 {
		t.Errorf("phiên rỗng phải về 0, nhận được subtotal=%v total=%v", s.Totals.Subtotal, s.Totals.Total)
	}
}

func TestIsTerminal(t *testing.T) {
	for status, want := range map[string]bool{
		StatusActive:    false,
		StatusCompleted: true,
		StatusCancelled: true,
	} {
		s := &OrderSession{Status: status}
		if s.IsTerminal() != want {
			t.Errorf("IsTerminal với status %s phải là %v", status, want)
		}
	}
}

func TestClone_ItemsAreIndependent(t *testing.T) {
	original := &OrderSession{
		Status: StatusActive,
		Items: []OrderItem{
			{ProductId: "p1", Quantity: 2, Price: 100, Options: map[string]string{"size": "M"}},
		},
	}

	cloned := original.Clone()
	cloned.Items[0].Quantity = 99
	cloned.Items[0].Options["size"] = "XL"
	cloned.Items = append(cloned.Items, OrderItem{ProductId: "p2", Quantity: 1})

	if original.Items[0].Quantity != 2 {
		t.Errorf("sửa bản sao không được lan sang bản gốc, quantity gốc thành %d", original.Items[0].Quantity)
	}
	if original.Items[0].Options["size"] != "M" {
		t.Errorf("sửa options của bản sao không được lan sang bản gốc, nhận được %q", original.Items[0].Options["size"])
	}
	if len(original.Items) != 1 {
		t.Errorf("append vào bản sao không được lan sang bản gốc, gốc có %d dòng", len(original.Items))
	}
}

func TestMissingInfoFields_EmailNotRequired(t *testing.T) {
	s := &OrderSession{
		Status: StatusActive,
		Info:   CustomerInfo{Name: "Anh Tuấn", Phone: "0901234567", Address: "12 Lý Thường Kiệt", Email: ""},
	}
	if missing := s.MissingInfoFields(); missing != nil {
		t.Errorf("email trống không được tính là thiếu thông tin, nhận được %v", missing)
	}

	s.Info = CustomerInfo{Email: "tuan@example.com"}
	if missing := s.MissingInfoFields(); len(missing) != 3 {
		t.Errorf("chỉ có email thì vẫn thiếu 3 trường bắt buộc, nhận được %v", missing)
	}
}
