// Package webhooksvc - Test phân loại lỗi và lời đáp gửi khách.
package webhooksvc

import (
	"errors"
	"strings"
	"testing"

	ordermodels "chat_commerce/internal/api/order/models"
	"chat_commerce/internal/common"
)

func TestIsConversationalError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"hết hàng", common.ErrOutOfStock, true},
		{"không có biến thể", common.ErrVariantNotFound, true},
		{"không có phiên", common.ErrNoActiveSession, true},
		{"đơn rỗng", common.ErrEmptyOrder, true},
		{"thiếu thông tin", common.NewIncompleteInfoError([]string{"phone"}), true},
		{"conflict là lỗi hệ thống", common.ErrOrderConflict, false},
		{"lỗi database", common.ErrConnection, false},
		{"lỗi thường", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConversationalError(tt.err); got != tt.want {
				t.Errorf("isConversationalError(%v) = %v, muốn %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBuildReply_ErrorMessages(t *testing.T) {
	s := &WebhookService{}

	tests := []struct {
		err  error
		want string
	}{
		{common.ErrVariantNotFound, "không có trong danh mục"},
		{common.ErrOutOfStock, "hết hàng"},
		{common.ErrItemNotFound, "chưa có trong đơn hàng"},
		{common.ErrNoActiveSession, "chưa có đơn hàng nào đang mở"},
		{common.ErrEmptyOrder, "chưa có sản phẩm nào"},
		{common.ErrOrderTerminal, "đã kết thúc"},
		{common.NewIncompleteInfoError([]string{"phone", "address"}), "cần thêm thông tin"},
	}

	for _, tt := range tests {
		reply := s.buildReply(ordermodels.OrderSession{}, tt.err)
		if !strings.Contains(reply, tt.want) {
			t.Errorf("reply cho %v phải chứa %q, nhận được %q", tt.err, tt.want, reply)
		}
	}
}

func TestBuildReply_SuccessRendersSummary(t *testing.T) {
	s := &WebhookService{}
	session := ordermodels.OrderSession{
		Status: ordermodels.StatusActive,
		Stage:  ordermodels.StageCollectingItems,
	}

	reply := s.buildReply(session, nil)
	if !strings.Contains(reply, "🧾 Đơn hàng của bạn:") {
		t.Errorf("không có lỗi thì reply phải là bản tóm tắt đơn, nhận được %q", reply)
	}
}

func TestErrorCode(t *testing.T) {
	if got := errorCode(common.ErrOutOfStock); got != common.ErrCodeOrderCatalog.Code {
		t.Errorf("ErrOutOfStock phải mang mã %s, nhận được %s", common.ErrCodeOrderCatalog.Code, got)
	}
	if got := errorCode(errors.New("boom")); got != common.ErrCodeInternalServer.Code {
		t.Errorf("lỗi thường phải rơi về mã hệ thống, nhận được %s", got)
	}
}
