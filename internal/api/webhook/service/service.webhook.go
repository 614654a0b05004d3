package webhooksvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	basesvc "chat_commerce/internal/api/base/service"
	businesssvc "chat_commerce/internal/api/business/service"
	ordermodels "chat_commerce/internal/api/order/models"
	ordersvc "chat_commerce/internal/api/order/service"
	webhookdto "chat_commerce/internal/api/webhook/dto"
	webhookmodels "chat_commerce/internal/api/webhook/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
	"chat_commerce/internal/logger"
	"chat_commerce/internal/utility"
)

// WebhookService nhận sự kiện hội thoại từ các kênh, điều phối qua engine
// và ghi vết xử lý vào webhook_logs.
type WebhookService struct {
	*basesvc.BaseServiceMongoImpl[webhookmodels.WebhookLog]
	businessService *businesssvc.BusinessService
	usageService    *businesssvc.UsageService
	engine          *ordersvc.OrderEngine
	log             *logrus.Entry
}

// NewWebhookService tạo mới WebhookService
func NewWebhookService() (*WebhookService, error) {
	logCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebhookLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get webhook_logs collection: %v", common.ErrNotFound)
	}

	businessService, err := businesssvc.NewBusinessService()
	if err != nil {
		return nil, err
	}
	usageService, err := businesssvc.NewUsageService()
	if err != nil {
		return nil, err
	}
	engine, err := ordersvc.DefaultEngine()
	if err != nil {
		return nil, err
	}

	return &WebhookService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[webhookmodels.WebhookLog](logCollection),
		businessService:      businessService,
		usageService:         usageService,
		engine:               engine,
		log:                  logger.WithModule("webhook"),
	}, nil
}

// Process xử lý một sự kiện webhook: resolve business theo định danh kênh,
// kiểm tra hạn mức gói, chạy thao tác tương ứng trên engine và dựng reply cho khách.
// Lỗi nghiệp vụ của đơn hàng (hết hàng, thiếu thông tin...) trở thành reply text,
// không phải lỗi HTTP — khách cần câu trả lời, không cần status code.
func (s *WebhookService) Process(ctx context.Context, channel string, input webhookdto.WebhookEventInput) (webhookdto.WebhookReply, error) {
	var zero webhookdto.WebhookReply
	channel = strings.ToLower(strings.TrimSpace(channel))

	// Giữ payload gốc trong log để truy vết, lỗi convert không chặn xử lý
	payload, _ := utility.ToMap(input)

	business, err := s.businessService.ResolveByChannel(ctx, channel, input.AccountId)
	if err != nil {
		s.writeLog(ctx, webhookmodels.WebhookLog{
			Channel:    channel,
			CustomerID: utility.NormalizeID(input.SenderId),
			EventType:  input.EventType,
			Payload:    payload,
			Status:     webhookmodels.WebhookStatusRejected,
			ErrorCode:  errorCode(err),
		})
		return zero, err
	}

	period := businesssvc.CurrentPeriod(time.Now())
	if err := s.usageService.CheckLimit(ctx, business, period); err != nil {
		s.writeLog(ctx, webhookmodels.WebhookLog{
			BusinessID: business.ID,
			Channel:    channel,
			CustomerID: utility.NormalizeID(input.SenderId),
			EventType:  input.EventType,
			Payload:    payload,
			Status:     webhookmodels.WebhookStatusRejected,
			ErrorCode:  errorCode(err),
		})
		return zero, err
	}

	ref := ordersvc.SessionRef{
		BusinessID: business.ID,
		CustomerID: utility.NormalizeID(input.SenderId),
		Channel:    channel,
	}

	session, opErr := s.dispatch(ctx, ref, input)

	reply := s.buildReply(session, opErr)
	logEntry := webhookmodels.WebhookLog{
		BusinessID: business.ID,
		Channel:    channel,
		CustomerID: ref.CustomerID,
		EventType:  input.EventType,
		Payload:    payload,
		Status:     webhookmodels.WebhookStatusOK,
		Reply:      reply,
	}
	if opErr != nil {
		logEntry.ErrorCode = errorCode(opErr)
		if !isConversationalError(opErr) {
			// Lỗi hệ thống: không có reply hợp lệ cho khách
			logEntry.Status = webhookmodels.WebhookStatusError
			logEntry.Reply = ""
			s.writeLog(ctx, logEntry)
			return zero, opErr
		}
	}
	s.writeLog(ctx, logEntry)

	result := webhookdto.WebhookReply{Reply: reply}
	if opErr == nil {
		result.Session = session
	}
	return result, nil
}

// dispatch chạy thao tác engine tương ứng với loại sự kiện
func (s *WebhookService) dispatch(ctx context.Context, ref ordersvc.SessionRef, input webhookdto.WebhookEventInput) (ordermodels.OrderSession, error) {
	switch input.EventType {
	case "add_item":
		result, err := s.engine.AddItem(ctx, ref, ordersvc.AddItemArgs{
			ProductRef: input.ProductId,
			VariantRef: input.VariantId,
			Quantity:   input.Quantity,
		})
		return result.Session, err
	case "remove_item":
		result, err := s.engine.RemoveItem(ctx, ref, input.ProductId, input.VariantId)
		return result.Session, err
	case "customer_info":
		result, err := s.engine.UpdateCustomerInfo(ctx, ref, ordersvc.CustomerInfoArgs{
			Name:    input.Name,
			Phone:   input.Phone,
			Address: input.Address,
			Email:   input.Email,
			Note:    input.Note,
		})
		return result.Session, err
	case "confirm":
		return s.engine.ConfirmOrder(ctx, ref)
	case "cancel":
		return s.engine.CancelOrder(ctx, ref)
	case "summary":
		return s.engine.ResolveSession(ctx, ref, false)
	default:
		return ordermodels.OrderSession{}, common.ErrInvalidInput
	}
}

// buildReply dựng câu trả lời cho khách từ kết quả thao tác
func (s *WebhookService) buildReply(session ordermodels.OrderSession, err error) string {
	if err == nil {
		return ordersvc.RenderSummary(session)
	}

	switch {
	case errors.Is(err, common.ErrVariantNotFound):
		return "Xin lỗi, sản phẩm bạn chọn không có trong danh mục của shop."
	case errors.Is(err, common.ErrOutOfStock):
		return "Xin lỗi, sản phẩm này hiện đã hết hàng."
	case errors.Is(err, common.ErrInvalidPrice):
		return "Xin lỗi, sản phẩm này hiện chưa đặt được, shop sẽ kiểm tra lại giá."
	case errors.Is(err, common.ErrItemNotFound):
		return "Sản phẩm này chưa có trong đơn hàng của bạn."
	case errors.Is(err, common.ErrNoActiveSession):
		return "Bạn chưa có đơn hàng nào đang mở. Bạn muốn đặt sản phẩm nào ạ?"
	case errors.Is(err, common.ErrEmptyOrder):
		return "Đơn hàng của bạn chưa có sản phẩm nào. Bạn muốn đặt gì ạ?"
	case errors.Is(err, common.ErrOrderTerminal):
		return "Đơn hàng này đã kết thúc. Bạn muốn tạo đơn mới không ạ?"
	}

	// Thiếu thông tin khi xác nhận: Details mang danh sách trường thiếu
	var customErr *common.Error
	if errors.As(err, &customErr) && customErr.Code.Code == common.ErrCodeOrderState.Code {
		return "Shop cần thêm thông tin để xác nhận đơn (tên, số điện thoại, địa chỉ). Bạn bổ sung giúp shop nhé."
	}

	return ""
}

// isConversationalError phân biệt lỗi nghiệp vụ (trả lời khách được) với lỗi hệ thống
func isConversationalError(err error) bool {
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		return false
	}
	switch customErr.Code.Code {
	case common.ErrCodeOrderCatalog.Code,
		common.ErrCodeOrderSession.Code,
		common.ErrCodeOrderState.Code:
		return true
	}
	return false
}

// writeLog ghi vết webhook, lỗi ghi log không chặn luồng xử lý
func (s *WebhookService) writeLog(ctx context.Context, entry webhookmodels.WebhookLog) {
	if _, err := s.InsertOne(ctx, entry); err != nil {
		s.log.WithError(err).Warn("📨 [WEBHOOK] Ghi webhook log thất bại")
	}
}

func errorCode(err error) string {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return customErr.Code.Code
	}
	return common.ErrCodeInternalServer.Code
}
