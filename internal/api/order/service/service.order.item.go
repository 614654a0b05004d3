package ordersvc

import (
	"context"

	"github.com/sirupsen/logrus"

	"chat_commerce/internal/api/events"
	ordermodels "chat_commerce/internal/api/order/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/utility"
)

// AddItemArgs tham số thêm hàng vào phiên.
// ProductRef và VariantRef nhận id thô từ webhook (ObjectID hex, số, string)
// và được chuẩn hóa về string trước khi tra cứu danh mục.
type AddItemArgs struct {
	ProductRef interface{} // Id sản phẩm thô từ payload
	VariantRef interface{} // Id biến thể thô (nil nếu sản phẩm không có biến thể)
	Quantity   int64       // Số lượng muốn thêm (0 = mặc định 1)
}

// ItemResult kết quả thao tác trên một dòng hàng: phiên sau khi ghi
// kèm dòng hàng bị ảnh hưởng để tầng gọi trả lời khách mà không phải diff items.
type ItemResult struct {
	Session ordermodels.OrderSession
	Line    ordermodels.OrderItem // Dòng vừa thêm/gộp, hoặc dòng vừa gỡ (trạng thái trước khi gỡ)
}

// AddItem thêm một sản phẩm vào phiên của khách, tạo phiên nếu chưa có.
// Sản phẩm đã có trong đơn thì cộng dồn số lượng và refresh giá theo danh mục.
// Số lượng mỗi lần thêm bị chặn trong [1, QuantityCap]; tổng cộng dồn được phép vượt.
func (e *OrderEngine) AddItem(ctx context.Context, ref SessionRef, args AddItemArgs) (ItemResult, error) {
	var zero ItemResult
	key := ref.key()
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	session, err := e.resolveLocked(ctx, ref, true)
	if err != nil {
		return zero, err
	}
	// Bản resolve có thể đang nằm trong cache: mọi sửa đổi đi trên bản sao riêng
	session = session.Clone()

	productId := utility.NormalizeID(args.ProductRef)
	variantId := utility.NormalizeID(args.VariantRef)

	variant, err := e.catalog.ResolveVariant(ctx, ref.BusinessID, productId, variantId)
	if err != nil {
		return zero, err
	}

	quantity := args.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if quantity > e.cfg.QuantityCap {
		quantity = e.cfg.QuantityCap
	}

	// Gộp dòng theo cặp (productId, variantId) chuẩn hóa
	merged := -1
	for i := range session.Items {
		if session.Items[i].ProductId == variant.ProductId && session.Items[i].VariantId == variant.VariantId {
			session.Items[i].Quantity += quantity
			session.Items[i].Price = variant.Price // Giá luôn theo danh mục hiện tại
			session.Items[i].Name = variant.DisplayName
			session.Items[i].Options = variant.Options
			merged = i
			break
		}
	}
	if merged < 0 {
		session.Items = append(session.Items, ordermodels.OrderItem{
			ProductId: variant.ProductId,
			VariantId: variant.VariantId,
			Name:      variant.DisplayName,
			Sku:       variant.Sku,
			Price:     variant.Price,
			Currency:  variant.Currency,
			Quantity:  quantity,
			Image:     variant.Image,
			Options:   variant.Options,
		})
		merged = len(session.Items) - 1
	}

	ordermodels.RecomputeTotals(&session)
	session.Stage = ordermodels.DeriveStage(&session)

	updated, err := e.persist(ctx, ref, session, map[string]interface{}{
		"items":  session.Items,
		"totals": session.Totals,
		"stage":  session.Stage,
	})
	if err != nil {
		return zero, err
	}

	e.emit(ctx, ref, events.OrderOpAddItem, updated.ID)
	e.log.WithFields(logrus.Fields{
		"orderId":   updated.ID.Hex(),
		"productId": variant.ProductId,
		"variantId": variant.VariantId,
		"quantity":  quantity,
	}).Info("🛒 [ORDER] Thêm sản phẩm vào phiên")

	return ItemResult{Session: updated, Line: updated.Items[merged]}, nil
}

// RemoveItem gỡ một sản phẩm khỏi phiên active của khách.
// Không có phiên active trả về ErrNoActiveSession — thao tác gỡ không bao giờ tạo phiên.
func (e *OrderEngine) RemoveItem(ctx context.Context, ref SessionRef, productRef interface{}, variantRef interface{}) (ItemResult, error) {
	var zero ItemResult
	key := ref.key()
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	session, err := e.resolveLocked(ctx, ref, false)
	if err != nil {
		return zero, err
	}
	session = session.Clone()

	productId := utility.NormalizeID(productRef)
	variantId := utility.NormalizeID(variantRef)

	found := -1
	for i := range session.Items {
		if session.Items[i].ProductId == productId && session.Items[i].VariantId == variantId {
			found = i
			break
		}
	}
	if found < 0 {
		return zero, common.ErrItemNotFound
	}

	removed := session.Items[found]
	session.Items = append(session.Items[:found], session.Items[found+1:]...)
	ordermodels.RecomputeTotals(&session)
	session.Stage = ordermodels.DeriveStage(&session)

	updated, err := e.persist(ctx, ref, session, map[string]interface{}{
		"items":  session.Items,
		"totals": session.Totals,
		"stage":  session.Stage,
	})
	if err != nil {
		return zero, err
	}

	e.emit(ctx, ref, events.OrderOpRemoveItem, updated.ID)
	e.log.WithFields(logrus.Fields{
		"orderId":   updated.ID.Hex(),
		"productId": productId,
		"variantId": variantId,
	}).Info("🛒 [ORDER] Gỡ sản phẩm khỏi phiên")

	return ItemResult{Session: updated, Line: removed}, nil
}
