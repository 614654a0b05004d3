// Package events cung cấp cơ chế event trung tâm khi dữ liệu thay đổi qua CRUD.
// Các service CRUD không cần override từng method — BaseServiceMongoImpl tự động phát event.
// Order Engine phát thêm OrderMutationEvent sau mỗi mutation thành công; usage metering
// đăng ký qua OnOrderMutation thay vì được gọi inline trong mutation path.
package events

import (
	"context"
	"sync"
)

// OpInsert, OpUpdate, OpUpsert, OpDelete là các loại thao tác CRUD.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi sau khi thay đổi (nil nếu delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

// OrderMutationEvent mô tả một mutation thành công của Order Engine.
// Phát sau khi store đã commit — handler không bao giờ chặn mutation path.
type OrderMutationEvent struct {
	BusinessID string // Business id đã chuẩn hóa
	CustomerID string // Customer id đã chuẩn hóa
	Channel    string // Kênh chat (whatsapp, instagram, messenger)
	Operation  string // resolve_create, add_item, remove_item, update_info, confirm, cancel
	OrderID    string // Id của order document
}

// Các loại thao tác trên phiên đặt hàng
const (
	OrderOpResolveCreate = "resolve_create"
	OrderOpAddItem       = "add_item"
	OrderOpRemoveItem    = "remove_item"
	OrderOpUpdateInfo    = "update_info"
	OrderOpConfirm       = "confirm"
	OrderOpCancel        = "cancel"
)

// OrderMutationHandler xử lý sự kiện mutation của Order Engine.
type OrderMutationHandler func(ctx context.Context, e OrderMutationEvent)

var (
	dataHandlers    []DataChangeHandler
	orderHandlers   []OrderMutationHandler
	handlersMu      sync.RWMutex
	orderHandlersMu sync.RWMutex
)

// OnDataChanged đăng ký handler. Gọi khi init.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	dataHandlers = append(dataHandlers, h)
}

// EmitDataChanged phát sự kiện. Gọi từ BaseServiceMongoImpl sau mỗi CRUD thành công.
// Mỗi handler chạy trong goroutine riêng, panic được recover để không ảnh hưởng handler khác.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(dataHandlers))
	copy(list, dataHandlers)
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// Logger có thể chưa init khi event chạy sớm
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}

// OnOrderMutation đăng ký handler cho order mutation events (usage metering, audit).
func OnOrderMutation(h OrderMutationHandler) {
	orderHandlersMu.Lock()
	defer orderHandlersMu.Unlock()
	orderHandlers = append(orderHandlers, h)
}

// EmitOrderMutation phát sự kiện mutation của Order Engine.
// Fire-and-forget: handler chạy trong goroutine riêng với recover.
func EmitOrderMutation(ctx context.Context, e OrderMutationEvent) {
	orderHandlersMu.RLock()
	list := make([]OrderMutationHandler, len(orderHandlers))
	copy(list, orderHandlers)
	orderHandlersMu.RUnlock()

	for _, h := range list {
		go func(fn OrderMutationHandler) {
			defer func() {
				if r := recover(); r != nil {
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
