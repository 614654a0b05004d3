package ordersvc

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "chat_commerce/internal/api/catalog/models"
	"chat_commerce/internal/api/events"
	ordermodels "chat_commerce/internal/api/order/models"
	"chat_commerce/internal/common"
	"chat_commerce/internal/global"
	"chat_commerce/internal/logger"
	"chat_commerce/internal/utility"
)

// CatalogResolver tra cứu biến thể hợp lệ từ danh mục (cài đặt bởi catalog service)
type CatalogResolver interface {
	ResolveVariant(ctx context.Context, businessID primitive.ObjectID, productId string, variantId string) (catalogmodels.ResolvedVariant, error)
}

// EngineConfig các tham số vận hành của engine phiên đặt hàng
type EngineConfig struct {
	CacheTTL      time.Duration // Cửa sổ freshness của session cache
	MaxIdle       time.Duration // Phiên idle quá ngưỡng này không còn active
	QuantityCap   int64         // Số lượng tối đa cho một lần thêm hàng
	TouchOnAccess bool          // Chạm updatedAt khi đọc lại phiên có sẵn từ store
}

// OrderEngine điều phối toàn bộ vòng đời phiên đặt hàng: resolve/create,
// thêm bớt hàng, thu thập thông tin khách, xác nhận và hủy.
// Mọi thao tác ghi đi qua keyLock theo phiên rồi qua chốt version của store.
type OrderEngine struct {
	store   SessionStore
	catalog CatalogResolver
	cache   *utility.Cache
	locks   *keyLock
	cfg     EngineConfig
	log     *logrus.Entry

	// nowFunc tách ra để test điều khiển được thời gian
	nowFunc func() time.Time
}

// NewOrderEngine tạo engine với store MongoDB và catalog thật, cấu hình từ server config
func NewOrderEngine(store SessionStore, catalog CatalogResolver) *OrderEngine {
	cfg := EngineConfig{
		CacheTTL:      time.Duration(global.ServerConfig.Session_CacheTTLSeconds) * time.Second,
		MaxIdle:       time.Duration(global.ServerConfig.Session_MaxIdleMinutes) * time.Minute,
		QuantityCap:   int64(global.ServerConfig.Order_ItemQuantityCap),
		TouchOnAccess: true,
	}
	return NewOrderEngineWithConfig(store, catalog, cfg)
}

// NewOrderEngineWithConfig tạo engine với cấu hình tường minh (dùng trong test)
func NewOrderEngineWithConfig(store SessionStore, catalog CatalogResolver, cfg EngineConfig) *OrderEngine {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 60 * time.Second
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 24 * time.Hour
	}
	if cfg.QuantityCap <= 0 {
		cfg.QuantityCap = 10
	}

	return &OrderEngine{
		store:   store,
		catalog: catalog,
		cache:   utility.NewCache(cfg.CacheTTL, 5*time.Minute),
		locks:   newKeyLock(),
		cfg:     cfg,
		log:     logger.WithModule("order"),
		nowFunc: time.Now,
	}
}

// SessionRef định danh phiên của một khách trên một kênh
type SessionRef struct {
	BusinessID primitive.ObjectID
	CustomerID string // Đã chuẩn hóa về string
	Channel    string
}

func (r SessionRef) key() string {
	return utility.SessionKey(r.CustomerID, r.BusinessID.Hex(), r.Channel)
}

// Close dừng các tài nguyên nền của engine
func (e *OrderEngine) Close() {
	e.cache.Stop()
}

// ResolveSession trả về phiên active của khách, tạo mới khi createIfMissing.
// Fast path là cache trong cửa sổ freshness; cache miss rơi xuống store.
// Phiên idle quá MaxIdle coi như không tồn tại.
func (e *OrderEngine) ResolveSession(ctx context.Context, ref SessionRef, createIfMissing bool) (ordermodels.OrderSession, error) {
	key := ref.key()
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	return e.resolveLocked(ctx, ref, createIfMissing)
}

// resolveLocked là đường resolve dùng chung cho các thao tác đã giữ lock.
// Chỉ trả về phiên active: cache giữ phiên kết thúc/idle bị gỡ, FindActive
// lọc theo status, phiên tạo mới luôn active. Phiên bị instance khác chốt
// dưới chân được phát hiện ở tầng store khi ghi (ErrOrderTerminal).
func (e *OrderEngine) resolveLocked(ctx context.Context, ref SessionRef, createIfMissing bool) (ordermodels.OrderSession, error) {
	var zero ordermodels.OrderSession
	key := ref.key()
	now := e.nowFunc()

	// Fast path: cache còn trong cửa sổ freshness thì trả ngay, không chạm store
	if cached, ok := e.cache.Get(key); ok {
		session := cached.(ordermodels.OrderSession)
		if !session.IsTerminal() && !e.isIdle(session, now) {
			return session, nil
		}
		// Cache giữ phiên đã kết thúc hoặc đã idle: bỏ và đọc lại store
		e.cache.Delete(key)
	}

	idleCutoff := now.Add(-e.cfg.MaxIdle).UnixMilli()
	session, err := e.store.FindActive(ctx, ref.BusinessID, ref.CustomerID, ref.Channel, idleCutoff)
	if err == nil {
		if e.cfg.TouchOnAccess {
			if terr := e.store.Touch(ctx, session.ID, now.UnixMilli()); terr == nil {
				session.UpdatedAt = now.UnixMilli()
			}
		}
		e.cache.Set(key, session)
		return session, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	if !createIfMissing {
		return zero, common.ErrNoActiveSession
	}

	created, err := e.store.Insert(ctx, ordermodels.OrderSession{
		BusinessID: ref.BusinessID,
		CustomerID: ref.CustomerID,
		Channel:    ref.Channel,
		Status:     ordermodels.StatusActive,
		Stage:      ordermodels.StageCollectingItems,
		Items:      []ordermodels.OrderItem{},
		Version:    1,
	})
	if err != nil {
		return zero, err
	}

	e.cache.Set(key, created)
	e.emit(ctx, ref, events.OrderOpResolveCreate, created.ID)
	e.log.WithFields(logrus.Fields{
		"businessId": ref.BusinessID.Hex(),
		"customerId": ref.CustomerID,
		"channel":    ref.Channel,
		"orderId":    created.ID.Hex(),
	}).Info("🛒 [ORDER] Tạo phiên đặt hàng mới")

	return created, nil
}

// isIdle kiểm tra phiên đã idle quá ngưỡng chưa
func (e *OrderEngine) isIdle(session ordermodels.OrderSession, now time.Time) bool {
	return now.UnixMilli()-session.UpdatedAt > e.cfg.MaxIdle.Milliseconds()
}

// persist ghi phiên qua chốt version rồi làm mới cache từ bản store trả về.
// Ghi hỏng vì bất kỳ lý do gì đều gỡ cache: bản cache lúc này không còn
// chắc chắn khớp với store, lần resolve sau phải đọc lại từ store.
func (e *OrderEngine) persist(ctx context.Context, ref SessionRef, session ordermodels.OrderSession, set map[string]interface{}) (ordermodels.OrderSession, error) {
	updated, err := e.store.UpdateVersioned(ctx, session.ID, session.Version, set)
	if err != nil {
		e.cache.Delete(ref.key())
		return ordermodels.OrderSession{}, err
	}

	e.cache.Set(ref.key(), updated)
	return updated, nil
}

// emit phát sự kiện mutation sau khi commit, phục vụ usage metering và webhook log
func (e *OrderEngine) emit(ctx context.Context, ref SessionRef, operation string, orderID primitive.ObjectID) {
	events.EmitOrderMutation(ctx, events.OrderMutationEvent{
		BusinessID: ref.BusinessID.Hex(),
		CustomerID: ref.CustomerID,
		Channel:    ref.Channel,
		Operation:  operation,
		OrderID:    orderID.Hex(),
	})
}
