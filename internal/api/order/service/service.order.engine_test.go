// Package ordersvc - Test vòng đời phiên đặt hàng trên store và catalog giả lập.
package ordersvc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "chat_commerce/internal/api/catalog/models"
	ordermodels "chat_commerce/internal/api/order/models"
	"chat_commerce/internal/common"
)

// cloneSession mô phỏng ranh giới decode của MongoDB: mỗi lần đọc/ghi qua store
// là một bản sao độc lập, không chia sẻ slice hay map với caller.
func cloneSession(s ordermodels.OrderSession) ordermodels.OrderSession {
	cloned := s
	if s.Items != nil {
		cloned.Items = make([]ordermodels.OrderItem, len(s.Items))
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

// fakeStore giả lập kho phiên trong bộ nhớ, dùng chung đồng hồ với engine
type fakeStore struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]ordermodels.OrderSession
	now      func() time.Time

	findActiveCalls int
	touchCalls      int
	nextUpdateErr   error
}

func newFakeStore(now func() time.Time) *fakeStore {
	return &fakeStore{
		sessions: make(map[primitive.ObjectID]ordermodels.OrderSession),
		now:      now,
	}
}

func (f *fakeStore) FindActive(ctx context.Context, businessID primitive.ObjectID, customerID string, channel string, idleCutoff int64) (ordermodels.OrderSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findActiveCalls++

	var best ordermodels.OrderSession
	found := false
	for _, s := range f.sessions {
		if s.BusinessID != businessID || s.CustomerID != customerID || s.Channel != channel {
			continue
		}
		if s.Status != ordermodels.StatusActive {
			continue
		}
		if idleCutoff > 0 && s.UpdatedAt < idleCutoff {
			continue
		}
		if !found || s.UpdatedAt > best.UpdatedAt {
			best = s
			found = true
		}
	}
	if !found {
		return ordermodels.OrderSession{}, common.ErrNotFound
	}
	return cloneSession(best), nil
}

func (f *fakeStore) Insert(ctx context.Context, session ordermodels.OrderSession) (ordermodels.OrderSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session.ID = primitive.NewObjectID()
	now := f.now().UnixMilli()
	session.CreatedAt = now
	session.UpdatedAt = now
	f.sessions[session.ID] = cloneSession(session)
	return cloneSession(session), nil
}

func (f *fakeStore) FindById(ctx context.Context, id primitive.ObjectID) (ordermodels.OrderSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return ordermodels.OrderSession{}, common.ErrNotFound
	}
	return cloneSession(s), nil
}

func (f *fakeStore) UpdateVersioned(ctx context.Context, id primitive.ObjectID, expectedVersion int64, set map[string]interface{}) (ordermodels.OrderSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.nextUpdateErr != nil {
		err := f.nextUpdateErr
		f.nextUpdateErr = nil
		return ordermodels.OrderSession{}, err
	}

	s, ok := f.sessions[id]
	if !ok {
		return ordermodels.OrderSession{}, common.ErrNotFound
	}
	if s.Version != expectedVersion {
		if s.IsTerminal() {
			return ordermodels.OrderSession{}, common.ErrOrderTerminal
		}
		return ordermodels.OrderSession{}, common.ErrOrderConflict
	}

	for field, value := range set {
		switch field {
		case "items":
			s.Items = append([]ordermodels.OrderItem(nil), value.([]ordermodels.OrderItem)...)
		case "totals":
			s.Totals = value.(ordermodels.OrderTotals)
		case "info":
			s.Info = value.(ordermodels.CustomerInfo)
		case "stage":
			s.Stage = value.(string)
		case "status":
			s.Status = value.(string)
		case "confirmedAt":
			s.ConfirmedAt = value.(int64)
		case "cancelledAt":
			s.CancelledAt = value.(int64)
		}
	}
	s.Version++
	s.UpdatedAt = f.now().UnixMilli()
	f.sessions[id] = cloneSession(s)
	return cloneSession(s), nil
}

func (f *fakeStore) Touch(ctx context.Context, id primitive.ObjectID, at int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchCalls++

	s, ok := f.sessions[id]
	if !ok {
		return common.ErrNotFound
	}
	s.UpdatedAt = at
	f.sessions[id] = s
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *fakeStore) bumpVersion(id primitive.ObjectID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.sessions[id]
	s.Version++
	f.sessions[id] = s
}

// markCompleted mô phỏng một instance khác chốt đơn dưới chân engine đang test
func (f *fakeStore) markCompleted(id primitive.ObjectID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.sessions[id]
	s.Status = ordermodels.StatusCompleted
	s.Stage = ordermodels.StageCompleted
	s.ConfirmedAt = f.now().UnixMilli()
	s.Version++
	f.sessions[id] = s
}

// failNextUpdate cài một lỗi cho lần UpdateVersioned kế tiếp
func (f *fakeStore) failNextUpdate(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUpdateErr = err
}

// fakeCatalog giả lập catalog resolver, key theo cặp productId|variantId
type fakeCatalog struct {
	mu       sync.Mutex
	variants map[string]catalogmodels.ResolvedVariant
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{variants: make(map[string]catalogmodels.ResolvedVariant)}
}

func (f *fakeCatalog) put(v catalogmodels.ResolvedVariant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variants[v.ProductId+"|"+v.VariantId] = v
}

func (f *fakeCatalog) ResolveVariant(ctx context.Context, businessID primitive.ObjectID, productId string, variantId string) (catalogmodels.ResolvedVariant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.variants[productId+"|"+variantId]
	if !ok {
		return catalogmodels.ResolvedVariant{}, common.ErrVariantNotFound
	}
	return v, nil
}

// testClock cho phép test tua thời gian
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*OrderEngine, *fakeStore, *fakeCatalog, *testClock) {
	t.Helper()

	clock := newTestClock()
	store := newFakeStore(clock.Now)
	catalog := newFakeCatalog()
	engine := NewOrderEngineWithConfig(store, catalog, EngineConfig{
		CacheTTL:      time.Minute,
		MaxIdle:       24 * time.Hour,
		QuantityCap:   10,
		TouchOnAccess: true,
	})
	engine.nowFunc = clock.Now
	t.Cleanup(engine.Close)

	catalog.put(catalogmodels.ResolvedVariant{
		ProductId:   "ao-thun",
		VariantId:   "size-m",
		DisplayName: "Áo thun - Size M",
		Sku:         "AT-M",
		Price:       150000,
		Currency:    "VND",
		Options:     map[string]string{"size": "M", "màu": "trắng"},
	})
	catalog.put(catalogmodels.ResolvedVariant{
		ProductId:   "12345",
		VariantId:   "",
		DisplayName: "Nón lưỡi trai",
		Sku:         "NLT",
		Price:       99000,
		Currency:    "VND",
	})

	return engine, store, catalog, clock
}

func testRef() SessionRef {
	return SessionRef{
		BusinessID: primitive.NewObjectID(),
		CustomerID: "84901234567",
		Channel:    "whatsapp",
	}
}

func TestResolveSession_CreatesOnce(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	first, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)
	require.False(t, first.ID.IsZero(), "phiên mới phải có ID")
	assert.Equal(t, ordermodels.StatusActive, first.Status)
	assert.Equal(t, ordermodels.StageCollectingItems, first.Stage)
	assert.Equal(t, int64(1), first.Version)

	second, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resolve lần hai phải trả về đúng phiên đã tạo")
	assert.Equal(t, 1, store.count(), "chỉ được có một phiên active cho mỗi khách")
}

func TestResolveSession_NoCreate(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)

	_, err := engine.ResolveSession(context.Background(), testRef(), false)
	require.ErrorIs(t, err, common.ErrNoActiveSession)
	assert.Equal(t, 0, store.count(), "createIfMissing=false không được tạo phiên")
}

func TestResolveSession_CacheFastPath(t *testing.T) {
	engine, store, _, clock := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)
	callsAfterCreate := store.findActiveCalls

	for i := 0; i < 5; i++ {
		_, err := engine.ResolveSession(ctx, ref, true)
		require.NoError(t, err)
	}
	assert.Equal(t, callsAfterCreate, store.findActiveCalls, "resolve trong cửa sổ freshness phải đi qua cache, không chạm store")
	assert.Equal(t, 0, store.touchCalls, "fast path không được chạm store")

	// Cache miss rơi xuống store: đọc lại và chạm updatedAt theo đồng hồ của engine
	clock.Advance(10 * time.Minute)
	engine.cache.Delete(ref.key())

	session, err := engine.ResolveSession(ctx, ref, false)
	require.NoError(t, err)
	assert.Equal(t, callsAfterCreate+1, store.findActiveCalls)
	assert.Equal(t, 1, store.touchCalls, "đọc lại từ store phải chạm updatedAt một lần")
	assert.Equal(t, clock.Now().UnixMilli(), session.UpdatedAt, "updatedAt phải theo đồng hồ của engine")
}

func TestResolveSession_IdleSessionNotResurrected(t *testing.T) {
	engine, _, _, clock := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	first, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)

	// Phiên idle quá MaxIdle coi như không tồn tại, kể cả khi còn trong cache
	clock.Advance(25 * time.Hour)

	_, err = engine.ResolveSession(ctx, ref, false)
	require.ErrorIs(t, err, common.ErrNoActiveSession)

	second, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "phiên idle phải bị bỏ, resolve tạo phiên mới")
}

func TestAddItem_CreatesSessionAndComputesTotals(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()

	result, err := engine.AddItem(context.Background(), ref, AddItemArgs{
		ProductRef: "ao-thun",
		VariantRef: "size-m",
		Quantity:   2,
	})
	require.NoError(t, err)

	session := result.Session
	require.Len(t, session.Items, 1)
	item := session.Items[0]
	assert.Equal(t, "ao-thun", item.ProductId)
	assert.Equal(t, int64(2), item.Quantity)
	assert.Equal(t, float64(300000), item.LineTotal)
	assert.Equal(t, map[string]string{"size": "M", "màu": "trắng"}, item.Options, "dòng hàng phải chụp option values từ danh mục")
	assert.Equal(t, float64(300000), session.Totals.Subtotal)
	assert.Equal(t, float64(300000), session.Totals.Total)
	assert.Equal(t, ordermodels.StageCollectingInfo, session.Stage, "có hàng nhưng chưa có thông tin khách")

	// Dòng vừa thêm được trả về trực tiếp, không bắt tầng gọi diff items
	assert.Equal(t, item, result.Line)
}

func TestAddItem_MergesDuplicateLinesAndRefreshesPrice(t *testing.T) {
	engine, _, catalog, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.NoError(t, err)

	// Giá trong danh mục đổi giữa hai lần thêm: dòng gộp phải theo giá mới
	catalog.put(catalogmodels.ResolvedVariant{
		ProductId:   "ao-thun",
		VariantId:   "size-m",
		DisplayName: "Áo thun - Size M",
		Sku:         "AT-M",
		Price:       120000,
		Currency:    "VND",
	})

	result, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 3})
	require.NoError(t, err)

	session := result.Session
	require.Len(t, session.Items, 1, "cùng cặp (productId, variantId) phải gộp thành một dòng")
	assert.Equal(t, int64(4), session.Items[0].Quantity)
	assert.Equal(t, float64(120000), session.Items[0].Price)
	assert.Equal(t, float64(480000), session.Totals.Total)
	assert.Equal(t, int64(4), result.Line.Quantity, "dòng trả về phải là dòng sau khi gộp")
}

func TestAddItem_ClampsQuantityPerCall(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	// Vượt cap thì chặn về cap
	result, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Session.Items[0].Quantity)

	// 0 mặc định là 1, và tổng cộng dồn được phép vượt cap
	result, err = engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.Session.Items[0].Quantity)
}

func TestAddItem_NormalizesNumericRefs(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()

	// JSON decode id số về float64; phải khớp với id "12345" trong danh mục
	result, err := engine.AddItem(context.Background(), ref, AddItemArgs{ProductRef: float64(12345), Quantity: 1})
	require.NoError(t, err)
	require.Len(t, result.Session.Items, 1)
	assert.Equal(t, "12345", result.Session.Items[0].ProductId)
}

func TestAddItem_UnknownVariant(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)

	_, err := engine.AddItem(context.Background(), testRef(), AddItemArgs{ProductRef: "khong-ton-tai", Quantity: 1})
	require.ErrorIs(t, err, common.ErrVariantNotFound)

	// Phiên vẫn được tạo nhưng không có dòng hàng nào được ghi
	assert.Equal(t, 1, store.count())
}

func TestAddItem_FailedPersistDoesNotPoisonCache(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	first, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Session.Items[0].Quantity)

	// Một lần ghi hỏng vì hạ tầng (không phải conflict): bản cache không được
	// giữ lại mutation chưa persist
	store.failNextUpdate(common.ErrConnection)
	_, err = engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.ErrorIs(t, err, common.ErrConnection)

	retry, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), retry.Session.Items[0].Quantity, "lần thêm hỏng không được để lại số lượng trong cache")

	stored, err := store.FindById(ctx, first.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Items[0].Quantity, "store chỉ được ghi nhận hai lần thêm thành công")
	assert.Equal(t, float64(300000), stored.Totals.Total)
}

func TestAddItem_TerminalOrderImmutable(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	result, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 2})
	require.NoError(t, err)
	orderID := result.Session.ID

	// Một instance khác chốt đơn dưới chân: cache của engine này còn bản active
	store.markCompleted(orderID)

	_, err = engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "12345", Quantity: 1})
	require.ErrorIs(t, err, common.ErrOrderTerminal)

	// Đơn đã chốt là bất biến: items và totals không được đổi
	stored, err := store.FindById(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, ordermodels.StatusCompleted, stored.Status)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(2), stored.Items[0].Quantity)
	assert.Equal(t, float64(300000), stored.Totals.Total)

	// Cache đã bị gỡ: resolve tiếp theo không còn thấy phiên active
	_, err = engine.ResolveSession(ctx, ref, false)
	require.ErrorIs(t, err, common.ErrNoActiveSession)
}

func TestRemoveItem_NeverCreates(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)

	_, err := engine.RemoveItem(context.Background(), testRef(), "ao-thun", "size-m")
	require.ErrorIs(t, err, common.ErrNoActiveSession)
	assert.Equal(t, 0, store.count(), "thao tác gỡ không bao giờ tạo phiên")
}

func TestRemoveItem_UnknownItem(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.NoError(t, err)

	_, err = engine.RemoveItem(ctx, ref, "12345", nil)
	require.ErrorIs(t, err, common.ErrItemNotFound)
}

func TestRemoveItem_RecomputesStageAndTotals(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 2})
	require.NoError(t, err)

	result, err := engine.RemoveItem(ctx, ref, "ao-thun", "size-m")
	require.NoError(t, err)
	assert.Empty(t, result.Session.Items)
	assert.Equal(t, float64(0), result.Session.Totals.Total)
	assert.Equal(t, ordermodels.StageCollectingItems, result.Session.Stage, "gỡ hết hàng phải quay về collecting_items")

	// Dòng gỡ được trả về nguyên trạng trước khi gỡ
	assert.Equal(t, "ao-thun", result.Line.ProductId)
	assert.Equal(t, int64(2), result.Line.Quantity)
	assert.Equal(t, float64(300000), result.Line.LineTotal)
}

func TestUpdateCustomerInfo_BlankDoesNotClear(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	result, err := engine.UpdateCustomerInfo(ctx, ref, CustomerInfoArgs{Name: "Chị Hoa", Phone: "0907654321"})
	require.NoError(t, err)
	assert.False(t, result.IsComplete)
	assert.Equal(t, []string{"address"}, result.MissingFields)

	// Trường rỗng hoặc toàn khoảng trắng không được xóa dữ liệu đã thu thập
	result, err = engine.UpdateCustomerInfo(ctx, ref, CustomerInfoArgs{Name: "   ", Address: "25 Nguyễn Huệ"})
	require.NoError(t, err)
	assert.Equal(t, "Chị Hoa", result.Session.Info.Name)
	assert.Equal(t, "25 Nguyễn Huệ", result.Session.Info.Address)
	assert.True(t, result.IsComplete)
	assert.Nil(t, result.MissingFields)
}

func TestUpdateCustomerInfo_EmailOptional(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	result, err := engine.UpdateCustomerInfo(ctx, ref, CustomerInfoArgs{Email: "hoa@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "hoa@example.com", result.Session.Info.Email)

	// Email là trường tùy chọn: không nằm trong danh sách thiếu và không đủ để xác nhận
	assert.False(t, result.IsComplete)
	assert.Equal(t, []string{"name", "phone", "address"}, result.MissingFields)
}

func TestConfirmOrder_EmptyOrder(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)

	_, err = engine.ConfirmOrder(ctx, ref)
	require.ErrorIs(t, err, common.ErrEmptyOrder)
}

func TestConfirmOrder_IncompleteInfo(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.NoError(t, err)
	_, err = engine.UpdateCustomerInfo(ctx, ref, CustomerInfoArgs{Name: "Chị Hoa"})
	require.NoError(t, err)

	_, err = engine.ConfirmOrder(ctx, ref)
	require.Error(t, err)

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrCodeOrderState.Code, customErr.Code.Code)

	details, ok := customErr.Details.(map[string]any)
	require.True(t, ok, "lỗi thiếu thông tin phải kèm details dạng map")
	assert.Equal(t, []string{"phone", "address"}, details["missingFields"])
}

func TestConfirmOrder_NeverCreates(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)

	_, err := engine.ConfirmOrder(context.Background(), testRef())
	require.ErrorIs(t, err, common.ErrNoActiveSession)

	_, err = engine.CancelOrder(context.Background(), testRef())
	require.ErrorIs(t, err, common.ErrNoActiveSession)

	assert.Equal(t, 0, store.count())
}

func TestConfirmOrder_HappyPath(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 2})
	require.NoError(t, err)
	_, err = engine.UpdateCustomerInfo(ctx, ref, CustomerInfoArgs{
		Name:    "Chị Hoa",
		Phone:   "0907654321",
		Address: "25 Nguyễn Huệ",
	})
	require.NoError(t, err)

	confirmed, err := engine.ConfirmOrder(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, ordermodels.StatusCompleted, confirmed.Status)
	assert.Equal(t, ordermodels.StageCompleted, confirmed.Stage)
	assert.NotZero(t, confirmed.ConfirmedAt)

	// Phiên đã chốt là bất biến: resolve không còn thấy phiên active
	_, err = engine.ResolveSession(ctx, ref, false)
	require.ErrorIs(t, err, common.ErrNoActiveSession)

	// Khách quay lại mua tiếp thì bắt đầu phiên hoàn toàn mới
	fresh, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "12345", Quantity: 1})
	require.NoError(t, err)
	assert.NotEqual(t, confirmed.ID, fresh.Session.ID)
	assert.Equal(t, ordermodels.StatusActive, fresh.Session.Status)
	require.Len(t, fresh.Session.Items, 1)
}

func TestCancelOrder_EmptySessionAllowed(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	_, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)

	cancelled, err := engine.CancelOrder(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, ordermodels.StatusCancelled, cancelled.Status)
	assert.Equal(t, ordermodels.StageCancelled, cancelled.Stage)
	assert.NotZero(t, cancelled.CancelledAt)
}

func TestVersionConflict_EvictsCache(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	session, err := engine.ResolveSession(ctx, ref, true)
	require.NoError(t, err)

	// Một writer khác đẩy version lên dưới chân engine
	store.bumpVersion(session.ID)

	_, err = engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.ErrorIs(t, err, common.ErrOrderConflict)

	// Cache đã bị gỡ: resolve tiếp theo đọc lại store và thấy version mới
	callsBefore := store.findActiveCalls
	refreshed, err := engine.ResolveSession(ctx, ref, false)
	require.NoError(t, err)
	assert.Greater(t, store.findActiveCalls, callsBefore)
	assert.Equal(t, session.Version+1, refreshed.Version)

	// Thao tác lặp lại trên bản mới phải thành công
	_, err = engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
	require.NoError(t, err)
}

func TestConcurrentAddItem_SerializedPerSession(t *testing.T) {
	engine, store, _, _ := newTestEngine(t)
	ref := testRef()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.AddItem(ctx, ref, AddItemArgs{ProductRef: "ao-thun", VariantRef: "size-m", Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err, "ghi tuần tự theo keyLock không được sinh conflict")
	}

	session, err := engine.ResolveSession(ctx, ref, false)
	require.NoError(t, err)
	assert.Equal(t, 1, store.count())
	require.Len(t, session.Items, 1)
	assert.Equal(t, int64(10), session.Items[0].Quantity, "10 lần thêm đồng thời phải cộng dồn đủ")
}
