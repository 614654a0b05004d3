package worker

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	businesssvc "chat_commerce/internal/api/business/service"
	"chat_commerce/internal/api/events"
	"chat_commerce/internal/logger"
)

// usageKey gom counter theo (business, kỳ)
type usageKey struct {
	businessID string
	period     string
}

// usageCounts số đếm cộng dồn trong bộ nhớ chờ flush
type usageCounts struct {
	messages int64
	orders   int64
}

// UsageFlushWorker gom usage từ các sự kiện mutation của phiên đặt hàng
// vào bộ đếm trong bộ nhớ, rồi flush xuống usage_records theo chu kỳ.
// Metering chạy sau commit qua event, không nằm trên đường xử lý webhook.
type UsageFlushWorker struct {
	usageService *businesssvc.UsageService
	interval     time.Duration // Khoảng thời gian giữa các lần flush
	batchSize    int           // Số key tối đa mỗi lần flush

	mu      sync.Mutex
	pending map[usageKey]*usageCounts
}

// NewUsageFlushWorker tạo mới UsageFlushWorker và đăng ký nhận OrderMutationEvent.
// Tham số:
//   - interval: Chu kỳ flush (mặc định: 5 phút)
//   - batchSize: Số key tối đa mỗi lần flush (mặc định: 200)
func NewUsageFlushWorker(interval time.Duration, batchSize int) (*UsageFlushWorker, error) {
	usageService, err := businesssvc.NewUsageService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 5 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 200
	}

	w := &UsageFlushWorker{
		usageService: usageService,
		interval:     interval,
		batchSize:    batchSize,
		pending:      make(map[usageKey]*usageCounts),
	}

	events.OnOrderMutation(w.collect)
	return w, nil
}

// collect nhận một sự kiện mutation và cộng vào bộ đếm trong bộ nhớ
func (w *UsageFlushWorker) collect(ctx context.Context, e events.OrderMutationEvent) {
	key := usageKey{
		businessID: e.BusinessID,
		period:     businesssvc.CurrentPeriod(time.Now()),
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	counts, ok := w.pending[key]
	if !ok {
		counts = &usageCounts{}
		w.pending[key] = counts
	}

	// Mọi mutation đều là một tin nhắn đã xử lý; confirm tính thêm một đơn
	counts.messages++
	if e.Operation == events.OrderOpConfirm {
		counts.orders++
	}
}

// Start chạy worker trong vòng lặp: mỗi interval flush bộ đếm xuống usage_records
func (w *UsageFlushWorker) Start(ctx context.Context) {
	log := logger.WithModule("usage_flush_worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("📈 [USAGE_FLUSH] Starting Usage Flush Worker...")

	for {
		select {
		case <-ctx.Done():
			// Flush lần cuối trước khi dừng để không mất số đếm
			w.flush(context.Background())
			log.Info("📈 [USAGE_FLUSH] Usage Flush Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📈 [USAGE_FLUSH] Panic khi flush usage, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.flush(ctx)
			}()
		}
	}
}

// flush ghi tối đa batchSize key xuống store, key lỗi được trả lại bộ đếm chờ lần sau
func (w *UsageFlushWorker) flush(ctx context.Context) {
	log := logger.WithModule("usage_flush_worker")

	w.mu.Lock()
	batch := make(map[usageKey]usageCounts, w.batchSize)
	for key, counts := range w.pending {
		if len(batch) >= w.batchSize {
			break
		}
		batch[key] = *counts
		delete(w.pending, key)
	}
	w.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	flushed := 0
	for key, counts := range batch {
		businessID, err := primitive.ObjectIDFromHex(key.businessID)
		if err != nil {
			log.WithFields(map[string]interface{}{
				"businessId": key.businessID,
			}).Warn("📈 [USAGE_FLUSH] Business id không hợp lệ, bỏ số đếm")
			continue
		}

		if err := w.usageService.Increment(ctx, businessID, key.period, counts.messages, counts.orders); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"businessId": key.businessID,
				"period":     key.period,
			}).Warn("📈 [USAGE_FLUSH] Flush thất bại, trả số đếm lại hàng chờ")
			w.restore(key, counts)
			continue
		}
		flushed++
	}

	if flushed > 0 {
		log.WithFields(map[string]interface{}{
			"flushed": flushed,
		}).Info("📈 [USAGE_FLUSH] Đã flush usage records")
	}
}

// restore trả số đếm flush thất bại về hàng chờ
func (w *UsageFlushWorker) restore(key usageKey, counts usageCounts) {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.pending[key]
	if !ok {
		existing = &usageCounts{}
		w.pending[key] = existing
	}
	existing.messages += counts.messages
	existing.orders += counts.orders
}
