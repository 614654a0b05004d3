// Package worker - Test gom usage counter từ order mutation events.
package worker

import (
	"context"
	"testing"
	"time"

	businesssvc "chat_commerce/internal/api/business/service"
	"chat_commerce/internal/api/events"
)

func newCollectOnlyWorker() *UsageFlushWorker {
	return &UsageFlushWorker{
		interval:  time.Minute,
		batchSize: 200,
		pending:   make(map[usageKey]*usageCounts),
	}
}

func TestCollect_CountsMessagesAndOrders(t *testing.T) {
	w := newCollectOnlyWorker()
	ctx := context.Background()

	w.collect(ctx, events.OrderMutationEvent{BusinessID: "biz-1", Operation: events.OrderOpAddItem})
	w.collect(ctx, events.OrderMutationEvent{BusinessID: "biz-1", Operation: events.OrderOpUpdateInfo})
	w.collect(ctx, events.OrderMutationEvent{BusinessID: "biz-1", Operation: events.OrderOpConfirm})

	key := usageKey{businessID: "biz-1", period: businesssvc.CurrentPeriod(time.Now())}
	counts, ok := w.pending[key]
	if !ok {
		t.Fatal("phải có counter cho biz-1 trong kỳ hiện tại")
	}
	// Mọi mutation là một tin nhắn, confirm tính thêm một đơn
	if counts.messages != 3 {
		t.Errorf("phải đếm 3 tin nhắn, nhận được %d", counts.messages)
	}
	if counts.orders != 1 {
		t.Errorf("chỉ confirm mới tính đơn, nhận được %d", counts.orders)
	}
}

func TestCollect_SeparatesBusinesses(t *testing.T) {
	w := newCollectOnlyWorker()
	ctx := context.Background()

	w.collect(ctx, events.OrderMutationEvent{BusinessID: "biz-1", Operation: events.OrderOpAddItem})
	w.collect(ctx, events.OrderMutationEvent{BusinessID: "biz-2", Operation: events.OrderOpAddItem})

	if len(w.pending) != 2 {
		t.Errorf("hai business phải có hai counter riêng, nhận được %d", len(w.pending))
	}
}

func TestRestore_MergesBackPendingCounts(t *testing.T) {
	w := newCollectOnlyWorker()
	key := usageKey{businessID: "biz-1", period: "2026-03"}

	// Số đếm mới phát sinh trong lúc flush đang chạy
	w.pending[key] = &usageCounts{messages: 2}

	w.restore(key, usageCounts{messages: 5, orders: 1})

	counts := w.pending[key]
	if counts.messages != 7 || counts.orders != 1 {
		t.Errorf("restore phải cộng dồn vào counter hiện có, nhận được %+v", *counts)
	}
}
