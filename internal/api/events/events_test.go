// Package events - Test phát sự kiện fire-and-forget.
package events

import (
	"context"
	"testing"
	"time"
)

func TestEmitOrderMutation_DeliversToAllHandlers(t *testing.T) {
	got := make(chan OrderMutationEvent, 2)
	OnOrderMutation(func(ctx context.Context, e OrderMutationEvent) {
		got <- e
	})
	OnOrderMutation(func(ctx context.Context, e OrderMutationEvent) {
		got <- e
	})

	want := OrderMutationEvent{
		BusinessID: "biz-1",
		CustomerID: "cust-1",
		Channel:    "whatsapp",
		Operation:  OrderOpAddItem,
		OrderID:    "order-1",
	}
	EmitOrderMutation(context.Background(), want)

	for i := 0; i < 2; i++ {
		select {
		case e := <-got:
			if e != want {
				t.Errorf("handler nhận event %+v, muốn %+v", e, want)
			}
		case <-time.After(time.Second):
			t.Fatal("handler không nhận được event sau 1s")
		}
	}
}

func TestEmitOrderMutation_PanicDoesNotKillEmitter(t *testing.T) {
	done := make(chan struct{})
	OnOrderMutation(func(ctx context.Context, e OrderMutationEvent) {
		panic("handler hỏng")
	})
	OnOrderMutation(func(ctx context.Context, e OrderMutationEvent) {
		close(done)
	})

	EmitOrderMutation(context.Background(), OrderMutationEvent{Operation: OrderOpConfirm})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler sau handler panic không được gọi")
	}
}
