// Package ordersvc - Test keyLock tuần tự hóa theo key.
package ordersvc

import (
	"sync"
	"testing"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := newKeyLock()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("cust|biz|whatsapp")
			counter++
			locks.Unlock("cust|biz|whatsapp")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("100 lần tăng dưới lock phải ra đúng 100, nhận được %d", counter)
	}
}

func TestKeyLock_SameKeySameStripe(t *testing.T) {
	locks := newKeyLock()
	if locks.stripeFor("abc") != locks.stripeFor("abc") {
		t.Error("cùng key phải luôn rơi vào cùng stripe")
	}
}

func TestKeyLock_DifferentKeysDoNotDeadlock(t *testing.T) {
	locks := newKeyLock()

	// Giữ một key rồi khóa key khác từ goroutine khác: không được kẹt
	locks.Lock("key-a")
	done := make(chan struct{})
	go func() {
		locks.Lock("key-b")
		locks.Unlock("key-b")
		close(done)
	}()

	select {
	case <-done:
	default:
		// key-b có thể rơi trùng stripe với key-a; chờ sau khi nhả key-a
	}
	locks.Unlock("key-a")
	<-done
}
