package ordersvc

import (
	"hash/fnv"
	"sync"
)

// keyLock tuần tự hóa các thao tác trên cùng một phiên đặt hàng theo key.
// Dùng stripe cố định thay vì map mutex theo key để không phải dọn rác mutex;
// hai key khác nhau rơi vào cùng stripe chỉ bị chờ nhau, không sai logic.
type keyLock struct {
	stripes []sync.Mutex
}

const keyLockStripes = 128

// newKeyLock tạo keyLock với số stripe cố định
func newKeyLock() *keyLock {
	return &keyLock{
		stripes: make([]sync.Mutex, keyLockStripes),
	}
}

func (l *keyLock) stripeFor(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &l.stripes[h.Sum32()%uint32(len(l.stripes))]
}

// Lock khóa stripe của key
func (l *keyLock) Lock(key string) {
	l.stripeFor(key).Lock()
}

// Unlock mở stripe của key
func (l *keyLock) Unlock(key string) {
	l.stripeFor(key).Unlock()
}
