package ordersvc

import (
	"sync"

	catalogsvc "chat_commerce/internal/api/catalog/service"
)

var (
	defaultEngine     *OrderEngine
	defaultEngineErr  error
	defaultEngineOnce sync.Once
)

// DefaultEngine trả về engine dùng chung của process.
// Engine giữ cache và lock theo phiên nên mọi đường vào (HTTP order, webhook)
// phải đi qua cùng một instance để giữ tính tuần tự.
func DefaultEngine() (*OrderEngine, error) {
	defaultEngineOnce.Do(func() {
		store, err := NewOrderSessionService()
		if err != nil {
			defaultEngineErr = err
			return
		}
		catalog, err := catalogsvc.NewCatalogVariantService()
		if err != nil {
			defaultEngineErr = err
			return
		}
		defaultEngine = NewOrderEngine(store, catalog)
	})
	return defaultEngine, defaultEngineErr
}
