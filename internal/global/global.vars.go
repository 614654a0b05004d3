package global

import (
	"chat_commerce/config"
	"chat_commerce/internal/registry"

	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Businesses      string // Tên collection cho business (tenant)
	CatalogProducts string // Tên collection cho sản phẩm trong catalog
	CatalogVariants string // Tên collection cho biến thể sản phẩm
	OrderSessions   string // Tên collection cho phiên đơn hàng (active order session)
	UsageRecords    string // Tên collection cho usage records (metering)
	WebhookLogs     string // Tên collection cho webhook logs
}

// Các biến toàn cục
var MongoDB_Session *mongo.Client               // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration          // Cấu hình của server
var MongoDB_ColNames CollectionName             // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
