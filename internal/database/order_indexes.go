// Package database - Index cho các collection của hệ thống đặt hàng (compound, nested fields).
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chat_commerce/internal/global"
)

// CreateOrderIndexes tạo các index cho order_sessions và các collection liên quan.
// Gọi một lần khi khởi động server, sau khi đăng ký collection vào registry.
func CreateOrderIndexes(ctx context.Context, db *mongo.Database) error {
	// order_sessions: (customerId, businessId, channel, status, updatedAt desc)
	// — truy vấn phiên active mới nhất của một khách trên một kênh
	orderSessions := db.Collection(global.MongoDB_ColNames.OrderSessions)
	if _, err := orderSessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "customerId", Value: 1},
			{Key: "businessId", Value: 1},
			{Key: "channel", Value: 1},
			{Key: "status", Value: 1},
			{Key: "updatedAt", Value: -1},
		},
		Options: options.Index().SetName("order_session_resolve"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// order_sessions: (businessId, status, updatedAt) — báo cáo và dọn phiên idle
	if _, err := orderSessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "businessId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "updatedAt", Value: -1},
		},
		Options: options.Index().SetName("order_session_business_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// catalog_variants: (businessId, productId, variantId) unique — tra cứu biến thể khi thêm hàng
	catalogVariants := db.Collection(global.MongoDB_ColNames.CatalogVariants)
	if _, err := catalogVariants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "businessId", Value: 1},
			{Key: "productId", Value: 1},
			{Key: "variantId", Value: 1},
		},
		Options: options.Index().SetName("catalog_variant_lookup").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// catalog_products: (businessId, productId) unique
	catalogProducts := db.Collection(global.MongoDB_ColNames.CatalogProducts)
	if _, err := catalogProducts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "businessId", Value: 1},
			{Key: "productId", Value: 1},
		},
		Options: options.Index().SetName("catalog_product_lookup").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// businesses: (channels.channel, channels.externalId) sparse — resolve business từ webhook
	businesses := db.Collection(global.MongoDB_ColNames.Businesses)
	if _, err := businesses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "channels.channel", Value: 1},
			{Key: "channels.externalId", Value: 1},
		},
		Options: options.Index().SetName("business_channel_identity").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// usage_records: (businessId, period) — cộng dồn usage theo kỳ
	usageRecords := db.Collection(global.MongoDB_ColNames.UsageRecords)
	if _, err := usageRecords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "businessId", Value: 1},
			{Key: "period", Value: 1},
		},
		Options: options.Index().SetName("usage_record_business_period").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// webhook_logs: (businessId, createdAt desc) — tra cứu log gần nhất theo business
	webhookLogs := db.Collection(global.MongoDB_ColNames.WebhookLogs)
	if _, err := webhookLogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "businessId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("webhook_log_business_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
