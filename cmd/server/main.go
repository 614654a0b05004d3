package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat_commerce/internal/database"
	"chat_commerce/internal/global"
	"chat_commerce/internal/logger"
	"chat_commerce/internal/worker"

	"github.com/gofiber/fiber/v3"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// startUsageFlushWorker khởi tạo và chạy worker gom usage records (background)
func startUsageFlushWorker(ctx context.Context) {
	log := logger.GetAppLogger()

	cfg := global.ServerConfig
	interval := time.Duration(cfg.Usage_FlushIntervalSecs) * time.Second
	flushWorker, err := worker.NewUsageFlushWorker(interval, cfg.Usage_FlushBatchSize)
	if err != nil {
		log.WithError(err).Error("Failed to create usage flush worker, continuing without usage metering")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("📈 [USAGE_FLUSH] Worker goroutine panic")
			}
		}()

		log.Info("📈 [USAGE_FLUSH] Starting usage flush worker...")
		flushWorker.Start(ctx)
		log.Warn("📈 [USAGE_FLUSH] Worker đã dừng (có thể do context cancelled)")
	}()
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	log := logger.GetAppLogger()

	app, err := InitFiberApp()
	if err != nil {
		log.Fatalf("Failed to initialize Fiber app: %v", err)
	}

	// Shutdown gracefully khi nhận SIGINT/SIGTERM
	go func(app *fiber.App) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		log.Infof("Received signal %v, shutting down...", sig)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error during server shutdown")
		}
	}(app)

	address := global.ServerConfig.Address
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo và chạy worker gom usage records
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	startUsageFlushWorker(workerCtx)

	// Chạy Fiber server trên main thread
	main_thread()

	// Server đã dừng: dừng worker (worker sẽ flush lần cuối) và đóng kết nối database
	cancelWorker()
	log := logger.GetAppLogger()
	if err := database.CloseInstance(global.MongoDB_Session); err != nil {
		log.WithError(err).Error("Error closing MongoDB connection")
	}
	log.Info("Server stopped")
}
