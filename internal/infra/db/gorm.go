package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	if cfg.IsDev() {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.InfoContext(ctx, "database connected", "host", cfg.PostgresHost, "db", cfg.PostgresDB)
	return gdb, nil
}

// Migrate はテーブルを作成・更新する
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Vendor{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Voucher{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.VoucherUsage{},
		&model.Return{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	)
}
