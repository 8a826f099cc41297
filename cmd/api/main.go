package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	"marketplace/internal/infra/memory"
	infraRepo "marketplace/internal/infra/repository"
	repo "marketplace/internal/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// STORE_DRIVERに応じてTransactionManagerを作る
func openStore(ctx context.Context, cfg config.Config) (repo.TransactionManager, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		if cfg.SeedFile != "" {
			f, err := os.Open(cfg.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()
			if err := store.LoadSeed(f); err != nil {
				return nil, err
			}
		}
		slog.InfoContext(ctx, "using in-memory store", "seed", cfg.SeedFile)
		return store, nil
	}

	//DB接続
	gormDB, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return infraRepo.NewTxManagerGorm(gormDB), nil
}

func run() error {
	//.envは任意
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tx, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	//usecaseに渡す部品
	clock := &realClock{}

	//Usecase生成
	checkoutUC := usecase.NewCheckoutUsecase(tx, validator.NewCheckoutValidator(), usecase.RandomOrderNumbers{}, clock, logger, cfg.RejectOversell)
	orderUC := usecase.NewOrderUsecase(tx, clock)
	sellerUC := usecase.NewSellerOrderUsecase(tx, clock)
	returnUC := usecase.NewReturnUsecase(tx, validator.NewReturnValidator(), clock)
	stockUC := usecase.NewInventoryUsecase(tx, clock)
	auditUC := usecase.NewAuditLogUsecase(tx)

	//Handler生成
	e := server.New(logger, server.Handlers{
		Orders:  handler.NewOrderHandler(checkoutUC, orderUC),
		Seller:  handler.NewSellerHandler(sellerUC, returnUC),
		Returns: handler.NewReturnHandler(returnUC),
		Admin:   handler.NewAdminHandler(stockUC, auditUC),
	}, cfg.JWTSecret)

	//Server起動
	return server.Start(ctx, e, ":"+cfg.Port, cfg.ShutdownTimeout)
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
