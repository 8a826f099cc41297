package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev_secret_change_me"

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	GoEnv    string     // dev/prod
	LogLevel slog.Level // debug/info/warn/error

	StoreDriver string // postgres / memory
	SeedFile    string // memoryのときの初期データ（任意）

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // disable

	JWTSecret string // JWT署名シークレット

	RejectOversell  bool          // 在庫不足の注文を失敗させる
	ShutdownTimeout time.Duration // graceful shutdownの待ち時間
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func (c Config) IsDev() bool {
	return c.GoEnv == "dev"
}

// DSN は DATABASE_URL がなければ POSTGRES_* から組み立てる
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	rejectOversell, err := boolEnv("CHECKOUT_REJECT_OVERSELL", false)
	if err != nil {
		return Config{}, err
	}
	shutdown, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	level, err := levelEnv("LOG_LEVEL")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: strings.TrimPrefix(getenv("PORT", "8080"), ":"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: level,

		StoreDriver: getenv("STORE_DRIVER", StoreDriverPostgres),
		SeedFile:    os.Getenv("SEED_FILE"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "marketplace"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RejectOversell:  rejectOversell,
		ShutdownTimeout: shutdown,
	}

	//必須チェック
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		return Config{}, fmt.Errorf("STORE_DRIVER must be postgres or memory")
	}
	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func levelEnv(key string) (slog.Level, error) {
	var level slog.Level
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("%s must be debug, info, warn or error: %w", key, err)
	}
	return level, nil
}
