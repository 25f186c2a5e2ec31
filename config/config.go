package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/restaurant-orders/storage"
	"github.com/yeremiapane/restaurant-orders/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

type Config struct {
	AppEnv        string
	Port          string
	BindAddr      string
	CORSOrigin    string
	GinMode       string
	StorageDriver string
	SQLitePath    string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	SessionSecret string
	SessionTTL    time.Duration
	WeekStart     time.Weekday
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "production"),
		Port:          getEnv("PORT", "8080"),
		BindAddr:      getEnv("BIND_ADDR", "127.0.0.1"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		GinMode:       getEnv("GIN_MODE", "release"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "restaurant.db"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "restaurant:"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.WeekStart, err = parseWeekStart(getEnv("WEEK_START", "sunday")); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverRedis:
	case DriverMySQL:
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required when STORAGE_DRIVER=mysql")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// InitDB opens the SQL database for the sqlite and mysql drivers.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if cfg.AppEnv == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.MySQLDSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %s has no SQL database", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.StorageDriver == DriverSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	utils.InfoLogger.Printf("Connected to %s database", cfg.StorageDriver)
	return db, nil
}

// InitRedis connects and pings the redis server.
func InitRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
	}
	utils.InfoLogger.Printf("Connected to redis at %s", cfg.RedisAddr)
	return client, nil
}

// InitKV builds the persistence adapter for the configured driver. The
// returned close function releases the underlying connection.
func InitKV(ctx context.Context, cfg *Config) (storage.KV, func() error, error) {
	if cfg.StorageDriver == DriverRedis {
		client, err := InitRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisKV(client, cfg.RedisPrefix), client.Close, nil
	}

	db, err := InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	kv := storage.NewGormKV(db)
	if err := kv.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("migrate key-value table: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return kv, sqlDB.Close, nil
}

func parseWeekStart(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("WEEK_START must be sunday or monday, got %q", raw)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
