package database

import (
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mytheresa/warehouse-service/config"
	"github.com/mytheresa/warehouse-service/models"
)

const slowQueryThreshold = 200 * time.Millisecond

// Option adjusts the gorm configuration before the connection is opened.
type Option func(*gorm.Config)

// WithNowFunc overrides the clock used for automatic timestamps.
func WithNowFunc(now func() time.Time) Option {
	return func(c *gorm.Config) { c.NowFunc = now }
}

// WithLogger replaces the SQL logger.
func WithLogger(l logger.Interface) Option {
	return func(c *gorm.Config) { c.Logger = l }
}

// Open connects to PostgreSQL through the configured driver and applies the
// pool limits.
func Open(cfg *config.Config, opts ...Option) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: NewLogger(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
	for _, opt := range opts {
		opt(gormCfg)
	}

	pgCfg := postgres.Config{DSN: cfg.DatabaseURL}
	if cfg.DBDriver == config.DriverPq {
		pgCfg.DriverName = config.DriverPq
	}
	dialector := postgres.New(pgCfg)
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unable to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date with the models.
func Migrate(db *gorm.DB) error {
	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewLogger returns a gorm logger writing to stderr at the named level.
func NewLogger(level string) logger.Interface {
	return logger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  ParseLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// ParseLogLevel maps silent, error, warn and info onto gorm log levels.
// Unknown names fall back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
