package db

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/diewo77/warung-ledger/internal/config"
	"github.com/diewo77/warung-ledger/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var passwordRegex = regexp.MustCompile(`(password=)([^\s]+)`)

// Open connects to the configured store. sqlite is limited to a single open
// connection so writes are serialised inside the process.
func Open(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         logger.Gorm(log, cfg.Debug),
		TranslateError: true,
	}

	switch cfg.Driver {
	case config.DriverSQLite, "":
		dsn := SQLiteDSN(cfg.Path)
		gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		log.Debug("database opened", "driver", config.DriverSQLite, "dsn", dsn)
		return gdb, nil

	case config.DriverPostgres:
		dsn := cfg.DSN()
		var gdb *gorm.DB
		var err error
		// Retry simply to give Postgres time to start.
		for i := 0; i < 5; i++ {
			gdb, err = gorm.Open(postgres.Open(dsn), gcfg)
			if err == nil {
				break
			}
			log.Warn("database connection failed, retrying", "attempt", i+1, "error", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect database after retries: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("db ping failed: %w", err)
		}
		log.Info("database opened", "driver", config.DriverPostgres, "dsn", MaskDSN(dsn))
		return gdb, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
}

// SQLiteDSN makes sure foreign key enforcement is switched on for the connection.
func SQLiteDSN(path string) string {
	s := strings.Trim(strings.TrimSpace(path), "\"'")
	lower := strings.ToLower(s)
	if strings.Contains(lower, "_foreign_keys=") || strings.Contains(lower, "_fk=") {
		return s
	}
	if strings.Contains(s, "?") {
		return s + "&_foreign_keys=on"
	}
	return s + "?_foreign_keys=on"
}

// MaskDSN hides the password of a key=value DSN for logging.
func MaskDSN(dsn string) string {
	return passwordRegex.ReplaceAllString(dsn, `${1}***`)
}
