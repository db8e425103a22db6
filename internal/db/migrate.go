package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/warung-ledger/internal/config"
	"github.com/diewo77/warung-ledger/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// The postgres driver registers the postgres:// scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationFiles embed.FS

// Tables that must exist once the schema is in place.
var requiredTables = []string{"tabs", "menu_items", "order_lines", "debt_records", "categories", "suggestion_presets"}

// Models lists every persisted record kind in dependency order.
func Models() []any {
	return []any{
		&models.Tab{},
		&models.MenuItem{},
		&models.OrderLine{},
		&models.DebtRecord{},
		&models.Category{},
		&models.SuggestionPreset{},
	}
}

// Migrate applies the schema with gorm AutoMigrate.
func Migrate(gdb *gorm.DB) error {
	for _, m := range Models() {
		if err := gdb.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return checkTables(gdb)
}

// MigrateSQL applies the versioned SQL migrations embedded for the driver.
func MigrateSQL(gdb *gorm.DB, cfg config.DatabaseConfig) error {
	dir := "migrations/" + cfg.Driver
	src, err := iofs.New(migrationFiles, dir)
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}

	var m *migrate.Migrate
	switch cfg.Driver {
	case config.DriverSQLite:
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		// The driver shares gorm's pool, so m must not be closed here.
		driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("sqlite migrate driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite3", driver)
		if err != nil {
			return err
		}
		defer src.Close()
	case config.DriverPostgres:
		m, err = migrate.NewWithSourceInstance("iofs", src, cfg.URL())
		if err != nil {
			return err
		}
		defer m.Close()
	default:
		return fmt.Errorf("no sql migrations for driver %q", cfg.Driver)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sql migrations failed: %w", err)
	}
	return checkTables(gdb)
}

// Prepare brings the schema up to date and seeds reference data when asked to.
func Prepare(gdb *gorm.DB, cfg *config.Config) error {
	var err error
	if cfg.App.Migrations {
		err = MigrateSQL(gdb, cfg.Database)
	} else {
		err = Migrate(gdb)
	}
	if err != nil {
		return err
	}
	if cfg.App.Seed {
		return Seed(gdb)
	}
	return nil
}

func checkTables(gdb *gorm.DB) error {
	for _, table := range requiredTables {
		if !gdb.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
