package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_PATH", "DB_PORT", "MIGRATIONS", "DB_SEED", "APP_LANG"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver got %q", cfg.Database.Driver)
	}
	if cfg.Database.Path != "kasir.db" {
		t.Fatalf("unexpected path %q", cfg.Database.Path)
	}
	if cfg.Database.Port != 5432 {
		t.Fatalf("unexpected port %d", cfg.Database.Port)
	}
	if cfg.App.Migrations || !cfg.App.Seed {
		t.Fatalf("unexpected app flags %+v", cfg.App)
	}
	if cfg.App.Lang != "id" {
		t.Fatalf("expected id lang got %q", cfg.App.Lang)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("MIGRATIONS", "yes")
	t.Setenv("DB_SEED", "0")
	cfg := Load()
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver got %q", cfg.Database.Driver)
	}
	if cfg.Database.Port != 6543 {
		t.Fatalf("expected port 6543 got %d", cfg.Database.Port)
	}
	if !cfg.App.Migrations || cfg.App.Seed {
		t.Fatalf("unexpected app flags %+v", cfg.App)
	}
	want := "postgres://kasir:kasir@db:6543/kasir?sslmode=disable"
	if got := cfg.Database.URL(); got != want {
		t.Fatalf("URL() = %q want %q", got, want)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	if got := Load().Database.Port; got != 5432 {
		t.Fatalf("expected fallback port got %d", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "mysql"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	cfg.Database = DatabaseConfig{Driver: DriverSQLite}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty sqlite path")
	}
}
