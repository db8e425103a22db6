package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/diewo77/warung-ledger/internal/config"
	"github.com/diewo77/warung-ledger/internal/db"
	"github.com/diewo77/warung-ledger/internal/i18n"
	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/logger"
	"github.com/diewo77/warung-ledger/internal/services"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbPath     string
	langFlag   string
	jsonOutput bool
	verbose    bool
)

// app is the state shared by every command once the database is open.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	gdb   *gorm.DB
	store *ledger.Store
	svc   *services.Services
	lang  string
}

var current *app

// skipPrepare marks commands that manage the schema themselves.
const skipPrepare = "skip-prepare"

var rootCmd = &cobra.Command{
	Use:   "kasir",
	Short: "Warung ledger - tabs, orders, checkout and kasbon",
	Long: `kasir keeps the books of a small food stall: open tabs, items ordered on
each tab, split checkout, kasbon (customer debt) and end-of-shift closing.

Configuration comes from the environment or a .env file (DB_DRIVER, DB_PATH,
DB_HOST, LOG_LEVEL, APP_LANG, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == cobra.ShellCompRequestCmd ||
			(cmd.HasParent() && cmd.Parent().Name() == "completion") {
			return nil
		}
		a, err := open(cmd.Annotations[skipPrepare] == "true")
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		sqlDB, err := current.gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	},
	Version: "0.4.0",
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		lang := i18n.DefaultLang
		if current != nil {
			lang = current.lang
		}
		output.Error("%s", describe(lang, err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "output language: id or en (overrides APP_LANG)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func open(skipSchema bool) (*app, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New("kasir", cfg.Log)

	gdb, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if !skipSchema {
		if err := db.Prepare(gdb, cfg); err != nil {
			return nil, err
		}
	}

	lang := i18n.DetectLanguage(cfg.App.Lang)
	if langFlag != "" {
		lang = i18n.DetectLanguage(langFlag)
	}
	store := ledger.New(gdb)
	return &app{
		cfg:   cfg,
		log:   log,
		gdb:   gdb,
		store: store,
		svc:   services.New(store, log),
		lang:  lang,
	}, nil
}

// describe renders err for the operator in their language.
func describe(lang string, err error) string {
	var ve *services.ValidationError
	if errors.As(err, &ve) && ve.Code == "" {
		parts := make([]string, 0, len(ve.Violations))
		for _, f := range ve.Violations.Fields() {
			parts = append(parts, f+": "+i18n.T(lang, ve.Violations[f]))
		}
		return strings.Join(parts, "; ")
	}
	if code := services.Code(err); code != "" {
		return i18n.T(lang, code)
	}
	return err.Error()
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

var thousandsGroups = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`),
	regexp.MustCompile(`^\d{1,3}(,\d{3})+$`),
}

// parseAmount accepts plain digits, or digits grouped in thousands by dots or
// by commas. Anything else, such as a decimal fraction, is rejected.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	for _, re := range thousandsGroups {
		if re.MatchString(clean) {
			clean = strings.NewReplacer(".", "", ",", "").Replace(clean)
			break
		}
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}

func money(n int64) string {
	return i18n.Rupiah(current.lang, n)
}

func tr(code string) string {
	return i18n.T(current.lang, code)
}
