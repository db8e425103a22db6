package commands

import (
	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/diewo77/warung-ledger/internal/db"
	"github.com/spf13/cobra"
)

var (
	migrateSQL  bool
	migrateSeed bool
)

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Bring the database schema up to date",
	Long:        "Applies the schema with gorm AutoMigrate, or the versioned SQL migrations with --sql.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipPrepare: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if migrateSQL {
			err = db.MigrateSQL(current.gdb, current.cfg.Database)
		} else {
			err = db.Migrate(current.gdb)
		}
		if err != nil {
			return err
		}
		output.Success("schema ready (%s)", current.cfg.Database.Driver)
		if migrateSeed {
			if err := db.Seed(current.gdb); err != nil {
				return err
			}
			output.Success("seed data loaded")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSQL, "sql", false, "use the embedded SQL migrations")
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "load the default categories and presets")
	rootCmd.AddCommand(migrateCmd)
}
