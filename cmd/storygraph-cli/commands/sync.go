package commands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"storygraph-backend/internal/components/chrono"
	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/notesync"
	"storygraph-backend/internal/reconcile"
	configlibsql "storygraph-backend/lib/configutil/libsql"
	"storygraph-backend/lib/notestore"
	"storygraph-backend/lib/notestore/mongostore"
	"storygraph-backend/lib/serviceutil"
	libtelemetry "storygraph-backend/lib/telemetry"
	"time"

	"github.com/spf13/cobra"
)

type noteStore interface {
	reconcile.Store
	List(ctx context.Context) ([]reconcile.Record, error)
}

// openStore opens the configured note store, closeFn must be called when done.
func openStore(ctx context.Context, config StoreConfig) (store noteStore, closeFn func(), err error) {
	switch config.Driver {
	case "sqlite", "libsql":
		dbConfig := configlibsql.Struct{File: config.Dsn}
		if config.Driver == "libsql" || configlibsql.IsRemote(config.Dsn) {
			dbConfig = configlibsql.Struct{Url: config.Dsn, AuthToken: config.AuthToken}
		}
		var db *sql.DB
		db, err = dbConfig.OpenDB()
		if err != nil {
			return nil, nil, err
		}
		notes := notestore.NewStore(db)
		err = notes.Migrate(ctx)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return notes, func() { db.Close() }, nil
	case "mongo":
		var notes mongostore.Store
		notes, err = mongostore.Open(ctx, mongostore.Config{
			Uri:        config.Dsn,
			Database:   config.Database,
			Collection: config.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return notes, func() { notes.Close(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", config.Driver)
	}
}

func printSummary(summary notesync.Summary) {
	out, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		serviceutil.Fatal("failed to marshal summary", err)
	}
	fmt.Println(string(out))
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy your journal history into the note store, skipping entries that already exist.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv(cmd)
		interval, _ := cmd.Flags().GetDuration("interval")
		cronSpec, _ := cmd.Flags().GetString("cron")
		ctx := cmd.Context()

		store, closeStore, err := openStore(ctx, e.config.Store)
		if err != nil {
			serviceutil.Fatal("failed to open note store", err)
		}
		defer closeStore()

		tel := telemetry.SlogAPI{}
		syncer := notesync.NewSyncer(
			e.scraper,
			e.scraper,
			reconcile.NewReconciler(store, tel),
			tel,
		)

		logRun := func(summary notesync.Summary, err error) {
			if err != nil {
				return
			}
			slog.Info(
				"sync finished",
				"created", summary.Created,
				"already_exists", summary.AlreadyExists,
				"skipped", summary.Skipped,
			)
		}

		if cronSpec != "" {
			scheduler := chrono.NewStandardCron(tel, nil)
			err = scheduler.Cron(cronSpec, func() {
				summary, err := syncer.Run(ctx)
				if err != nil {
					slog.Warn("sync failed", "err", err)
				}
				logRun(summary, err)
			})
			if err != nil {
				scheduler.Stop()
				closeStore()
				serviceutil.Fatal("failed to schedule sync", err)
			}
			libtelemetry.InstrumentPerfStats(ctx, time.Minute)
			<-ctx.Done()
			scheduler.Stop()
			return
		}

		if interval <= 0 {
			summary, err := syncer.Run(ctx)
			if err != nil {
				closeStore()
				serviceutil.Fatal("failed to sync", err)
			}
			printSummary(summary)
			return
		}

		libtelemetry.InstrumentPerfStats(ctx, time.Minute)
		err = syncer.RunEvery(ctx, interval, logRun)
		if err != nil && ctx.Err() == nil {
			closeStore()
			serviceutil.Fatal("sync loop stopped", err)
		}
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print every note in the note store.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		config, err := readConfig(path)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		asTable, _ := cmd.Flags().GetBool("table")

		store, closeStore, err := openStore(cmd.Context(), config.Store)
		if err != nil {
			serviceutil.Fatal("failed to open note store", err)
		}
		defer closeStore()

		records, err := store.List(cmd.Context())
		if err != nil {
			closeStore()
			serviceutil.Fatal("failed to list notes", err)
		}
		if asTable {
			renderRecords(records)
			return
		}
		out, err := json.MarshalIndent(records, "", "    ")
		if err != nil {
			closeStore()
			serviceutil.Fatal("failed to marshal notes", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	syncCmd.Flags().Duration("interval", 0, "Keep running, syncing once every interval (ex. 1h).")
	syncCmd.Flags().String("cron", "", "Keep running, syncing on a cron schedule (ex. \"0 */6 * * *\").")
	syncCmd.MarkFlagsMutuallyExclusive("interval", "cron")
	notesCmd.Flags().Bool("table", false, "Render the notes as a table.")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(notesCmd)
}
