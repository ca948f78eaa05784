package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"focusgrid/internal/dayrecord"
	"focusgrid/internal/importer"
	"focusgrid/internal/session"
	"focusgrid/internal/storage"
	"focusgrid/internal/update"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "focusgrid",
		Short:         "Marathon day scheduler and focus timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dbPath)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (default ~/.focusgrid/focusgrid.db)")

	root.AddCommand(newImportCmd(&dbPath))
	root.AddCommand(newArchiveCmd(&dbPath))
	return root
}

func loadConfig(dbPath string) update.RuntimeConfig {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	return cfg
}

func openStore(cfg update.RuntimeConfig, now time.Time) (*dayrecord.Store, *storage.SQLiteRepository, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.MigrateUp(repo.DB()); err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	store := dayrecord.NewStore(repo)
	if err := store.Init(context.Background(), now); err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return store, repo, nil
}

func runTUI(dbPath string) error {
	cfg := loadConfig(dbPath)
	store, repo, err := openStore(cfg, time.Now())
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	ledger := session.NewLedger(repo)
	model := update.NewModelWithConfig(store, ledger, nil, cfg)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("focusgrid failed: %w", err)
	}
	return nil
}

func newImportCmd(dbPath *string) *cobra.Command {
	var tomorrow bool

	importCmd := &cobra.Command{
		Use:   "import <plan-file>",
		Short: "Import a JSON or YAML day plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			plan, err := importer.Parse(raw)
			if err != nil {
				return err
			}

			cfg := loadConfig(*dbPath)
			store, repo, err := openStore(cfg, time.Now())
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			target := dayrecord.TargetToday
			if tomorrow {
				target = dayrecord.TargetTomorrow
			}
			day, err := store.ReplaceBlocks(context.Background(), target, plan.Blocks)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d block(s), %d pomodoro(s) into %s\n",
				len(day.Blocks), day.TotalPomodoros, day.Date)
			return nil
		},
	}
	importCmd.Flags().BoolVar(&tomorrow, "tomorrow", false, "import into tomorrow's plan instead of today's")
	return importCmd
}

func newArchiveCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "List archived days with completion and streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(*dbPath)
			store, repo, err := openStore(cfg, time.Now())
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			records := store.Archived()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no archived days yet")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d day(s)\n", store.Streak())
			for _, rec := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %d/%d pomodoros  %d%%  %s\n",
					rec.Date, rec.CompletedPomodoros, rec.TotalPomodoros,
					rec.CompletionPercentage, rec.TreeStage.Label())
			}
			return nil
		},
	}
}
