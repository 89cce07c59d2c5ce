package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"nolabels/internal/config"
	"nolabels/internal/labelstore"
	"nolabels/internal/language"
)

func newStoreCommand(ctx *commandContext) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage local label stores",
	}

	storeCmd.AddCommand(newStoreInitCommand(ctx))
	storeCmd.AddCommand(newStoreImportCommand(ctx))
	storeCmd.AddCommand(newStoreStatsCommand(ctx))

	return storeCmd
}

func newStoreInitCommand(ctx *commandContext) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the label table in a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.storeProvider()
			if err != nil {
				return err
			}
			store, err := provider.Create(cmd.Context(), database)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Label store %s ready\n", store.Name())
			if path := provider.Path(database); path != "" {
				fmt.Fprintf(out, "Path: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "", "Logical label database (default from config)")
	return cmd
}

func newStoreImportCommand(ctx *commandContext) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load labels from a tab-separated file",
		Long: `Load labels from a file with one "item<TAB>language<TAB>label" line per
label. Lines starting with # are ignored. Use - to read from stdin. Existing
labels for the same item and language are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			provider, err := ctx.storeProvider()
			if err != nil {
				return err
			}
			store, err := provider.Create(cmd.Context(), database)
			if err != nil {
				return err
			}

			unlock, err := lockImport(cmd.Context(), cfg, store.Name())
			if err != nil {
				return err
			}
			defer unlock()

			var input io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open labels file: %w", err)
				}
				defer file.Close()
				input = file
			}

			count, err := store.ImportTerms(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("import labels: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d labels into %s\n", count, store.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "", "Logical label database (default from config)")
	return cmd
}

// lockImport serializes imports into the same logical database.
func lockImport(ctx context.Context, cfg *config.Config, name string) (func(), error) {
	lockPath := filepath.Join(cfg.Paths.DataDir, name+".import.lock")
	lock := flock.New(lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquire import lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("another import into %s is running (lock %s)", name, lockPath)
	}
	return func() { _ = lock.Unlock() }, nil
}

func newStoreStatsCommand(ctx *commandContext) *cobra.Command {
	var database string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show label counts for a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			provider, err := ctx.storeProvider()
			if err != nil {
				return err
			}
			store, err := provider.Open(cmd.Context(), database)
			if err != nil {
				return err
			}
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			counts, err := store.LanguageCounts(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, storeStatsPayload(cfg, store, stats, counts))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database:  %s (%s)\n", store.Name(), cfg.Store.Driver)
			fmt.Fprintf(out, "Labels:    %d\n", stats.Labels)
			fmt.Fprintf(out, "Items:     %d\n", stats.Items)
			fmt.Fprintf(out, "Languages: %d\n", stats.Languages)
			if len(counts) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{c.Language, language.DisplayName(c.Language), strconv.FormatInt(c.Labels, 10)})
			}
			fmt.Fprintln(out, renderTable([]string{"Code", "Language", "Labels"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}, ""))
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "", "Logical label database (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

type storeStatsJSON struct {
	Database  string              `json:"database"`
	Driver    string              `json:"driver"`
	Labels    int64               `json:"labels"`
	Items     int64               `json:"items"`
	Languages []languageCountJSON `json:"languages"`
}

type languageCountJSON struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Labels int64  `json:"labels"`
}

func storeStatsPayload(cfg *config.Config, store *labelstore.SQLStore, stats labelstore.Stats, counts []labelstore.LanguageCount) storeStatsJSON {
	payload := storeStatsJSON{
		Database:  store.Name(),
		Driver:    cfg.Store.Driver,
		Labels:    stats.Labels,
		Items:     stats.Items,
		Languages: make([]languageCountJSON, 0, len(counts)),
	}
	for _, c := range counts {
		payload.Languages = append(payload.Languages, languageCountJSON{
			Code:   c.Language,
			Name:   language.DisplayName(c.Language),
			Labels: c.Labels,
		})
	}
	return payload
}
