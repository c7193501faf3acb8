package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and maintain the local data store",
}

var storageStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how much local data is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		size, err := a.store.Size(cmd.Context())
		if err != nil {
			return err
		}
		records, err := a.store.Export(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d records, %s\n", len(records), humanize.Bytes(uint64(size)))
		return nil
	},
}

var storageExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Dump all stored records as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		records, err := a.store.Export(cmd.Context())
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return os.WriteFile(args[0], out, 0o600)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var storageImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load records from a JSON dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var records map[string]json.RawMessage
		if err := json.Unmarshal(raw, &records); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		if err := a.store.Import(cmd.Context(), records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records.\n", len(records))
		return nil
	},
}

var storagePruneCacheCmd = &cobra.Command{
	Use:   "prune-cache",
	Short: "Drop expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		return a.store.ClearExpiredCache(cmd.Context())
	},
}

func init() {
	storageCmd.AddCommand(storageStatsCmd, storageExportCmd, storageImportCmd, storagePruneCacheCmd)
	rootCmd.AddCommand(storageCmd)
}
