package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"studyvault/internal/engagement"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "engage",
	Short: "Record read/download actions, counting each at most once per local ledger",
}

var readCmd = &cobra.Command{
	Use:   "read RESOURCE-ID",
	Short: "Record a read action for a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return track(cmd, engagement.Read, args[0])
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download RESOURCE-ID",
	Short: "Record a download action for a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return track(cmd, engagement.Download, args[0])
	},
}

// track wires the ledger and API client and runs one tracked action.
func track(cmd *cobra.Command, counter engagement.Counter, resourceID string) error {
	apiURL, _ := cmd.Flags().GetString("api")
	token, _ := cmd.Flags().GetString("token")
	ledgerPath, _ := cmd.Flags().GetString("ledger")

	ledger, err := engagement.OpenSQLiteLedger(ledgerPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	tracker := engagement.NewTracker(ledger, engagement.NewAPIIncrementer(apiURL, token))

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	return runTrack(ctx, cmd.OutOrStdout(), tracker, counter, resourceID)
}

// runTrack records one action and reports the outcome. A failed ledger mark
// after a landed increment is a warning, not a failure: the count succeeded.
func runTrack(ctx context.Context, out io.Writer, tr *engagement.Tracker, counter engagement.Counter, resourceID string) error {
	counted, err := tr.Track(ctx, resourceID, counter)
	if err != nil && !counted {
		if errors.Is(err, engagement.ErrResourceGone) {
			return fmt.Errorf("resource %s no longer exists", resourceID)
		}
		return fmt.Errorf("recording %s: %w", counter, err)
	}

	if counted {
		fmt.Fprintf(out, "%s counted for %s\n", counter, resourceID)
		if err != nil {
			fmt.Fprintf(out, "warning: ledger not updated, a later action may recount: %v\n", err)
		}
		return nil
	}

	fmt.Fprintf(out, "%s already counted for %s\n", counter, resourceID)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func init() {
	rootCmd.PersistentFlags().String("api", envOr("STUDYVAULT_API", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().String("token", os.Getenv("STUDYVAULT_TOKEN"), "bearer token, required for download")
	rootCmd.PersistentFlags().String("ledger", envOr("STUDYVAULT_LEDGER", "engage.db"), "path to the local ledger database")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(downloadCmd)
}
