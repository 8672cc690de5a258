// Package cli implements the gcaldriver debug CLI. It drives the same
// driver assembly the webmail host uses, backed by the TOML config store
// and the SQLite token store, and exists for operators to inspect and
// exercise a linked account outside the host.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gcal-driver/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gcal-driver/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gcal-driver/internal/adapters/driving/driver"
	"github.com/custodia-labs/gcal-driver/internal/logger"
)

// localUserID keys token rows created through the CLI. The webmail host
// passes real user ids instead.
const localUserID = "local"

var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "gcaldriver",
	Short: "Read-only Google Calendar driver",
	Long: `gcaldriver links a Google account and reads its calendars.

The driver is strictly read-only: it lists calendars and loads events,
and rejects every mutation. Connect an account with 'gcaldriver connect',
then inspect it with 'calendars', 'events' and 'event'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.gcal-driver)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.gcal-driver/data)")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// newDriver assembles a driver over the on-disk stores. The returned
// cleanup closes the token store.
func newDriver(ctx context.Context, redirectURI string) (*driver.Driver, func(), error) {
	cfg, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config store: %w", err)
	}

	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening token store: %w", err)
	}

	d, err := driver.New(ctx, driver.Options{
		UserID:      localUserID,
		RedirectURI: redirectURI,
		Config:      cfg,
		Tokens:      store.TokenStore(),
	})
	if d == nil {
		store.Close()
		return nil, nil, err
	}
	if err != nil {
		// A failed refresh leaves the driver usable but unauthenticated.
		logger.Warn("driver initialisation: %v", err)
	}

	return d, func() { store.Close() }, nil
}
