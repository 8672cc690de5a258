package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the connection status",
	RunE:  runStatus,
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Unlink the Google account and delete stored tokens",
	RunE:  runDisconnect,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(disconnectCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	d, cleanup, err := newDriver(ctx, "")
	if err != nil {
		return err
	}
	defer cleanup()

	session := d.Session()
	switch {
	case !session.Ready():
		cmd.Println("OAuth client: not configured")
		cmd.Println("Set oauth.client_id and oauth.client_secret in the config file.")
	case !session.IsAuthenticated():
		cmd.Println("OAuth client: configured")
		cmd.Println("Account: not linked. Run 'gcaldriver connect'.")
	default:
		cmd.Println("OAuth client: configured")
		cmd.Printf("Account: %s\n", session.Account())
	}
	return nil
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	d, cleanup, err := newDriver(ctx, "")
	if err != nil {
		return err
	}
	defer cleanup()

	account := d.Account()
	if err := d.Disconnect(ctx); err != nil {
		return err
	}

	if account == "" {
		cmd.Println("No account was linked; stored tokens cleared.")
		return nil
	}
	cmd.Printf("Unlinked %s and deleted stored tokens.\n", account)
	return nil
}
