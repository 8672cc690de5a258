package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

const (
	callbackPortStart = 8750
	callbackPortEnd   = 8760
	callbackTimeout   = 5 * time.Minute
)

var connectNoBrowser bool

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Link a Google account",
	Long: `Link a Google account through the OAuth consent flow.

A temporary local server receives the OAuth callback; the resulting token
is stored keyed by the account's email address. Requires oauth.client_id
and oauth.client_secret in the config file.`,
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().BoolVar(&connectNoBrowser, "no-browser", false, "print the consent URL instead of opening a browser")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	port, err := FindAvailablePort(callbackPortStart, callbackPortEnd)
	if err != nil {
		return err
	}

	state := uuid.NewString()
	server := NewOAuthCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	d, cleanup, err := newDriver(ctx, server.RedirectURI())
	if err != nil {
		return err
	}
	defer cleanup()

	authURL := d.Session().AuthURL(state)
	if authURL == "" {
		return fmt.Errorf("oauth client not configured: set oauth.client_id and oauth.client_secret")
	}

	if connectNoBrowser {
		cmd.Println("Open this URL in your browser:")
		cmd.Println()
		cmd.Println("  " + authURL)
	} else {
		cmd.Println("Opening browser for Google authorization...")
		if err := OpenBrowser(authURL); err != nil {
			cmd.Println("Could not open browser. Open this URL manually:")
			cmd.Println()
			cmd.Println("  " + authURL)
		}
	}
	cmd.Println()
	cmd.Printf("Waiting for authorization callback on port %d...\n", port)

	code, err := server.WaitForCode(callbackTimeout)
	if err != nil {
		return err
	}

	email, err := d.HandleCallback(ctx, code)
	if err != nil {
		if perr, ok := domain.AsProviderError(err); ok {
			return fmt.Errorf("authorization rejected by Google: %s", perr.Code)
		}
		return err
	}

	cmd.Printf("Linked Google account %s\n", email)
	return nil
}
