package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// SocialCmd returns the social command group.
func SocialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social",
		Short: "Manage the social media cache",
	}

	cmd.AddCommand(socialRefreshCmd())

	return cmd
}

func socialRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Force-refresh the Instagram cache on a running server",
		RunE:  runSocialRefresh,
	}

	addServerFlags(cmd)
	return cmd
}

func runSocialRefresh(cmd *cobra.Command, args []string) error {
	serverURL, token, err := serverFlags(cmd)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, serverURL+"/social-refresh", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Admin-Token", token)

	client := &http.Client{Timeout: 60 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh rejected (HTTP %d)", res.StatusCode)
	}

	var summary struct {
		OK      bool   `json:"ok"`
		Count   int    `json:"count"`
		Hashtag string `json:"hashtag"`
		Note    string `json:"note"`
	}
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}

	if summary.OK {
		fmt.Printf("cached %d posts for #%s\n", summary.Count, summary.Hashtag)
	} else {
		fmt.Printf("refresh skipped: %s\n", summary.Note)
	}
	return nil
}

// addServerFlags registers the flags shared by commands that talk to a
// running server.
func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().String("server", "http://localhost:8080", "Base URL of the running server")
	cmd.Flags().String("token", "", "Admin token (defaults to CLUBSITE_ADMIN_TOKEN)")
}

// serverFlags resolves the server base URL and admin token, preferring
// the flag over the environment.
func serverFlags(cmd *cobra.Command) (serverURL, token string, err error) {
	serverURL, _ = cmd.Flags().GetString("server")
	serverURL = strings.TrimRight(serverURL, "/")

	token, _ = cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv("CLUBSITE_ADMIN_TOKEN")
	}
	return serverURL, token, nil
}
