package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// DataCmd returns the data command group for managing feed documents
// on a running server.
func DataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage feed documents",
	}

	cmd.AddCommand(dataPushCmd())
	cmd.AddCommand(dataGetCmd())

	return cmd
}

func dataPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <name> <file>",
		Short: "Upload a feed document to the remote store",
		Long:  "Upload a JSON document for a named feed (board, directors, newsletters, projects, past-presidents) via a running server",
		Args:  cobra.ExactArgs(2),
		RunE:  runDataPush,
	}

	addServerFlags(cmd)
	return cmd
}

func runDataPush(cmd *cobra.Command, args []string) error {
	name, file := args[0], args[1]

	body, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if !json.Valid(body) {
		return fmt.Errorf("%s is not valid JSON", file)
	}

	serverURL, token, err := serverFlags(cmd)
	if err != nil {
		return err
	}

	endpoint := serverURL + "/data?name=" + url.QueryEscape(name)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", token)

	client := &http.Client{Timeout: 30 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("unexpected response (HTTP %d)", res.StatusCode)
	}

	if res.StatusCode != http.StatusOK || !result.OK {
		if result.Error != "" {
			return fmt.Errorf("push rejected (HTTP %d): %s", res.StatusCode, result.Error)
		}
		return fmt.Errorf("push failed (HTTP %d)", res.StatusCode)
	}

	fmt.Printf("pushed %s from %s\n", name, file)
	return nil
}

func dataGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Fetch a feed document",
		Args:  cobra.ExactArgs(1),
		RunE:  runDataGet,
	}

	addServerFlags(cmd)
	return cmd
}

func runDataGet(cmd *cobra.Command, args []string) error {
	serverURL, _, err := serverFlags(cmd)
	if err != nil {
		return err
	}

	endpoint := serverURL + "/data?name=" + url.QueryEscape(args[0])
	client := &http.Client{Timeout: 30 * time.Second}
	res, err := client.Get(endpoint)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch failed (HTTP %d)", res.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return fmt.Errorf("malformed document: %w", err)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
