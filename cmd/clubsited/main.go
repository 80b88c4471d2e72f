package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcac-club/clubsite/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clubsited",
		Short: "Club site daemon and admin CLI",
		Long:  "Club site daemon serving the feed, chat and social-cache API, plus admin commands for feed documents and the social cache",
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.DataCmd())
	rootCmd.AddCommand(cli.SocialCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
