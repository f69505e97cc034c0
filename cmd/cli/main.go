package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	baseURL string
	timeout time.Duration
	output  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "gojournal-cli",
		Short:         "GoJournal CLI tool",
		Long:          `A command line interface for the GoJournal double-entry ledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.output != outputTable && c.output != outputJSON {
				return fmt.Errorf("unknown output format %q", c.output)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.baseURL, "url", "http://localhost:8080", "Base URL of the GoJournal API")
	rootCmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", outputTable, "Output format: table or json")

	rootCmd.AddCommand(
		c.accountsCmd(),
		c.postCmd(),
		c.reverseCmd(),
		c.transactionCmd(),
		c.entriesCmd(),
		c.reportsCmd(),
		c.ledgerCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func (c *cli) client() *apiClient {
	return newAPIClient(c.baseURL, c.timeout)
}
