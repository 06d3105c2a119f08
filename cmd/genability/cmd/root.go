// Package cmd provides the CLI commands for genability.
package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	raw         bool
	unformatted bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "genability",
		Short: "genability - Genability REST API client",
		Long: `genability sends requests to the Genability REST API.

Options are given the way you would write them in code (page, per_page,
search_on, ...) and normalized to the wire format before dispatch.

Configuration:
  Config is read from the file given with --config (YAML) and from
  environment variables with the GENABILITY_ prefix.
  Example: GENABILITY_APPLICATION_ID=... GENABILITY_APPLICATION_KEY=...

Commands:
  get       GET a path with pagination/search query parameters
  delete    DELETE a path
  post      POST a JSON body
  put       PUT a JSON body
  config    Print the effective configuration`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().BoolVar(&raw, "raw", false, "print the raw response envelope instead of the decoded body")
	root.PersistentFlags().BoolVar(&unformatted, "unformatted", false, "do not append the format suffix to the path")

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		root.AddCommand(newQueryCommand(method))
	}
	for _, method := range []string{http.MethodPost, http.MethodPut} {
		root.AddCommand(newBodyCommand(method))
	}
	root.AddCommand(newConfigCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
