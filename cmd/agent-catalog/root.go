package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	server "github.com/inference-gateway/agent-catalog/server"
	cobra "github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agent-catalog",
		Short: "Serve the catalog of hosted agents",
		Long: `agent-catalog registers the hosted agents at startup and serves their public
listing on GET /agents. Configuration is read from environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	rootCmd.AddCommand(newServeCmd(), newVersionCmd(), newAgentsCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog server",
		RunE:  runServe,
	}
}

func newVersionCmd() *cobra.Command {
	var short, asJSON bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if short {
				fmt.Fprintln(out, server.BuildServiceVersion)
				return nil
			}

			if asJSON {
				info := map[string]string{
					"name":    server.BuildServiceName,
					"version": server.BuildServiceVersion,
					"commit":  server.BuildCommit,
					"date":    server.BuildDate,
					"go":      runtime.Version(),
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s %s (commit %s, built %s, %s)\n",
				server.BuildServiceName, server.BuildServiceVersion, server.BuildCommit, server.BuildDate, runtime.Version())
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")

	return versionCmd
}
