package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	client "github.com/inference-gateway/agent-catalog/client"
	cobra "github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	var (
		baseURL string
		asJSON  bool
		timeout time.Duration
		retries int
		all     bool
	)

	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "List the agents served by a running catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := client.DefaultConfig(baseURL)
			cfg.Timeout = timeout
			cfg.MaxRetries = retries

			agents, err := client.NewClientWithConfig(cfg).ListAgents(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing agents: %w", err)
			}

			if !all {
				agents = client.VisibleAgents(agents)
			}

			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(agents, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling agents: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(agents) == 0 {
				fmt.Fprintln(out, "No agents registered.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBETA\tVISIBILITY\tICON")
			for _, agent := range agents {
				icon := "-"
				if agent.Icon != nil {
					icon = *agent.Icon
				}
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", agent.Name, agent.Beta, agent.Visibility, icon)
			}
			return w.Flush()
		},
	}

	agentsCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the catalog")
	agentsCmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	agentsCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	agentsCmd.Flags().IntVar(&retries, "retries", 1, "Retries on transport errors")
	agentsCmd.Flags().BoolVar(&all, "all", false, "Include unlisted agents")

	return agentsCmd
}
