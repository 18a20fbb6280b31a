package main

import (
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/job-tracker/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tracker tools over MCP on stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	s := mcpserver.New(mcpserver.Deps{
		Jobs:    a.jobs,
		Scorer:  a.scorer,
		Letters: a.letters,
		Log:     a.log,
		Version: version,
	})
	return mcpserver.Serve(cmd.Context(), s, os.Stdin, os.Stdout, a.log)
}
