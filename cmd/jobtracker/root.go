package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const appName = "jobtracker"

// Set at build time.
var version = "dev"

var (
	profilePath string
	jsonOutput  bool
	debug       bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "Track job applications and score them against a skill profile",
		Long:          "jobtracker keeps a pipeline of job opportunities, scores each one against a weighted skill profile, drafts cover letters and syncs with Notion and a remote document store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "skill profile file (default is PROFILE_PATH or the built-in profile)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "json format for logging and command output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("%s version: %s\n", appName, version)
		},
	})
}

func parseJobArg(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job ID %q", arg)
	}
	return id, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
