package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:   "package <job-id>",
	Short: "Build the application package in the remote document store",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackage,
}

func init() {
	packageCmd.Flags().Bool("links", false, "only print shareable links of documents already uploaded")
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	id, err := parseJobArg(args[0])
	if err != nil {
		return err
	}
	linksOnly, _ := cmd.Flags().GetBool("links")

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if linksOnly {
		links, err := a.packages.ShareableLinks(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(map[string]interface{}{"job_id": id.String(), "links": links})
		}
		printMap(links)
		return nil
	}

	result, err := a.packages.CreatePackage(cmd.Context(), id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(result)
	}

	fmt.Printf("Package created in %s: %s\n", result.Backend, result.FolderPath)
	printMap(result.Documents)
	return nil
}

func printMap(m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %s\n", k, m[k])
	}
}
