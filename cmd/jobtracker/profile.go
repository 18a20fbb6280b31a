package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/job-tracker/internal/handlers"
	"alfredoptarigan/job-tracker/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect skill profiles",
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a profile file and print its categories",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileValidate,
}

func init() {
	profileCmd.AddCommand(profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileValidate(_ *cobra.Command, args []string) error {
	path := profilePath
	if len(args) == 1 {
		path = args[0]
	}

	p, err := profile.Load(path)
	if err != nil {
		var cfgErr *profile.ConfigurationError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("profile is invalid (%s): %s", cfgErr.Field, cfgErr.Reason)
		}
		return err
	}

	summary := handlers.ProfileSummary(p)
	if jsonOutput {
		return printJSON(summary)
	}

	fmt.Printf("Profile %s is valid\n", summary.Version)
	for _, c := range summary.Categories {
		fmt.Printf("  %-24s weight %.2f  %d skills\n", c.Label, c.Weight, c.Skills)
	}
	fmt.Printf("Total category weight: %.2f\n", summary.TotalWeight)
	fmt.Printf("Industries: %d, role levels: %d\n", summary.Industries, summary.RoleLevels)
	return nil
}
