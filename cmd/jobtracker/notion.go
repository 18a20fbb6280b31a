package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var notionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Sync jobs with the Notion workspace",
}

var notionPushCmd = &cobra.Command{
	Use:   "push <job-id>",
	Short: "Create or update the job's Notion page",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotionPush,
}

var notionPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Import jobs from the Notion jobs database",
	RunE:  runNotionPull,
}

func init() {
	notionPullCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	notionCmd.AddCommand(notionPushCmd, notionPullCmd)
	rootCmd.AddCommand(notionCmd)
}

func runNotionPush(cmd *cobra.Command, args []string) error {
	id, err := parseJobArg(args[0])
	if err != nil {
		return err
	}

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	pageID, err := a.notion.PushJob(cmd.Context(), id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(map[string]string{"job_id": id.String(), "notion_page_id": pageID})
	}
	fmt.Printf("Job synced to Notion page %s\n", pageID)
	return nil
}

func runNotionPull(cmd *cobra.Command, _ []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		prompt := promptui.Prompt{
			Label:     "Pulling overwrites local fields with Notion values. Proceed",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Println("Aborted")
				return nil
			}
			return err
		}
	}

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.notion.Pull(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(summary)
	}

	fmt.Printf("Created %d, updated %d, skipped %d\n", len(summary.Created), len(summary.Updated), summary.Skipped)
	for _, job := range summary.Created {
		fmt.Printf("  + %s (%s)\n", job.Title, job.JobID)
	}
	for _, job := range summary.Updated {
		fmt.Printf("  ~ %s (%s)\n", job.Title, job.JobID)
	}
	return nil
}
