package main

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score <job-id>",
	Short: "Score a job against the skill profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Score every job that has no score yet",
	RunE:  runRescore,
}

func init() {
	rescoreCmd.Flags().Int("limit", 500, "maximum number of jobs to score")
	rootCmd.AddCommand(scoreCmd, rescoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	id, err := parseJobArg(args[0])
	if err != nil {
		return err
	}

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.scorer.ScoreJob(cmd.Context(), id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(models.ScoreResponse{JobID: id.String(), Status: "scored", Score: *result})
	}
	printScore(result)
	return nil
}

func printScore(result *scoring.ScoreResult) {
	fmt.Printf("Total score: %d%%\n\n", result.TotalScore)

	keys := make([]string, 0, len(result.Breakdown))
	for k := range result.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("Breakdown:")
	for _, k := range keys {
		fmt.Printf("  %-24s %3d\n", k, result.Breakdown[k])
	}

	printList("Strong matches", result.StrongMatches)
	printList("Missing requirements", result.MissingRequirements)
	printList("Recommendations", result.Recommendations)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

func runRescore(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	jobs, err := a.jobRepo.FindUnscored(limit)
	if err != nil {
		return err
	}

	var scored, failed atomic.Int64
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(a.cfg.Worker.Concurrency, 1))
	for _, job := range jobs {
		g.Go(func() error {
			if _, err := a.scorer.ScoreJob(ctx, job.ID); err != nil {
				failed.Add(1)
				a.log.Error("failed to score job", zap.String("job_id", job.ID.String()), zap.Error(err))
				return nil
			}
			scored.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]int64{"found": int64(len(jobs)), "scored": scored.Load(), "failed": failed.Load()})
	}
	fmt.Printf("Scored %d of %d unscored jobs (%d failed)\n", scored.Load(), len(jobs), failed.Load())
	return nil
}
