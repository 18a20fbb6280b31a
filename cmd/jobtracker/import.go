package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/models"
)

var importCmd = &cobra.Command{
	Use:   "import [url...]",
	Short: "Import job postings from their URLs",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringP("file", "f", "", "file with one posting URL per line")
	importCmd.Flags().String("company", "", "company name for every imported job")
	importCmd.Flags().String("priority", "", "priority for every imported job (urgent, high, medium, low)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	company, _ := cmd.Flags().GetString("company")
	priority, _ := cmd.Flags().GetString("priority")

	urls := append([]string(nil), args...)
	if file != "" {
		fromFile, err := readURLs(file)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given")
	}

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	type imported struct {
		URL   string `json:"url"`
		JobID string `json:"job_id,omitempty"`
		Title string `json:"title,omitempty"`
		Error string `json:"error,omitempty"`
	}

	results := make([]imported, 0, len(urls))
	failed := 0
	for _, url := range urls {
		job, err := a.jobs.Import(cmd.Context(), models.ImportJobRequest{
			URL:         url,
			CompanyName: company,
			Priority:    priority,
		})
		if err != nil {
			failed++
			a.log.Warn("import failed", zap.String("url", url), zap.Error(err))
			results = append(results, imported{URL: url, Error: err.Error()})
			continue
		}
		a.log.Info("job imported", zap.String("url", url), zap.String("job_id", job.ID.String()))
		results = append(results, imported{URL: url, JobID: job.ID.String(), Title: job.Title})
	}

	if jsonOutput {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Error != "" {
				fmt.Printf("  x %s: %s\n", r.URL, config.Truncate(r.Error, 120))
				continue
			}
			fmt.Printf("  + %s (%s)\n", r.Title, r.JobID)
		}
		fmt.Printf("Imported %d, failed %d\n", len(urls)-failed, failed)
	}

	if failed == len(urls) {
		return fmt.Errorf("all %d imports failed", failed)
	}
	return nil
}

// readURLs skips blank lines and lines starting with #.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return urls, nil
}
