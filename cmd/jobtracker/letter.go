package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

var letterCmd = &cobra.Command{
	Use:   "letter <job-id>",
	Short: "Generate a cover letter for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runLetter,
}

func init() {
	letterCmd.Flags().StringP("style", "s", letter.StyleAuto, "letter style, or auto to pick one from the job text")
	letterCmd.Flags().BoolP("choose", "c", false, "pick the style interactively")
	letterCmd.Flags().String("contact", "", "contact person for the salutation")
	letterCmd.Flags().Bool("print", false, "print the letter text")
	rootCmd.AddCommand(letterCmd)
}

func runLetter(cmd *cobra.Command, args []string) error {
	id, err := parseJobArg(args[0])
	if err != nil {
		return err
	}
	style, _ := cmd.Flags().GetString("style")
	choose, _ := cmd.Flags().GetBool("choose")
	contact, _ := cmd.Flags().GetString("contact")
	show, _ := cmd.Flags().GetBool("print")

	a, err := newApplication(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if choose {
		if style, err = chooseStyle(a.letters, id); err != nil {
			return err
		}
	}

	out, err := a.letters.Generate(cmd.Context(), id, services.LetterRequest{Style: style, ContactPerson: contact})
	if err != nil {
		return err
	}

	if jsonOutput {
		resp := models.CoverLetterResponse{
			DocumentID:   out.Document.ID.String(),
			Style:        out.Letter.Style,
			AutoSelected: out.Letter.AutoSelected,
			FilePath:     out.Document.FilePath,
			Content:      out.Letter.FullText,
		}
		if out.Docx != nil {
			resp.DocxPath = out.Docx.FilePath
		}
		return printJSON(resp)
	}

	fmt.Printf("Cover letter (%s) written to %s\n", out.Letter.Style, out.Document.FilePath)
	if out.Docx != nil {
		fmt.Printf("DOCX version written to %s\n", out.Docx.FilePath)
	}
	if show {
		fmt.Println()
		fmt.Println(out.Letter.FullText)
	}
	return nil
}

// chooseStyle asks for a style, listing the suggested one first.
func chooseStyle(letters services.LetterService, jobID uuid.UUID) (string, error) {
	suggested, err := letters.SuggestStyle(jobID)
	if err != nil {
		return "", err
	}

	items := []string{suggested}
	for _, s := range letters.Styles() {
		if s != suggested {
			items = append(items, s)
		}
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Letter style (suggested: %s)", suggested),
		Items: items,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}
