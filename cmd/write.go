package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/careercoach/internal/textgen"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate career documents",
}

var writeCoverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Write a cover letter for a job",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := textgen.CoverLetterInput{}
		in.JobTitle, _ = cmd.Flags().GetString("job-title")
		in.Company, _ = cmd.Flags().GetString("company")
		in.Experience, _ = cmd.Flags().GetString("experience")
		in.Skills, _ = cmd.Flags().GetString("skills")
		if err := in.Validate(); err != nil {
			return err
		}

		return writeDocument(cmd, "cover letter", func(c *textgen.Client) (string, error) {
			return c.CoverLetter(cmd.Context(), in)
		})
	},
}

var writeResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Write an ATS-friendly resume",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := textgen.ResumeInput{}
		in.Name, _ = cmd.Flags().GetString("name")
		in.Email, _ = cmd.Flags().GetString("email")
		in.Experience, _ = cmd.Flags().GetString("experience")
		in.Skills, _ = cmd.Flags().GetString("skills")
		in.Education, _ = cmd.Flags().GetString("education")
		if err := in.Validate(); err != nil {
			return err
		}

		return writeDocument(cmd, "resume", func(c *textgen.Client) (string, error) {
			return c.Resume(cmd.Context(), in)
		})
	},
}

// writeDocument runs gen against a logged provider and writes the result to
// --out or stdout.
func writeDocument(cmd *cobra.Command, kind string, gen func(*textgen.Client) (string, error)) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	provider, err := newProvider(cmd.Context(), st.EventRepo())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Writing your %s...\n", kind)
	text, err := gen(textgen.New(provider, textgen.DefaultConfig()))
	if err != nil {
		return fmt.Errorf("generate %s: %w", kind, err)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(strings.TrimSpace(text)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", outPath)
	return nil
}

func init() {
	writeCoverLetterCmd.Flags().String("job-title", "", "Job title (required)")
	writeCoverLetterCmd.Flags().String("company", "", "Company name (required)")
	writeCoverLetterCmd.Flags().String("experience", "", "Relevant experience")
	writeCoverLetterCmd.Flags().String("skills", "", "Key skills")
	writeCoverLetterCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	writeResumeCmd.Flags().String("name", "", "Full name (required)")
	writeResumeCmd.Flags().String("email", "", "Contact email")
	writeResumeCmd.Flags().String("experience", "", "Work experience")
	writeResumeCmd.Flags().String("skills", "", "Skills")
	writeResumeCmd.Flags().String("education", "", "Education")
	writeResumeCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	writeCmd.AddCommand(writeCoverLetterCmd)
	writeCmd.AddCommand(writeResumeCmd)
}
