package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/store"
	"github.com/spf13/cobra"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List a user's stored quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := notify.History(cmd.Context(), st.AttemptRepo(), userID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(attempts)
		}

		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-28s  %-12s  %6s  %s\n",
			"ID", "Taken", "Topic", "Difficulty", "Score", "Email")
		fmt.Fprintln(out, strings.Repeat("─", 120))
		for _, a := range attempts {
			sent := "-"
			if a.EmailSent {
				sent = "✓"
			}
			fmt.Fprintf(out, "%-36s  %-19s  %-28s  %-12s  %6s  %s\n",
				a.ID,
				a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(a.Topic, 28),
				a.Difficulty,
				fmt.Sprintf("%d/%d", a.Score, a.TotalQuestions),
				sent,
			)
		}
		return nil
	},
}

func init() {
	attemptsCmd.Flags().String("user", "", "User ID (required)")
	attemptsCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	attemptsCmd.Flags().Bool("json", false, "Print JSON")
	_ = attemptsCmd.MarkFlagRequired("user")
}
