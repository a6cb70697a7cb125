package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/careercoach/internal/app"
	"github.com/abhisek/careercoach/internal/llm"
	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/scoring"
	"github.com/abhisek/careercoach/internal/textgen"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take an AI-generated multiple-choice quiz",
	Long: `Generate a quiz on a topic, answer it in the terminal and get an AI
analysis of the result. Signed-in takers (--user) have attempts stored;
anonymous takers are asked for an optional email address instead.`,
	RunE: runQuiz,
}

var quizParseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse quiz text and print the canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lenient, _ := cmd.Flags().GetBool("lenient")
		asJSON, _ := cmd.Flags().GetBool("json")

		questions, err := parseFile(args[0], lenient)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(questions)
		}
		fmt.Fprint(out, quiz.Format(questions))
		return nil
	},
}

func init() {
	quizCmd.Flags().String("topic", "", "Quiz topic (required unless --from-file is set)")
	quizCmd.Flags().String("difficulty", string(quiz.Intermediate), "Difficulty: beginner, intermediate or advanced")
	quizCmd.Flags().Int("count", quiz.DefaultQuestionCount, "Number of questions to generate")
	quizCmd.Flags().String("from-file", "", "Take a quiz from a text file instead of generating one")
	quizCmd.Flags().Bool("lenient", false, "Default missing answer keys to option A")
	quizCmd.Flags().String("user", "", "User ID; attempts are stored only for signed-in users")
	quizCmd.Flags().String("email", "", "Send the analysis to this address")
	quizCmd.Flags().String("name", "", "Name used in the analysis")

	quizParseCmd.Flags().Bool("lenient", false, "Default missing answer keys to option A")
	quizParseCmd.Flags().Bool("json", false, "Print JSON instead of quiz text")

	quizCmd.AddCommand(quizParseCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	topic, _ := cmd.Flags().GetString("topic")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	fromFile, _ := cmd.Flags().GetString("from-file")
	lenient, _ := cmd.Flags().GetBool("lenient")
	userID, _ := cmd.Flags().GetString("user")
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")

	difficulty, err := quiz.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	if fromFile == "" && strings.TrimSpace(topic) == "" {
		return errors.New("--topic is required unless --from-file is set")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// Without a provider a file-based quiz can still be analyzed remotely.
	provider, perr := newProvider(ctx, st.EventRepo())
	if perr != nil && (fromFile == "" || cfg.AnalysisURL == "") {
		return perr
	}

	var q *quiz.Quiz
	if fromFile != "" {
		q, err = loadQuizFile(fromFile, topic, difficulty, lenient)
	} else {
		q, err = generateQuiz(cmd, provider, topic, difficulty, count, lenient)
	}
	if err != nil {
		return err
	}

	analyst, err := newAnalyst(provider)
	if err != nil {
		return err
	}

	res, err := app.Run(q, app.Options{AskEmail: email == ""})
	if err != nil {
		if errors.Is(err, app.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Quiz aborted. Nothing was submitted.")
			return nil
		}
		return err
	}
	if res.Email != "" {
		email = res.Email
	}

	if !strings.Contains(email, "@") {
		email = ""
	}
	if email != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing your results and emailing %s...\n", email)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Analyzing your results...")
	}

	notifier := notify.New(notify.Deps{
		Analyst:  analyst,
		Attempts: st.AttemptRepo(),
		Events:   st.EventRepo(),
		Engine:   scoring.NewEngine(cfg.PassThreshold),
	})
	outcome, err := notifier.Submit(ctx, q, res.Answers, notify.User{ID: userID, Email: email, Name: name})

	var nerr *notify.NotificationError
	switch {
	case errors.As(err, &nerr) && outcome != nil:
		printOutcome(cmd.OutOrStdout(), q, outcome, cfg.PassThreshold)
		fmt.Fprintf(cmd.ErrOrStderr(), "\nAnalysis unavailable: %v\n", nerr.Err)
		return nil
	case err != nil:
		return err
	}

	printOutcome(cmd.OutOrStdout(), q, outcome, cfg.PassThreshold)
	return nil
}

func generateQuiz(cmd *cobra.Command, provider llm.Provider, topic string, difficulty quiz.Difficulty, count int, lenient bool) (*quiz.Quiz, error) {
	var opts []quiz.ParseOption
	if lenient {
		opts = append(opts, quiz.Lenient())
	}
	gen := quiz.NewGenerator(textgen.New(provider, textgen.DefaultConfig()), opts...)

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating a %s quiz on %q...\n", difficulty, topic)
	q, err := gen.Generate(cmd.Context(), quiz.GenerateInput{Topic: topic, Difficulty: difficulty, Count: count})
	if err != nil {
		if quiz.IsParseError(err) {
			return nil, fmt.Errorf("the generated quiz could not be read, please try again: %w", err)
		}
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	return q, nil
}

func loadQuizFile(path, topic string, difficulty quiz.Difficulty, lenient bool) (*quiz.Quiz, error) {
	questions, err := parseFile(path, lenient)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(topic) == "" {
		topic = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &quiz.Quiz{Topic: topic, Difficulty: difficulty, Questions: questions}, nil
}

func parseFile(path string, lenient bool) ([]quiz.Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	var opts []quiz.ParseOption
	if lenient {
		opts = append(opts, quiz.Lenient())
	}
	questions, err := quiz.Parse(string(raw), opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return questions, nil
}

func printOutcome(w io.Writer, q *quiz.Quiz, out *notify.Outcome, threshold int) {
	res := out.Score
	verdict := "Keep practicing"
	if scoring.NewEngine(threshold).Passed(res.Correct) {
		verdict = "Passed"
	}

	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Score: %d/%d (%d%%)  %s\n", res.Correct, res.Total, res.Percentage(), verdict)
	fmt.Fprintln(w, sep)
	for i, a := range res.Answers {
		mark := "✓"
		if !a.IsCorrect {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %2d. %s\n", mark, i+1, q.Questions[i].Text)
		if !a.IsCorrect {
			fmt.Fprintf(w, "       you: %s) %s   correct: %s) %s\n",
				quiz.OptionLetter(a.SelectedAnswer), q.Questions[i].Options[a.SelectedAnswer],
				quiz.OptionLetter(a.CorrectAnswer), q.Questions[i].CorrectOption())
		}
	}

	if out.Analysis != "" {
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, out.Analysis)
	}

	fmt.Fprintln(w, sep)
	if out.EmailSent {
		fmt.Fprintln(w, "Your detailed analysis has been emailed.")
	}
	if out.Persisted {
		fmt.Fprintf(w, "Attempt saved (%s).\n", out.AttemptID)
	}
	if out.PersistErr != nil {
		fmt.Fprintln(w, "Your attempt could not be saved; the score above is still valid.")
	}
}
