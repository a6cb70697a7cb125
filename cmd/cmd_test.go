package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/scoring"
)

const sampleQuizText = `Question 1: What does STAR stand for?
A) Situation, Task, Action, Result
B) Skill, Talent, Ability, Reach
C) Start, Try, Adjust, Repeat
D) None of these
Correct Answer: A

Question 2: When should you send a thank-you note?
A) Never
B) Within 24 hours
C) After a month
D) Only if hired
Correct Answer: B
`

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interviewing.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleQuizText), 0o644))

	questions, err := parseFile(path, false)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[1].CorrectIndex)

	q, err := loadQuizFile(path, "", quiz.Beginner, false)
	require.NoError(t, err)
	assert.Equal(t, "interviewing", q.Topic)
}

func TestParseFile_MissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("Question: Q\nA) a\nB) b\nC) c\nD) d\n"), 0o644))

	_, err := parseFile(path, false)
	assert.True(t, quiz.IsParseError(err))

	questions, err := parseFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, 0, questions[0].CorrectIndex)
}

func TestPrintOutcome(t *testing.T) {
	q := &quiz.Quiz{
		Topic:      "Interviewing",
		Difficulty: quiz.Beginner,
		Questions: []quiz.Question{
			{Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
			{Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		},
	}
	res, err := scoring.NewEngine(1).Score(q.Questions, quiz.AnswerSet{0, 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	printOutcome(&buf, q, &notify.Outcome{Score: res, Analysis: "Nice start.", EmailSent: true}, 1)
	out := buf.String()

	assert.Contains(t, out, "Score: 1/2 (50%)  Passed")
	assert.Contains(t, out, "you: D) d   correct: B) b")
	assert.Contains(t, out, "Nice start.")
	assert.Contains(t, out, "emailed")
	assert.False(t, strings.Contains(out, "Attempt saved"))
}

func TestQuizParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleQuizText), 0o644))

	out := runRoot(t, "quiz", "parse", path)
	assert.Contains(t, out, "Correct Answer: B")
	assert.Contains(t, out, "When should you send a thank-you note?")
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, Execute())
	return buf.String()
}

func TestLLMListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "coach.db")
	out := runRoot(t, "llm", "list", "--db", db, "--failed")
	assert.Contains(t, out, "No LLM events found.")
}

func TestVersion(t *testing.T) {
	out := runRoot(t, "version")
	assert.True(t, strings.HasPrefix(out, "careercoach "))
}
