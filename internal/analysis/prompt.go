package analysis

import (
	"fmt"
	"strings"

	"github.com/abhisek/careercoach/internal/quiz"
)

const systemPrompt = `You are an AI career coach reviewing a student's quiz. Keep the tone professional yet encouraging.`

func buildUserMessage(req Request, passed bool) string {
	var b strings.Builder

	b.WriteString("Analyze this quiz performance:\n\n")
	fmt.Fprintf(&b, "Student: %s\n", req.UserName)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "Score: %d/%d\n", req.Score, req.TotalQuestions)
	fmt.Fprintf(&b, "Percentage: %d%%\n", req.Percentage())

	b.WriteString("\nQuiz Questions and Answers:\n")
	for i, q := range req.Questions {
		picked := req.UserAnswers[i]
		fmt.Fprintf(&b, "\nQ%d: %s\n", i+1, q.Text)
		fmt.Fprintf(&b, "Correct Answer: %s. %s\n", quiz.OptionLetter(q.CorrectIndex), q.CorrectOption())
		fmt.Fprintf(&b, "Student's Answer: %s. %s\n", quiz.OptionLetter(picked), q.Options[picked])
		if picked == q.CorrectIndex {
			b.WriteString("✓ Correct\n")
		} else {
			b.WriteString("✗ Incorrect\n")
		}
	}

	b.WriteString(`
Provide a detailed performance analysis including:
1. Overall performance summary
2. Strengths demonstrated
3. Areas for improvement
4. Specific recommendations for further study
`)
	if passed {
		b.WriteString("5. A congratulatory message for excellent performance\n")
	} else {
		b.WriteString("5. Encouragement and motivation to keep learning\n")
	}

	return b.String()
}
