package quiz

import (
	"fmt"
	"strings"
)

// DefaultQuestionCount is how many questions a generated quiz asks for.
const DefaultQuestionCount = 10

// BuildPrompt asks the generator for a quiz in the canonical text form.
func BuildPrompt(topic string, difficulty Difficulty, count int) string {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-question multiple choice quiz about %s at %s level.\n\n",
		count, strings.TrimSpace(topic), difficulty)
	b.WriteString("Format each question as:\n")
	b.WriteString("Question: [question text]\n")
	b.WriteString("A) [option]\n")
	b.WriteString("B) [option]\n")
	b.WriteString("C) [option]\n")
	b.WriteString("D) [option]\n")
	b.WriteString("Correct Answer: [letter]\n\n")
	b.WriteString("Every question must have exactly four options and one Correct Answer line.\n")
	b.WriteString("Make questions relevant for career development and professional growth.")
	return b.String()
}
