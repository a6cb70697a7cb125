package quiz

import "strings"

// Format renders questions in the canonical text form Parse reads back:
//
//	Question: What is 2+2?
//	A) 3
//	B) 4
//	C) 5
//	D) 6
//	Correct Answer: B
//
// Runs of whitespace in question and option text, including newlines, are
// collapsed to single spaces so every question stays on one line.
func Format(questions []Question) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Question: ")
		b.WriteString(oneLine(q.Text))
		b.WriteString("\n")
		for j, opt := range q.Options {
			b.WriteString(OptionLetter(j))
			b.WriteString(") ")
			b.WriteString(oneLine(opt))
			b.WriteString("\n")
		}
		b.WriteString("Correct Answer: ")
		b.WriteString(OptionLetter(q.CorrectIndex))
		b.WriteString("\n")
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
