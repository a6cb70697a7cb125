package quiz

import (
	"regexp"
	"strings"
)

var (
	// "Question", "Question:", "Question 3:", "Question 3." and so on.
	labelledHeader = regexp.MustCompile(`(?i)^question\b\s*(?:\d+)?\s*[:.)]?\s*(.*)$`)

	// "1." or "1)" followed by whitespace or end of line. "1.5" is prose.
	numberedHeader = regexp.MustCompile(`^\d+[.)](?:\s+|$)(.*)$`)

	optionLine = regexp.MustCompile(`^([A-Da-d])[.)]\s*(.*)$`)

	correctAnswerLine = regexp.MustCompile(`(?i)^correct\s+answer\s*:?\s*(.*)$`)

	// Markdown heading marks: one to six '#' followed by whitespace.
	headingMark = regexp.MustCompile(`^#{1,6}\s+`)
)

// ParseOption adjusts parser behavior.
type ParseOption func(*parseConfig)

type parseConfig struct {
	lenient bool
}

// Lenient makes questions without a usable answer key default to option A
// instead of failing with ErrMissingAnswerKey.
func Lenient() ParseOption {
	return func(c *parseConfig) { c.lenient = true }
}

// draft is a question under construction. correct is NoAnswer until a
// Correct Answer line names a letter A-D.
type draft struct {
	text    string
	options []string
	correct int
}

// accumulator is the state threaded through the line fold.
type accumulator struct {
	open bool
	cur  draft
	done []draft
}

// flush finalizes the open question. A header that never collected an
// option is dropped.
func (a accumulator) flush() accumulator {
	if a.open && len(a.cur.options) > 0 {
		a.done = append(a.done, a.cur)
	}
	a.open = false
	a.cur = draft{}
	return a
}

// step consumes one normalized line.
func step(a accumulator, line string) accumulator {
	if body, ok := matchHeader(line); ok {
		a = a.flush()
		a.open = true
		a.cur = draft{text: body, correct: NoAnswer}
		return a
	}

	if !a.open {
		return a
	}

	if m := optionLine.FindStringSubmatch(line); m != nil {
		a.cur.options = append(a.cur.options, strings.TrimSpace(m[2]))
		return a
	}

	if m := correctAnswerLine.FindStringSubmatch(line); m != nil {
		if idx, ok := answerIndex(m[1]); ok {
			a.cur.correct = idx
		}
		return a
	}

	// Multi-line question bodies continue until the first option.
	if len(a.cur.options) == 0 {
		if a.cur.text == "" {
			a.cur.text = line
		} else {
			a.cur.text += " " + line
		}
	}
	return a
}

func matchHeader(line string) (string, bool) {
	if m := labelledHeader.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := numberedHeader.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// answerIndex reads the first letter of a Correct Answer remainder such as
// "B", "b) 4", "(C)" or "**D**".
func answerIndex(rest string) (int, bool) {
	rest = strings.TrimLeft(rest, " \t([*_'\"")
	if rest == "" {
		return 0, false
	}
	switch c := rest[0]; {
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	}
	return 0, false
}

// normalize splits raw into trimmed, non-empty lines. Markdown heading
// marks are dropped, and emphasis is unwrapped from question headers and
// Correct Answer markers only. Question and option text is never altered.
func normalize(raw string) []string {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		l = headingMark.ReplaceAllString(l, "")
		l = unwrapMarker(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// unwrapMarker turns "**Question 1:** text" into "Question 1: text",
// "**B)** 4" into "B) 4" and "__Correct Answer: B__" into
// "Correct Answer: B". Lines whose leading emphasized span is not a marker
// are returned unchanged.
func unwrapMarker(line string) string {
	for _, d := range []string{"**", "__"} {
		if !strings.HasPrefix(line, d) {
			continue
		}
		inner := line[len(d):]
		end := strings.Index(inner, d)
		if end < 0 {
			continue
		}
		candidate := strings.TrimSpace(inner[:end] + inner[end+len(d):])
		if isMarker(candidate) {
			return candidate
		}
	}
	return line
}

func isMarker(line string) bool {
	if _, ok := matchHeader(line); ok {
		return true
	}
	return optionLine.MatchString(line) || correctAnswerLine.MatchString(line)
}

// Parse turns free-form generator output into questions. It recognizes
// question headers, A-D option lines and Correct Answer lines, and treats
// anything else before the first option as more question text.
func Parse(raw string, opts ...ParseOption) ([]Question, error) {
	var cfg parseConfig
	for _, o := range opts {
		o(&cfg)
	}

	lines := normalize(raw)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	var acc accumulator
	for _, l := range lines {
		acc = step(acc, l)
	}
	acc = acc.flush()

	if len(acc.done) == 0 {
		return nil, ErrNoQuestionsParsed
	}

	questions := make([]Question, len(acc.done))
	for i, d := range acc.done {
		if len(d.options) != OptionsPerQuestion {
			return nil, &QuestionError{Index: i, Text: d.text, OptionCount: len(d.options), Err: ErrMalformedQuestion}
		}
		if d.text == "" {
			return nil, &QuestionError{Index: i, OptionCount: len(d.options), Err: ErrMissingQuestionText}
		}
		if d.correct == NoAnswer {
			if !cfg.lenient {
				return nil, &QuestionError{Index: i, Text: d.text, OptionCount: len(d.options), Err: ErrMissingAnswerKey}
			}
			d.correct = 0
		}
		questions[i] = Question{Text: d.text, Options: d.options, CorrectIndex: d.correct}
	}
	return questions, nil
}
