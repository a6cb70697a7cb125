package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means the generator text had no non-blank lines.
	ErrEmptyInput = errors.New("quiz text is empty")

	// ErrNoQuestionsParsed means no question with options was found.
	ErrNoQuestionsParsed = errors.New("no questions found in quiz text")

	// ErrMalformedQuestion means a question does not have exactly four
	// options.
	ErrMalformedQuestion = errors.New("malformed question")

	// ErrMissingQuestionText means a header and its options had no
	// question text between them.
	ErrMissingQuestionText = errors.New("question text is empty")

	// ErrMissingAnswerKey means a question has no usable Correct Answer line.
	ErrMissingAnswerKey = errors.New("missing answer key")
)

// QuestionError pinpoints the question that failed post-parse checks.
type QuestionError struct {
	Index       int // zero-based position among parsed questions
	Text        string
	OptionCount int
	Err         error
}

func (e *QuestionError) Error() string {
	if errors.Is(e.Err, ErrMalformedQuestion) {
		return fmt.Sprintf("question %d %q: %v: has %d options, want %d",
			e.Index+1, e.Text, e.Err, e.OptionCount, OptionsPerQuestion)
	}
	if e.Text == "" {
		return fmt.Sprintf("question %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("question %d %q: %v", e.Index+1, e.Text, e.Err)
}

func (e *QuestionError) Unwrap() error { return e.Err }

// IsParseError reports whether err came from parsing generator text, as
// opposed to transport or caller errors.
func IsParseError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoQuestionsParsed) ||
		errors.Is(err, ErrMalformedQuestion) ||
		errors.Is(err, ErrMissingQuestionText) ||
		errors.Is(err, ErrMissingAnswerKey)
}
