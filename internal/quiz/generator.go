package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/careercoach/internal/llm"
)

// ErrTopicRequired is returned when a quiz is requested without a topic.
var ErrTopicRequired = errors.New("quiz topic is required")

// TextGenerator turns a prompt into raw text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateInput describes the quiz to generate.
type GenerateInput struct {
	Topic      string
	Difficulty Difficulty
	Count      int // 0 means DefaultQuestionCount
}

// Generator produces quizzes from a text generator.
type Generator struct {
	text    TextGenerator
	options []ParseOption
}

// NewGenerator creates a Generator. opts are passed to Parse.
func NewGenerator(text TextGenerator, opts ...ParseOption) *Generator {
	return &Generator{text: text, options: opts}
}

// Generate asks for quiz text and parses it. Parse failures are returned
// unchanged so callers can match them with errors.Is; the raw text is
// logged for diagnosis.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*Quiz, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	if in.Difficulty == "" {
		in.Difficulty = Beginner
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)
	raw, err := g.text.Generate(ctx, BuildPrompt(topic, in.Difficulty, in.Count))
	if err != nil {
		return nil, fmt.Errorf("generate quiz text: %w", err)
	}

	questions, err := Parse(raw, g.options...)
	if err != nil {
		slog.WarnContext(ctx, "quiz text did not parse",
			"topic", topic, "difficulty", in.Difficulty, "err", err, "raw", raw)
		return nil, err
	}

	return &Quiz{Topic: topic, Difficulty: in.Difficulty, Questions: questions}, nil
}
