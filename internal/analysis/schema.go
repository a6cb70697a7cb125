package analysis

import "github.com/abhisek/careercoach/internal/llm"

// ReportSchema is the structured form of a performance analysis.
var ReportSchema = &llm.Schema{
	Name:        "quiz-analysis",
	Description: "A performance analysis of one completed multiple-choice quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two to four sentences on overall performance",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concepts the student clearly understands, one per item",
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concepts the student got wrong or seems unsure about, one per item",
			},
			"recommendations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next study steps, one per item",
			},
			"closing": map[string]any{
				"type":        "string",
				"description": "A closing message addressed to the student",
			},
		},
		"required":             []any{"summary", "strengths", "improvements", "recommendations", "closing"},
		"additionalProperties": false,
	},
}

// Report is the decoded structured analysis.
type Report struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
	Closing         string   `json:"closing"`
}
