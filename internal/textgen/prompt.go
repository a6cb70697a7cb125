package textgen

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMissingField is wrapped by input validation errors.
var ErrMissingField = errors.New("required field missing")

// CoverLetterInput describes the position and candidate.
type CoverLetterInput struct {
	JobTitle   string `json:"jobTitle" validate:"required"`
	Company    string `json:"company" validate:"required"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

// Validate checks the fields the prompt cannot do without.
func (in CoverLetterInput) Validate() error {
	return requireFields(map[string]string{"job title": in.JobTitle, "company": in.Company})
}

// ResumeInput describes the candidate.
type ResumeInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Education  string `json:"education"`
}

// Validate checks the fields the prompt cannot do without.
func (in ResumeInput) Validate() error {
	return requireFields(map[string]string{"name": in.Name})
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	// Map order is random; keep messages stable.
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}

// CoverLetterPrompt builds the cover letter request.
func CoverLetterPrompt(in CoverLetterInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a professional cover letter for a %s position at %s.\n\n",
		strings.TrimSpace(in.JobTitle), strings.TrimSpace(in.Company))
	fmt.Fprintf(&b, "Experience: %s\n", orNone(in.Experience))
	fmt.Fprintf(&b, "Skills: %s\n\n", orNone(in.Skills))
	b.WriteString("Make it personalized, professional, and compelling. ")
	b.WriteString("Include specific examples and show enthusiasm for the role.")
	return b.String()
}

// ResumePrompt builds the resume request.
func ResumePrompt(in ResumeInput) string {
	var b strings.Builder
	b.WriteString("Create a professional resume in a clean format for:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", strings.TrimSpace(in.Name))
	fmt.Fprintf(&b, "Email: %s\n", orNone(in.Email))
	fmt.Fprintf(&b, "Experience: %s\n", orNone(in.Experience))
	fmt.Fprintf(&b, "Skills: %s\n", orNone(in.Skills))
	fmt.Fprintf(&b, "Education: %s\n\n", orNone(in.Education))
	b.WriteString("Format it with clear sections, bullet points, and professional language. Make it ATS-friendly.")
	return b.String()
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "Not provided"
	}
	return s
}
