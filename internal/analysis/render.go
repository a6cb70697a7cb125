package analysis

import (
	"strings"
)

// Text renders the report as plain text with one section per heading.
// Empty sections are omitted.
func (r Report) Text() string {
	var b strings.Builder

	section := func(title string, items []string) {
		var kept []string
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				kept = append(kept, it)
			}
		}
		if len(kept) == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title)
		b.WriteString("\n")
		for _, it := range kept {
			b.WriteString("- ")
			b.WriteString(it)
			b.WriteString("\n")
		}
	}

	if s := strings.TrimSpace(r.Summary); s != "" {
		b.WriteString("Performance Summary\n")
		b.WriteString(s)
		b.WriteString("\n")
	}
	section("Strengths", r.Strengths)
	section("Areas for Improvement", r.Improvements)
	section("Recommendations", r.Recommendations)
	if c := strings.TrimSpace(r.Closing); c != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
