package analysis

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/abhisek/careercoach/internal/mail"
)

type emailData struct {
	Passed     bool
	Score      int
	Total      int
	Percentage int
	Topic      string
	Difficulty string
	Date       string
	Analysis   string
}

var htmlEmail = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{if .Passed}}Congratulations on Your Quiz Performance!{{else}}Your Quiz Results{{end}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, {{if .Passed}}#6366f1, #8b5cf6{{else}}#ef4444, #dc2626{{end}}); color: white; padding: 30px; border-radius: 10px; text-align: center; margin-bottom: 30px;">
    <h1 style="margin: 0; font-size: 24px;">{{if .Passed}}🎉 Congratulations!{{else}}📚 Keep Learning!{{end}}</h1>
    <p style="margin: 10px 0 0 0; font-size: 16px;">{{if .Passed}}Excellent Performance on Your {{.Topic}} Quiz{{else}}Your {{.Topic}} Quiz Results{{end}}</p>
  </div>

  <div style="background: #f8fafc; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #1e293b; margin-top: 0;">Quiz Results Summary</h2>
    <ul style="list-style: none; padding: 0;">
      <li style="padding: 8px 0; border-bottom: 1px solid #e2e8f0;"><strong>Score:</strong> {{.Score}}/{{.Total}} ({{.Percentage}}%)</li>
      <li style="padding: 8px 0; border-bottom: 1px solid #e2e8f0;"><strong>Topic:</strong> {{.Topic}}</li>
      <li style="padding: 8px 0; border-bottom: 1px solid #e2e8f0;"><strong>Difficulty:</strong> {{.Difficulty}}</li>
      <li style="padding: 8px 0;"><strong>Date:</strong> {{.Date}}</li>
    </ul>
  </div>

  <div style="background: white; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #1e293b; margin-top: 0;">AI Performance Analysis</h2>
    <div style="white-space: pre-wrap; font-size: 14px; line-height: 1.5;">{{.Analysis}}</div>
  </div>

  <div style="background: {{if .Passed}}#dcfce7; border: 1px solid #bbf7d0{{else}}#fef2f2; border: 1px solid #fecaca{{end}}; padding: 15px; border-radius: 8px; text-align: center;">
    <p style="margin: 0; color: {{if .Passed}}#166534{{else}}#dc2626{{end}}; font-weight: 500;">
      {{if .Passed}}🏆 Great job! Your score of {{.Score}}/{{.Total}} demonstrates strong knowledge in {{.Topic}}.{{else}}💪 Don't give up! Your score of {{.Score}}/{{.Total}} shows you're learning. Keep practicing {{.Topic}} to improve!{{end}}
    </p>
  </div>

  <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e2e8f0;">
    <p style="color: #64748b; font-size: 12px; margin: 0;">This email was generated by AI Career Coach</p>
  </div>
</body>
</html>
`))

var textEmail = template.Must(template.New("text").Parse(`{{if .Passed}}Congratulations{{else}}Quiz Results{{end}} - {{.Topic}} Quiz
Score: {{.Score}}/{{.Total}} ({{.Percentage}}%)
Difficulty: {{.Difficulty}}
Date: {{.Date}}

AI Performance Analysis:
{{.Analysis}}
`))

// Subject returns the email subject line for a result.
func Subject(passed bool, score, total int, topic string) string {
	if passed {
		return fmt.Sprintf("🎉 Congratulations! You scored %d/%d on your %s quiz", score, total, topic)
	}
	return fmt.Sprintf("📚 Your %s quiz results - %d/%d", topic, score, total)
}

// buildEmail renders the results email for req.
func buildEmail(req Request, analysis string, passed bool, now time.Time) (mail.Message, error) {
	data := emailData{
		Passed:     passed,
		Score:      req.Score,
		Total:      req.TotalQuestions,
		Percentage: req.Percentage(),
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Date:       now.Format("January 2, 2006"),
		Analysis:   analysis,
	}

	var html, text bytes.Buffer
	if err := htmlEmail.Execute(&html, data); err != nil {
		return mail.Message{}, fmt.Errorf("render html email: %w", err)
	}
	if err := textEmail.Execute(&text, data); err != nil {
		return mail.Message{}, fmt.Errorf("render text email: %w", err)
	}

	return mail.Message{
		To:      req.Email,
		Subject: Subject(passed, req.Score, req.TotalQuestions, req.Topic),
		HTML:    html.String(),
		Text:    text.String(),
		Tags:    map[string]string{"category": "quiz-results"},
	}, nil
}
