package service

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"go_5_algo_keep/internal/model"
)

const reminderTextTemplate = `Hi {{.Name}},

You have {{.Count}} problem{{if ne .Count 1}}s{{end}} due for revision today:
{{range .Problems}}
- {{.Title}}{{if .Difficulty}} [{{.Difficulty}}]{{end}}
  {{.URL}}
{{- end}}

Keep the streak going!
{{.AppURL}}
`

const reminderHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>Time to revise, {{.Name}}!</h2>
  <p>You have <strong>{{.Count}}</strong> problem{{if ne .Count 1}}s{{end}} due for revision today.</p>
  <ul>
{{- range .Problems}}
    <li><a href="{{.URL}}">{{.Title}}</a>{{if .Difficulty}} <span class="difficulty-{{.Difficulty}}">{{.Difficulty}}</span>{{end}}</li>
{{- end}}
  </ul>
  <p><a href="{{.AppURL}}">Open your dashboard</a></p>
</body>
</html>
`

var (
	reminderText = texttemplate.Must(texttemplate.New("reminder_text").Parse(reminderTextTemplate))
	reminderHTML = htmltemplate.Must(htmltemplate.New("reminder_html").Parse(reminderHTMLTemplate))
)

type reminderMailData struct {
	Name     string
	Count    int
	Problems []model.DueProblem
	AppURL   string
}

// ReminderSubject は件名。単数/複数で表記を変える
func ReminderSubject(count int) string {
	if count == 1 {
		return "🔔 1 Problem Due for Revision"
	}
	return fmt.Sprintf("🔔 %d Problems Due for Revision", count)
}

// ProblemURL はダッシュボード上の問題ページ
func ProblemURL(appURL, problemID string) string {
	return strings.TrimRight(appURL, "/") + "/problems/" + problemID
}

// BuildReminderMail は1ユーザー分のリマインダーメールを組み立てる
func BuildReminderMail(appURL string, user *model.User, problems []model.DueProblem) (model.MailMessage, error) {
	name := user.Name
	if name == "" {
		name = "there"
	}
	data := reminderMailData{
		Name:     name,
		Count:    len(problems),
		Problems: problems,
		AppURL:   strings.TrimRight(appURL, "/"),
	}

	var text, html bytes.Buffer
	if err := reminderText.Execute(&text, data); err != nil {
		return model.MailMessage{}, fmt.Errorf("render reminder text: %w", err)
	}
	if err := reminderHTML.Execute(&html, data); err != nil {
		return model.MailMessage{}, fmt.Errorf("render reminder html: %w", err)
	}

	return model.MailMessage{
		To:      user.Email,
		Subject: ReminderSubject(len(problems)),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
