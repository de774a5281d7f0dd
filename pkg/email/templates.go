package email

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// SubmissionEmailData contains the data needed for the owner notification mail.
type SubmissionEmailData struct {
	To          string
	Kind        string
	Name        string
	LastName    string
	Mobile      string
	Email       string
	Subject     string
	Message     string
	ResumeURL   string
	SubmittedAt time.Time
	AppName     string
}

// BuildSubmissionEmail creates the notification message sent to the site owner
// after a submission has been accepted.
func BuildSubmissionEmail(data SubmissionEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Intake"
	}

	fullName := strings.TrimSpace(data.Name + " " + data.LastName)
	if fullName == "" {
		fullName = "someone"
	}

	subject := fmt.Sprintf("[%s] New %s submission from %s", appName, data.Kind, fullName)

	lines := []string{
		fmt.Sprintf("A new %s submission arrived at %s.", data.Kind, data.SubmittedAt.Format(time.RFC1123)),
		"",
		"Name:    " + fullName,
		"Email:   " + data.Email,
	}
	if data.Mobile != "" {
		lines = append(lines, "Mobile:  "+data.Mobile)
	}
	if data.Subject != "" {
		lines = append(lines, "Subject: "+data.Subject)
	}
	if data.Message != "" {
		lines = append(lines, "", data.Message)
	}
	if data.ResumeURL != "" {
		lines = append(lines, "", "Resume: "+data.ResumeURL)
	}
	textBody := strings.Join(lines, "\n")

	// Field values come straight from the public form; everything rendered
	// into HTML is entity-escaped so a submission cannot smuggle markup into
	// the owner's mail client.
	var rows strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&rows, `<tr><td style="padding: 6px 12px; color: #6b7280;">%s</td><td style="padding: 6px 12px;">%s</td></tr>`, label, html.EscapeString(value))
	}
	row("Name", fullName)
	row("Email", data.Email)
	row("Mobile", data.Mobile)
	row("Subject", data.Subject)

	resumeBlock := ""
	if data.ResumeURL != "" {
		resumeBlock = fmt.Sprintf(`<p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Resume</a>
    </p>`, html.EscapeString(data.ResumeURL))
	}

	messageBlock := ""
	if data.Message != "" {
		messageBlock = fmt.Sprintf(`<p style="background-color: #f3f4f6; padding: 15px; border-radius: 4px; white-space: pre-wrap;">%s</p>`, html.EscapeString(data.Message))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">New %s submission</h2>
    <p style="color: #6b7280; font-size: 14px;">Received %s</p>
    <table style="border-collapse: collapse; width: 100%%;">%s</table>
    %s
    %s
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">%s</p>
</body>
</html>`,
		html.EscapeString(data.Kind), data.SubmittedAt.Format(time.RFC1123), rows.String(), messageBlock, resumeBlock, html.EscapeString(appName))

	return Message{
		To:       []string{data.To},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
