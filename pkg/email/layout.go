// Package email wraps generated fragments into full email layouts and delivers them.
package email

import (
	"fmt"

	"github.com/umputun/signalist/pkg/prompt"
)

// subjects of the sent emails
const (
	WelcomeSubject = "Welcome to Signalist - your stock market toolkit is ready!"
	NewsSubject    = "📈 Market News Summary Today - %s"
)

// LayoutWelcome wraps the generated welcome intro, placeholders {{name}} and {{intro}}
var LayoutWelcome = prompt.Template{Name: "welcome-layout", Body: `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Welcome to Signalist</title>
</head>
<body style="margin: 0; padding: 0; background-color: #050505; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #050505;">
<tr><td align="center" style="padding: 40px 20px;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 600px; background-color: #141414; border-radius: 8px; border: 1px solid #30333A;">
<tr><td style="padding: 40px;">
<h1 style="margin: 0 0 30px 0; font-size: 24px; font-weight: 600; color: #FDD458;">Welcome aboard {{name}}</h1>
{{intro}}
<p style="margin: 0 0 15px 0; font-size: 16px; line-height: 1.6; color: #CCDADC;">Here's what you can do right now:</p>
<ul style="margin: 0 0 30px 0; padding-left: 20px; color: #CCDADC; font-size: 16px; line-height: 1.6;">
<li>Set up your watchlist to follow your favorite stocks</li>
<li>Create price and volume alerts so you never miss a move</li>
<li>Explore the dashboard for trends and the latest market news</li>
</ul>
<p style="margin: 0; font-size: 16px; line-height: 1.6; color: #CCDADC;">Stay sharp - Signalist</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`}

// LayoutNewsSummary wraps the generated digest, placeholders {{date}} and {{newsContent}}
var LayoutNewsSummary = prompt.Template{Name: "news-summary-layout", Body: `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Market News Summary</title>
</head>
<body style="margin: 0; padding: 0; background-color: #050505; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #050505;">
<tr><td align="center" style="padding: 40px 20px;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 600px; background-color: #141414; border-radius: 8px; border: 1px solid #30333A;">
<tr><td style="padding: 40px;">
<h1 style="margin: 0 0 10px 0; font-size: 24px; font-weight: 600; color: #FDD458;">Market News Summary Today</h1>
<p style="margin: 0 0 30px 0; font-size: 14px; color: #6b7280;">{{date}}</p>
{{newsContent}}
<p style="margin: 40px 0 0 0; font-size: 12px; line-height: 1.6; color: #6b7280;">You're receiving this email because you subscribed to Signalist market updates.</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`}

// Message is an email to send, the body is Layout filled with Fields
type Message struct {
	To      string
	Subject string
	Layout  prompt.Template
	Fields  map[string]any
}

// Body renders the layout with the message fields
func (m Message) Body() (string, error) {
	r, err := prompt.Render(m.Layout, m.Fields)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", m.Layout.Name, err)
	}
	return r.Text, nil
}

// NewsSubjectFor returns the digest subject for a formatted date
func NewsSubjectFor(date string) string {
	return fmt.Sprintf(NewsSubject, date)
}
