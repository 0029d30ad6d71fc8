package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// TemplateRegistrationConfirmation is sent after a participant registers for
// an event.
const TemplateRegistrationConfirmation = "registration_confirmation"

const confirmationSubject = "You're registered!"

const confirmationText = `Hi {{.FirstName}},

You're confirmed for {{.EventName}}{{if .Location}} at {{.Location}}{{end}}{{if .StartDate}} starting {{.StartDate}}{{end}}.

Division: {{.Division}}
T-shirt size: {{.TshirtSize}}

Remember to bring a valid photo ID on the day.

See you there,
The {{.EventName}} team
`

const confirmationHTML = `<html><body>
<p>Hi {{.FirstName}},</p>
<p>You're confirmed for <strong>{{.EventName}}</strong>{{if .Location}} at {{.Location}}{{end}}{{if .StartDate}} starting {{.StartDate}}{{end}}.</p>
<ul>
<li>Division: {{.Division}}</li>
<li>T-shirt size: {{.TshirtSize}}</li>
</ul>
<p>Remember to bring a valid photo ID on the day.</p>
<p>See you there,<br>The {{.EventName}} team</p>
</body></html>`

var (
	confirmationTextTpl = texttpl.Must(texttpl.New("confirmation_text").Parse(confirmationText))
	confirmationHTMLTpl = htmltpl.Must(htmltpl.New("confirmation_html").Parse(confirmationHTML))
)

// Render produces subject, text, and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateRegistrationConfirmation:
		var tb, hb bytes.Buffer
		if err := confirmationTextTpl.Execute(&tb, data); err != nil {
			return "", "", "", err
		}
		if err := confirmationHTMLTpl.Execute(&hb, data); err != nil {
			return "", "", "", err
		}
		return confirmationSubject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
