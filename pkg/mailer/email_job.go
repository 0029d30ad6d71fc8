package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects a named template rendered with Data; Text/HTML override
// rendering when set directly.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "registration_confirmation"
	Data     map[string]any `json:"data,omitempty"`
}
