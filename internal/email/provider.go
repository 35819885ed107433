package email

// Provider is the outbound mail interface. Implementations: SMTP for
// real delivery, a mock for tests and local runs.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) error

	// SendWithTemplate renders a template into the HTML body, then sends.
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// SendVerificationOTP mails the email-verification code.
	SendVerificationOTP(to string, code string) error

	// SendTwoStepOTP mails the two-step login code.
	SendTwoStepOTP(to string, code string) error

	// SendPasswordReset mails the password-reset token.
	SendPasswordReset(to string, token string) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders named templates to HTML bodies.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
