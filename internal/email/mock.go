package email

import "sync"

// MockProvider records outgoing mail instead of delivering it. Used in
// tests and local runs without SMTP credentials.
type MockProvider struct {
	mu   sync.Mutex
	Sent []SentMail
}

type SentMail struct {
	To       string
	Template string
	Code     string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) record(mail SentMail) {
	m.mu.Lock()
	m.Sent = append(m.Sent, mail)
	m.mu.Unlock()
}

func (m *MockProvider) Send(email *Email) error {
	to := ""
	if len(email.To) > 0 {
		to = email.To[0]
	}
	m.record(SentMail{To: to})
	return nil
}

func (m *MockProvider) SendWithTemplate(templateName string, data TemplateData, email *Email) error {
	to := ""
	if len(email.To) > 0 {
		to = email.To[0]
	}
	m.record(SentMail{To: to, Template: templateName})
	return nil
}

func (m *MockProvider) SendVerificationOTP(to string, code string) error {
	m.record(SentMail{To: to, Template: TemplateVerification, Code: code})
	return nil
}

func (m *MockProvider) SendTwoStepOTP(to string, code string) error {
	m.record(SentMail{To: to, Template: TemplateTwoStep, Code: code})
	return nil
}

func (m *MockProvider) SendPasswordReset(to string, token string) error {
	m.record(SentMail{To: to, Template: TemplatePasswordReset, Code: token})
	return nil
}

func (m *MockProvider) Validate() error { return nil }
func (m *MockProvider) Close() error    { return nil }

// LastTo returns the recipient of the most recent mail, empty when none.
func (m *MockProvider) LastTo() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].To
}

// LastCode returns the code or token carried by the most recent mail.
func (m *MockProvider) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Code
}

// Count returns how many mails were recorded.
func (m *MockProvider) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
