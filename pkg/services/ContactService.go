package services

import (
	"fmt"
	"html/template"
	"log/slog"
	"regexp"
	"strings"

	"fisheye/pkg/models"
	"github.com/adampresley/adamgokit/email"
)

var (
	nameExpression  = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ' -]{2,}$`)
	emailExpression = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[\w.-]{2,}$`)
)

type ContactSubmission struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

type ContactServicer interface {
	Validate(submission ContactSubmission) map[string]string
	Submit(photographer models.Photographer, submission ContactSubmission) error
}

type ContactServiceConfig struct {
	// EmailApiKey enables the notification email. Empty means the
	// submission is only logged.
	EmailApiKey string
	FromName    string
	FromEmail   string
	Inbox       string
}

type ContactService struct {
	emailApiKey string
	fromName    string
	fromEmail   string
	inbox       string
}

func NewContactService(config ContactServiceConfig) ContactService {
	return ContactService{
		emailApiKey: config.EmailApiKey,
		fromName:    config.FromName,
		fromEmail:   config.FromEmail,
		inbox:       config.Inbox,
	}
}

// Validate runs the per-field predicates and returns a message per
// failing field. An empty map means the submission is acceptable.
func (s ContactService) Validate(submission ContactSubmission) map[string]string {
	problems := map[string]string{}

	if !nameExpression.MatchString(strings.TrimSpace(submission.FirstName)) {
		problems["firstName"] = "Please enter a first name of at least 2 letters."
	}

	if !nameExpression.MatchString(strings.TrimSpace(submission.LastName)) {
		problems["lastName"] = "Please enter a last name of at least 2 letters."
	}

	if !emailExpression.MatchString(strings.TrimSpace(submission.Email)) {
		problems["email"] = "Please enter a valid email address."
	}

	if len(strings.TrimSpace(submission.Message)) < 10 {
		problems["message"] = "Please enter a message of at least 10 characters."
	}

	return problems
}

/*
Submit records a validated contact submission and, when an email API
key is configured, forwards it to the site inbox.
*/
func (s ContactService) Submit(photographer models.Photographer, submission ContactSubmission) error {
	if problems := s.Validate(submission); len(problems) > 0 {
		return fmt.Errorf("contact submission failed validation: %v", problems)
	}

	slog.Info("contact form submitted",
		slog.String("photographer", photographer.Name),
		slog.String("firstName", submission.FirstName),
		slog.String("lastName", submission.LastName),
		slog.String("email", submission.Email),
	)

	if s.emailApiKey == "" {
		return nil
	}

	return s.sendEmail(photographer, submission)
}

func (s ContactService) sendEmail(photographer models.Photographer, submission ContactSubmission) error {
	parsedTemplate := strings.Builder{}

	service := email.NewResendService(&email.Config{
		ApiKey: s.emailApiKey,
	})

	tmpl := `
<h1>New contact request for {{.photographerName}}</h1>
<p>{{.firstName}} {{.lastName}} ({{.email}}) sent the following message
through the contact form:</p>
<blockquote>{{.message}}</blockquote>
	`

	data := map[string]any{
		"photographerName": photographer.Name,
		"firstName":        submission.FirstName,
		"lastName":         submission.LastName,
		"email":            submission.Email,
		"message":          submission.Message,
	}

	t := template.Must(template.New("contact").Parse(tmpl))
	_ = t.Execute(&parsedTemplate, data)

	return service.Send(email.Mail{
		Body:       parsedTemplate.String(),
		BodyIsHtml: true,
		From: email.EmailAddress{
			Email: s.fromEmail,
			Name:  s.fromName,
		},
		Subject: fmt.Sprintf("Contact request for %s", photographer.Name),
		To: []email.EmailAddress{
			{Name: s.fromName, Email: s.inbox},
		},
	})
}
