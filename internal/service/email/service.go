package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error
	SendApplicationReceivedEmail(ctx context.Context, toEmail, posterName, applicantName, adTitle string) error
	SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, adTitle string, status domain.ApplicationStatus) error
}

type service struct {
	client    *resend.Client
	config    *config.Config
	templates map[string]*template.Template
	logger    *zap.Logger
}

func NewService(cfg *config.Config, logger *zap.Logger) (Service, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{"verification.html", "reset_password.html", "application_received.html", "application_status.html"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &service{
		client:    resend.NewClient(cfg.ResendAPIKey),
		config:    cfg,
		templates: templates,
		logger:    logger.Named("email"),
	}, nil
}

func (s *service) sendEmail(_ context.Context, toEmail, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("unknown email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	if s.config.ResendAPIKey == "" {
		s.logger.Info("email delivery disabled, skipping",
			zap.String("to", toEmail),
			zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Annonsplats <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

type linkData struct {
	Title string
	Name  string
	Link  string
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error {
	subject := i18n.Translate(s.config.DefaultLocale, "EMAIL_SUBJECT_VERIFY")
	data := linkData{
		Title: subject,
		Name:  name,
		Link:  fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
	}
	return s.sendEmail(ctx, toEmail, subject, "verification.html", data)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	subject := i18n.Translate(s.config.DefaultLocale, "EMAIL_SUBJECT_RESET")
	data := linkData{
		Title: subject,
		Name:  name,
		Link:  fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.sendEmail(ctx, toEmail, subject, "reset_password.html", data)
}

func (s *service) SendApplicationReceivedEmail(ctx context.Context, toEmail, posterName, applicantName, adTitle string) error {
	subject := i18n.Format(s.config.DefaultLocale, "EMAIL_SUBJECT_NEW_APPLICATION", map[string]string{"title": adTitle})
	data := struct {
		Title         string
		Name          string
		ApplicantName string
		AdTitle       string
		Link          string
	}{
		Title:         subject,
		Name:          posterName,
		ApplicantName: applicantName,
		AdTitle:       adTitle,
		Link:          fmt.Sprintf("https://%s/protected/applications", s.config.Domain),
	}
	return s.sendEmail(ctx, toEmail, subject, "application_received.html", data)
}

func (s *service) SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, adTitle string, status domain.ApplicationStatus) error {
	vars := map[string]string{"title": adTitle}

	subjectKey, bodyKey, color := "EMAIL_SUBJECT_ACCEPTED", "APPLICATION_ACCEPTED", "#10b981"
	if status == domain.ApplicationRejected {
		subjectKey, bodyKey, color = "EMAIL_SUBJECT_REJECTED", "APPLICATION_REJECTED", "#ef4444"
	}

	subject := i18n.Format(s.config.DefaultLocale, subjectKey, vars)
	data := struct {
		Title string
		Name  string
		Body  string
		Color string
		Link  string
	}{
		Title: subject,
		Name:  applicantName,
		Body:  i18n.Format(s.config.DefaultLocale, bodyKey, vars),
		Color: color,
		Link:  fmt.Sprintf("https://%s/protected/message-list", s.config.Domain),
	}
	return s.sendEmail(ctx, toEmail, subject, "application_status.html", data)
}
