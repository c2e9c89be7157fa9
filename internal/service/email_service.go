package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"specialcare/internal/config"
	"specialcare/internal/i18n"
	"specialcare/internal/logger"
	"specialcare/internal/models"
	"specialcare/internal/planner"
	"specialcare/internal/validation"
)

// sesAPI is the part of the SES client the service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends daily guidance digests via Amazon SES
type EmailService struct {
	client     sesAPI
	tr         i18n.Translator
	log        *logger.Logger
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. An empty SES_FROM_EMAIL
// yields a disabled service whose sends are logged no-ops
func NewEmailService(ctx context.Context, cfg *config.Config, tr i18n.Translator, log *logger.Logger) (*EmailService, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.FromEmail == "" {
		log.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{tr: tr, log: log, debug: cfg.EmailDebug}, nil
	}

	if cfg.EmailDebug {
		log.Debug("initializing email service",
			"region", cfg.AWSRegion,
			"from_name", cfg.FromName,
			"app_base_url", cfg.AppBaseURL,
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("email service enabled", "region", cfg.AWSRegion)
	return newEmailService(sesv2.NewFromConfig(awsCfg), tr, log, cfg), nil
}

func newEmailService(client sesAPI, tr i18n.Translator, log *logger.Logger, cfg *config.Config) *EmailService {
	return &EmailService{
		client:     client,
		tr:         tr,
		log:        log,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		appBaseURL: strings.TrimRight(cfg.AppBaseURL, "/"),
		enabled:    true,
		debug:      cfg.EmailDebug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// Digest is a rendered daily guidance email
type Digest struct {
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body"`
}

// RenderDailyGuidance builds the digest for one plan day in lang, falling
// back to the plan's language
func (s *EmailService) RenderDailyGuidance(child *models.ChildInfo, plan *models.TrainingPlan, day int, lang string) (*Digest, error) {
	if child == nil {
		return nil, planner.ErrInvalidChild
	}
	if plan == nil {
		return nil, planner.ErrNilPlan
	}
	task, ok := plan.Task(day)
	if !ok {
		return nil, fmt.Errorf("%w: day %d", planner.ErrUnknownDay, day)
	}
	if lang == "" {
		lang = plan.Language
	}

	parent := child.ParentName
	if parent == "" {
		parent = child.Name
	}

	lines := []string{
		s.tr.T(lang, "email.digest.greeting", i18n.Params{"parent": parent}),
		"",
		s.tr.T(lang, "email.digest.intro", i18n.Params{"name": child.Name, "date": task.Date}),
		"",
		task.Guidance,
	}
	if task.TestRequired {
		test := s.tr.T(lang, "test."+string(task.TestType), nil)
		lines = append(lines, "", s.tr.T(lang, "email.digest.test_reminder", i18n.Params{"test": test}))
	}
	lines = append(lines,
		"",
		s.tr.T(lang, "email.digest.footer", i18n.Params{"url": s.planURL(plan.ID)}),
		"",
		"---",
		s.tr.T(lang, "email.digest.signature", nil),
	)
	text := strings.Join(lines, "\n")

	return &Digest{
		Subject:  s.tr.T(lang, "email.digest.subject", i18n.Params{"name": child.Name, "day": day}),
		TextBody: text,
		HTMLBody: textToHTML(text),
	}, nil
}

// SendDailyGuidance emails the guidance for one plan day to the caregiver
func (s *EmailService) SendDailyGuidance(ctx context.Context, to string, child *models.ChildInfo, plan *models.TrainingPlan, day int, lang string) error {
	if err := validation.ValidateEmail(to); err != nil {
		return err
	}
	digest, err := s.RenderDailyGuidance(child, plan, day, lang)
	if err != nil {
		return err
	}

	if !s.enabled {
		s.log.Info("skipping email send (service disabled)", "to", to, "plan_id", plan.ID, "day", day)
		return nil
	}
	return s.sendEmail(ctx, to, digest)
}

func (s *EmailService) planURL(planID string) string {
	return fmt.Sprintf("%s/plans/%s", s.appBaseURL, planID)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail string, digest *Digest) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(digest.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(digest.HTMLBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(digest.TextBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if s.debug {
		s.log.Debug("calling SES SendEmail", "to", toEmail, "subject", digest.Subject, "text_bytes", len(digest.TextBody))
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if s.debug && result != nil && result.MessageId != nil {
		s.log.Debug("SES SendEmail succeeded", "message_id", *result.MessageId)
	}
	s.log.Info("email sent", "to", toEmail, "subject", digest.Subject)
	return nil
}

// textToHTML escapes the plain body and keeps its line structure
func textToHTML(text string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"UTF-8\"></head>\n")
	b.WriteString("<body style=\"font-family: Arial, sans-serif; line-height: 1.6; color: #333;\">\n")
	b.WriteString("<div style=\"max-width: 600px; margin: 0 auto; padding: 20px; white-space: pre-wrap;\">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}
