package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"coach-connect/pkg/utils"

	"go.uber.org/zap"
)

type smtpNotifier struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPNotifier(config utils.EmailConfig, log *zap.Logger) Notifier {
	return &smtpNotifier{
		config: config,
		log:    log.With(zap.String("notifier", "smtp")),
	}
}

func (n *smtpNotifier) Send(ctx context.Context, toEmail string, kind TemplateKind, payload map[string]string) error {
	subject, body := renderTemplate(kind, payload)

	msg := strings.Builder{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", n.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	auth := smtp.PlainAuth("", n.config.User, n.config.Password, n.config.Host)

	if err := smtp.SendMail(addr, auth, n.config.From, []string{toEmail}, []byte(msg.String())); err != nil {
		n.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", toEmail),
			zap.String("template", string(kind)),
		)
		return fmt.Errorf("send %s email to %s: %w", kind, toEmail, err)
	}

	n.log.Info("Email sent",
		zap.String("to", toEmail),
		zap.String("template", string(kind)),
	)
	return nil
}

func renderTemplate(kind TemplateKind, payload map[string]string) (subject, body string) {
	switch kind {
	case TemplateReviewInvite:
		subject = "You have been invited to review a coach"
		body = fmt.Sprintf(
			"Hello,\n\n%s has invited you to share feedback on your coaching experience.\n\n"+
				"Use this token to submit your review: %s\n\n"+
				"The invitation expires on %s.\n",
			payload["coach_name"], payload["token"], payload["expires_at"])
	case TemplatePasswordReset:
		subject = "Reset your password"
		body = fmt.Sprintf("Hello,\n\nUse this code to reset your password: %s\n", payload["code"])
	case TemplateVerifyEmail:
		subject = "Verify your email"
		body = fmt.Sprintf("Hello,\n\nUse this code to verify your email: %s\n", payload["code"])
	default:
		subject = "Notification"
		body = "Hello,\n"
	}
	return subject, body
}
